package domain

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DefaultClaimDuration is how long a discard stays contestable unless the
// orchestration layer configures otherwise.
const DefaultClaimDuration = 8 * time.Second

var (
	ErrGameFinished  = errors.New("game is finished")
	ErrUnknownSeat   = errors.New("seat out of range")
	ErrTileNotInHand = errors.New("tile not in hand")
	ErrWrongPhase    = errors.New("operation not allowed in current phase")
)

// NewGame builds a fresh game: full shuffled wall with bonus tiles interleaved,
// random dealer, 16 tiles dealt to every seat in four rounds of four, bonus
// tiles auto-exposed and replaced until every hand holds 16 regular tiles, and
// the dealer drawing a 17th to open. Phase starts at discard for the dealer.
func NewGame(players []*Player, rng *rand.Rand) *Game {
	wall := ShuffleTiles(rng, NewTileSet())
	dealer := rng.Intn(4)

	g := &Game{
		ID:                uuid.NewString(),
		Players:           players,
		CurrentPlayer:     dealer,
		Dealer:            dealer,
		Wall:              wall,
		DiscardPile:       []Tile{},
		LastDiscardPlayer: NoSeat,
		Phase:             PhaseDiscard,
		Status:            StatusPlaying,
		SkippedPlayer:     NoSeat,
		ClaimDuration:     DefaultClaimDuration,
		Winner:            NoSeat,
	}

	for seat, p := range players {
		p.Seat = seat
		p.Hand = nil
		p.Melds = nil
		p.Flowers = nil
		p.Discards = nil
		p.IsDealer = seat == dealer
	}

	// Four rounds of four tiles per seat.
	for round := 0; round < 4; round++ {
		for seat := 0; seat < 4; seat++ {
			for i := 0; i < 4; i++ {
				g.Players[seat].Hand = append(g.Players[seat].Hand, g.popWall())
			}
		}
	}

	for seat := range g.Players {
		g.replaceBonuses(seat)
	}

	// Deal-time instant ambitions.
	for seat, p := range g.Players {
		if len(p.Flowers) == 0 {
			g.recordAmbition(seat, AmbitionNoFlowersStart)
		}
	}

	// Dealer opens with the 17th tile; a win here is bisaklat.
	g.DrawTile(dealer)
	if g.Finished() && g.Winner == dealer {
		g.recordAmbition(dealer, AmbitionBisaklat)
	}
	g.Phase = PhaseDiscard
	if g.Finished() {
		g.Phase = PhaseFinished
	}

	return g
}

func (g *Game) popWall() Tile {
	t := g.Wall[0]
	g.Wall = g.Wall[1:]
	return t
}

// replaceBonuses moves every bonus tile in the seat's hand to its flower row
// and keeps drawing replacements until the hand holds 16 regular tiles or the
// wall runs dry.
func (g *Game) replaceBonuses(seat int) {
	p := g.Players[seat]

	kept := p.Hand[:0]
	for _, t := range p.Hand {
		if t.IsBonus() {
			p.Flowers = append(p.Flowers, t)
		} else {
			kept = append(kept, t)
		}
	}
	p.Hand = kept

	for len(p.Hand) < 16 && len(g.Wall) > 0 {
		t := g.popWall()
		if t.IsBonus() {
			p.Flowers = append(p.Flowers, t)
			continue
		}
		p.Hand = append(p.Hand, t)
	}
}

// DrawTile pops the wall for the seat, auto-exposing any bonus tiles drawn
// along the way. It returns nil without mutating anything when the game is
// over, the seat already holds 17 tiles, or the wall is empty. On success the
// phase moves to discard and a self-drawn win ends the game on the spot.
func (g *Game) DrawTile(seat int) *Tile {
	if g.Finished() {
		return nil
	}
	p := g.PlayerAt(seat)
	if p == nil || len(p.Hand) >= 17 || len(g.Wall) == 0 {
		return nil
	}

	var drawn *Tile
	for len(g.Wall) > 0 {
		t := g.popWall()
		if t.IsBonus() {
			p.Flowers = append(p.Flowers, t)
			continue
		}
		p.Hand = append(p.Hand, t)
		drawn = &t
		break
	}
	if drawn == nil {
		return nil
	}

	g.LastDrawnTile = drawn
	g.Phase = PhaseDiscard
	g.HasDrawnThisTurn = true

	if win := IsWinningHand(p.Hand, p.Melds, p.Flowers); win.Valid {
		g.finish(seat, win.HandType, drawn, &WinningHand{
			Tiles:   append([]Tile{}, p.Hand...),
			Melds:   append([]Meld{}, p.Melds...),
			Flowers: append([]Tile{}, p.Flowers...),
		})
		for _, ambition := range win.Ambitions {
			g.recordAmbition(seat, ambition)
		}
	}

	return drawn
}

// DiscardTile removes the tile from the seat's hand and makes it the live,
// contestable discard. The turn does not advance here: the game enters claim
// resolution and only AdvanceTurn or a successful claim moves control.
// Discarding a tile the seat does not hold is an explicit error.
func (g *Game) DiscardTile(seat int, tile Tile) error {
	if g.Finished() {
		return ErrGameFinished
	}
	p := g.PlayerAt(seat)
	if p == nil {
		return ErrUnknownSeat
	}

	rest, ok := RemoveTile(p.Hand, tile)
	if !ok {
		return ErrTileNotInHand
	}
	p.Hand = rest

	p.Discards = append(p.Discards, tile)
	g.DiscardPile = append(g.DiscardPile, tile)
	g.LastDiscard = &tile
	g.LastDiscardPlayer = seat
	g.LastDrawnTile = nil
	g.Phase = PhaseClaimResolution
	g.HasDrawnThisTurn = false
	g.ClaimWindow = &ClaimWindow{StartedAt: time.Now(), Duration: g.ClaimDuration}
	return nil
}

// AdvanceTurn concludes claim resolution with no claim: the next seat becomes
// active and must draw. A pending skip marker bypasses exactly one seat and is
// cleared whether or not it fired.
func (g *Game) AdvanceTurn() {
	if g.Finished() || g.Phase != PhaseClaimResolution {
		return
	}

	// The uncontested discard is dead once the window closes. The pile keeps
	// the tile, but it is no longer claimable.
	g.LastDiscard = nil
	g.LastDiscardPlayer = NoSeat
	g.ClaimWindow = nil

	next := (g.CurrentPlayer + 1) % 4
	if g.SkippedPlayer != NoSeat && next == g.SkippedPlayer {
		next = (next + 1) % 4
	}
	g.SkippedPlayer = NoSeat

	g.CurrentPlayer = next
	g.Phase = PhaseDraw
	g.HasDrawnThisTurn = false
}

// DeclareSecretKong melds four matching tiles straight from the active seat's
// hand as a concealed kong, records the secret ambition and draws the
// replacement tile. Legal only while the seat is deciding its discard.
func (g *Game) DeclareSecretKong(seat int, tile Tile) error {
	if g.Finished() {
		return ErrGameFinished
	}
	p := g.PlayerAt(seat)
	if p == nil {
		return ErrUnknownSeat
	}
	if seat != g.CurrentPlayer || g.Phase != PhaseDiscard {
		return ErrWrongPhase
	}
	taken, rest := RemoveMatching(p.Hand, tile, 4)
	if len(taken) != 4 {
		return ErrTileNotInHand
	}
	p.Hand = rest
	p.Melds = append(p.Melds, Meld{
		ID:          uuid.NewString(),
		Type:        MeldSecretKong,
		Tiles:       taken,
		IsConcealed: true,
		ClaimedFrom: NoSeat,
	})
	g.recordAmbition(seat, AmbitionSecret)
	g.drawReplacement(seat)
	return nil
}

// PromoteToSagasa grows one of the seat's exposed pungs into a kong with the
// matching fourth tile from hand, records the sagasa ambition and draws the
// replacement tile.
func (g *Game) PromoteToSagasa(seat int, tile Tile) error {
	if g.Finished() {
		return ErrGameFinished
	}
	p := g.PlayerAt(seat)
	if p == nil {
		return ErrUnknownSeat
	}
	if seat != g.CurrentPlayer || g.Phase != PhaseDiscard {
		return ErrWrongPhase
	}

	meldIdx := -1
	for i, m := range p.Melds {
		if m.Type == MeldPung && TilesMatch(m.Tiles[0], tile) {
			meldIdx = i
			break
		}
	}
	if meldIdx == -1 {
		return ErrTileNotInHand
	}
	rest, ok := RemoveTile(p.Hand, tile)
	if !ok {
		return ErrTileNotInHand
	}
	p.Hand = rest
	p.Melds[meldIdx].Type = MeldSagasa
	p.Melds[meldIdx].Tiles = append(p.Melds[meldIdx].Tiles, tile)
	g.recordAmbition(seat, AmbitionSagasa)
	g.drawReplacement(seat)
	return nil
}

// MarkStalemate ends the game with no winner. The engine never calls this on
// its own; the orchestration layer invokes it when the wall is exhausted.
func (g *Game) MarkStalemate() {
	if g.Finished() {
		return
	}
	g.Status = StatusFinished
	g.Phase = PhaseFinished
	g.Winner = NoSeat
	g.ClaimWindow = nil
}

// drawReplacement is the post-kong draw. It reuses DrawTile so bonus handling
// and the self-drawn win check apply to the replacement as well.
func (g *Game) drawReplacement(seat int) {
	g.DrawTile(seat)
	if !g.Finished() {
		g.Phase = PhaseDiscard
	}
}

func (g *Game) finish(seat int, winType string, winningTile *Tile, hand *WinningHand) {
	g.Status = StatusFinished
	g.Phase = PhaseFinished
	g.Winner = seat
	g.WinType = winType
	g.WinningTile = winningTile
	g.WinningHand = hand
	g.ClaimWindow = nil
}

func (g *Game) recordAmbition(seat int, ambition AmbitionType) {
	g.Ambitions = append(g.Ambitions, AmbitionRecord{
		ID:      uuid.NewString(),
		Seat:    seat,
		Type:    ambition,
		Payout:  ambition.Payout(),
		Instant: ambition.IsInstant(),
		At:      time.Now(),
	})
}
