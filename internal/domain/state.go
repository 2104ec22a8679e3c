package domain

import (
	"time"
)

// Phase represents the turn-cycle stage of a game.
type Phase string

const (
	// PhaseDraw means the active seat must draw from the wall.
	PhaseDraw Phase = "draw"
	// PhaseDiscard means the active seat holds 17 tiles and must discard.
	PhaseDiscard Phase = "discard"
	// PhaseClaimResolution means a discard is live and contestable.
	PhaseClaimResolution Phase = "claimResolution"
	// PhaseFinished is terminal.
	PhaseFinished Phase = "finished"
)

// Status is the coarse lifecycle state of a game.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// MeldType identifies the shape of an exposed or concealed set.
type MeldType string

const (
	MeldChow       MeldType = "chow"
	MeldPung       MeldType = "pung"
	MeldKong       MeldType = "kong"
	MeldSecretKong MeldType = "secret_kong"
	MeldSagasa     MeldType = "sagasa"
)

// NoSeat marks an unset seat index (no skip pending, no discarder, no winner).
const NoSeat = -1

// Meld is an immutable set of 3 or 4 tiles owned by one player.
// ClaimedFrom is the discarder's seat, or NoSeat for self-made melds.
type Meld struct {
	ID          string   `json:"id"`
	Type        MeldType `json:"type"`
	Tiles       []Tile   `json:"tiles"`
	IsConcealed bool     `json:"is_concealed"`
	ClaimedFrom int      `json:"claimed_from"`
}

// Player holds the per-seat state. Hand, Melds, Flowers and Discards are owned
// exclusively by this player; melds and flowers never return to hand or wall.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
	Hand     []Tile `json:"hand"`
	Melds    []Meld `json:"melds"`
	Flowers  []Tile `json:"flowers"`
	Discards []Tile `json:"discards"`
	IsDealer bool   `json:"is_dealer"`
	IsBot    bool   `json:"is_bot"`
}

// MeldTileCount returns the number of tiles locked in this player's melds.
func (p *Player) MeldTileCount() int {
	n := 0
	for _, m := range p.Melds {
		n += len(m.Tiles)
	}
	return n
}

// AmbitionType names a bonus scoring condition.
type AmbitionType string

const (
	AmbitionKang           AmbitionType = "kang"
	AmbitionSecret         AmbitionType = "secret"
	AmbitionSagasa         AmbitionType = "sagasa"
	AmbitionThirteenFlower AmbitionType = "thirteen_flowers"
	AmbitionNoFlowersStart AmbitionType = "no_flowers_start"
	AmbitionTodas          AmbitionType = "todas"
	AmbitionEscalera       AmbitionType = "escalera"
	AmbitionSietePares     AmbitionType = "siete_pares"
	AmbitionNoFlowersEnd   AmbitionType = "no_flowers_end"
	AmbitionAllUp          AmbitionType = "all_up"
	AmbitionAllDown        AmbitionType = "all_down"
	AmbitionAllChow        AmbitionType = "all_chow"
	AmbitionAllPung        AmbitionType = "all_pung"
	AmbitionSingle         AmbitionType = "single"
	AmbitionBisaklat       AmbitionType = "bisaklat"
)

var ambitionPayouts = map[AmbitionType]float64{
	AmbitionKang:           0.25,
	AmbitionSecret:         0.5,
	AmbitionSagasa:         0.5,
	AmbitionThirteenFlower: 0.25,
	AmbitionNoFlowersStart: 0.25,
	AmbitionTodas:          1,
	AmbitionEscalera:       0.5,
	AmbitionSietePares:     0.5,
	AmbitionNoFlowersEnd:   0.25,
	AmbitionAllUp:          0.25,
	AmbitionAllDown:        0.25,
	AmbitionAllChow:        0.25,
	AmbitionAllPung:        0.25,
	AmbitionSingle:         0.25,
	AmbitionBisaklat:       1,
}

var instantAmbitions = map[AmbitionType]bool{
	AmbitionKang:           true,
	AmbitionSecret:         true,
	AmbitionSagasa:         true,
	AmbitionThirteenFlower: true,
	AmbitionNoFlowersStart: true,
}

// Payout returns the payout multiplier for the ambition.
func (a AmbitionType) Payout() float64 {
	return ambitionPayouts[a]
}

// IsInstant reports whether the ambition pays out the moment it is declared
// rather than with the winning hand.
func (a AmbitionType) IsInstant() bool {
	return instantAmbitions[a]
}

// AmbitionRecord is one entry in the append-only bonus-score ledger.
type AmbitionRecord struct {
	ID      string       `json:"id"`
	Seat    int          `json:"seat"`
	Type    AmbitionType `json:"type"`
	Payout  float64      `json:"payout"`
	Instant bool         `json:"instant"`
	At      time.Time    `json:"at"`
}

// ClaimWindow records when a discard became contestable and for how long.
// The engine never sleeps on it; wall-clock waits belong to the caller.
type ClaimWindow struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// ClaimType identifies what a player wants to do with the live discard.
type ClaimType string

const (
	ClaimChow ClaimType = "chow"
	ClaimPung ClaimType = "pung"
	ClaimKong ClaimType = "kong"
	ClaimWin  ClaimType = "win"
)

// Priority orders competing claims: Win > Kong > Pung > Chow.
func (c ClaimType) Priority() int {
	switch c {
	case ClaimWin:
		return 4
	case ClaimKong:
		return 3
	case ClaimPung:
		return 2
	case ClaimChow:
		return 1
	}
	return 0
}

// Claim is a proposed action against the live discard. Tiles optionally names
// the exact chow the claimant wants when more than one run is possible.
type Claim struct {
	Type  ClaimType `json:"type"`
	Seat  int       `json:"seat"`
	Tiles []Tile    `json:"tiles,omitempty"`
}

// WinningHand is the frozen snapshot of the hand that ended the game.
type WinningHand struct {
	Tiles   []Tile `json:"tiles"`
	Melds   []Meld `json:"melds"`
	Flowers []Tile `json:"flowers"`
}

// Game is the single mutable aggregate for one table. It is created once per
// game, mutated in place by the transition methods, and never partially rolled
// back: operations either fully apply or reject before touching state.
type Game struct {
	ID                string           `json:"id"`
	Players           []*Player        `json:"players"`
	CurrentPlayer     int              `json:"current_player"`
	Dealer            int              `json:"dealer"`
	Wall              []Tile           `json:"wall"`
	DiscardPile       []Tile           `json:"discard_pile"`
	LastDiscard       *Tile            `json:"last_discard,omitempty"`
	LastDiscardPlayer int              `json:"last_discard_player"`
	LastDrawnTile     *Tile            `json:"last_drawn_tile,omitempty"`
	Phase             Phase            `json:"phase"`
	Status            Status           `json:"status"`
	HasDrawnThisTurn  bool             `json:"has_drawn_this_turn"`
	SkippedPlayer     int              `json:"skipped_player"`
	ClaimWindow       *ClaimWindow     `json:"claim_window,omitempty"`
	ClaimDuration     time.Duration    `json:"claim_duration"`
	Ambitions         []AmbitionRecord `json:"ambitions"`
	Winner            int              `json:"winner"`
	WinType           string           `json:"win_type,omitempty"`
	WinningTile       *Tile            `json:"winning_tile,omitempty"`
	WinningHand       *WinningHand     `json:"winning_hand,omitempty"`
}

// Finished reports whether the game reached its terminal state.
func (g *Game) Finished() bool {
	return g.Status == StatusFinished
}

// WallCount returns the number of tiles left in the wall. The engine does not
// end the game on exhaustion; callers inspect this and declare a stalemate.
func (g *Game) WallCount() int {
	return len(g.Wall)
}

// PlayerAt returns the player at the given seat, or nil when out of range.
func (g *Game) PlayerAt(seat int) *Player {
	if seat < 0 || seat >= len(g.Players) {
		return nil
	}
	return g.Players[seat]
}
