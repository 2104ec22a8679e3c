package domain

import (
	"sort"

	"github.com/google/uuid"
)

// IsValidClaim checks a proposed claim against the live discard without
// mutating anything. The checks run in a fixed order: live discard, not the
// claimant's own discard, claim window still open (the active seat has not
// drawn past it), then per-type tile requirements.
func IsValidClaim(g *Game, claim Claim) bool {
	if g.Finished() || g.LastDiscard == nil {
		return false
	}
	player := g.PlayerAt(claim.Seat)
	if player == nil || claim.Seat == g.CurrentPlayer {
		return false
	}
	if g.HasDrawnThisTurn {
		return false
	}

	discard := *g.LastDiscard
	switch claim.Type {
	case ClaimChow:
		// Only the seat immediately after the discarder may chow.
		if g.LastDiscardPlayer != NoSeat && claim.Seat != (g.LastDiscardPlayer+1)%4 {
			return false
		}
		return len(AllPossibleSequences(player.Hand, discard)) > 0
	case ClaimPung:
		return CountMatching(player.Hand, discard) >= 2
	case ClaimKong:
		// A kong owes a replacement draw the wall can no longer pay.
		if len(g.Wall) == 0 {
			return false
		}
		return CountMatching(player.Hand, discard) >= 3
	case ClaimWin:
		test := append(append([]Tile{}, player.Hand...), discard)
		return IsWinningHand(test, player.Melds, player.Flowers).Valid
	}
	return false
}

// AllPossibleSequences enumerates every structurally distinct run the hand can
// complete with the discard as its low, middle or high member. Each result is
// ordered low to high with the discard in place, so a caller can present the
// options and claim a specific one.
func AllPossibleSequences(hand []Tile, discard Tile) [][]Tile {
	if !discard.IsSuited() {
		return nil
	}

	find := func(value int) (Tile, bool) {
		for _, t := range hand {
			if t.Suit == discard.Suit && t.Value == value {
				return t, true
			}
		}
		return Tile{}, false
	}

	var sequences [][]Tile
	v := discard.Value

	if v <= 7 {
		if a, ok := find(v + 1); ok {
			if b, ok := find(v + 2); ok {
				sequences = append(sequences, []Tile{discard, a, b})
			}
		}
	}
	if v >= 2 && v <= 8 {
		if a, ok := find(v - 1); ok {
			if b, ok := find(v + 1); ok {
				sequences = append(sequences, []Tile{a, discard, b})
			}
		}
	}
	if v >= 3 {
		if a, ok := find(v - 2); ok {
			if b, ok := find(v - 1); ok {
				sequences = append(sequences, []Tile{a, b, discard})
			}
		}
	}

	return sequences
}

// ProcessClaim validates and applies a claim in one step. It returns false
// with zero mutation on any failure; on success the discard leaves the pile,
// the consumed hand tiles leave the claimant's hand, the new meld is appended
// and control jumps to the claimant. Calling it again for the same discard
// fails naturally because LastDiscard has been cleared.
func ProcessClaim(g *Game, claim Claim) bool {
	if !IsValidClaim(g, claim) {
		return false
	}

	player := g.PlayerAt(claim.Seat)
	discard := *g.LastDiscard

	switch claim.Type {
	case ClaimChow:
		tiles := claim.Tiles
		if len(tiles) == 3 {
			if !validChowSelection(tiles, discard) {
				return false
			}
		} else {
			sequences := AllPossibleSequences(player.Hand, discard)
			if len(sequences) == 0 {
				return false
			}
			tiles = sequences[0]
		}
		handTiles := make([]Tile, 0, 2)
		for _, t := range tiles {
			if t != discard {
				handTiles = append(handTiles, t)
			}
		}
		if !handContainsAll(player.Hand, handTiles) {
			return false
		}
		g.takeDiscard()
		for _, t := range handTiles {
			player.Hand, _ = RemoveTile(player.Hand, t)
		}
		player.Melds = append(player.Melds, Meld{
			ID:          uuid.NewString(),
			Type:        MeldChow,
			Tiles:       sortRun(tiles),
			IsConcealed: false,
			ClaimedFrom: g.LastDiscardPlayer,
		})
		g.redirectToClaimant(claim.Seat)

	case ClaimPung:
		taken, rest := RemoveMatching(player.Hand, discard, 2)
		if len(taken) != 2 {
			return false
		}
		g.takeDiscard()
		player.Hand = rest
		player.Melds = append(player.Melds, Meld{
			ID:          uuid.NewString(),
			Type:        MeldPung,
			Tiles:       append([]Tile{discard}, taken...),
			IsConcealed: false,
			ClaimedFrom: g.LastDiscardPlayer,
		})
		g.recordAmbition(claim.Seat, AmbitionKang)
		g.redirectToClaimant(claim.Seat)

	case ClaimKong:
		taken, rest := RemoveMatching(player.Hand, discard, 3)
		if len(taken) != 3 {
			return false
		}
		g.takeDiscard()
		player.Hand = rest
		player.Melds = append(player.Melds, Meld{
			ID:          uuid.NewString(),
			Type:        MeldKong,
			Tiles:       append([]Tile{discard}, taken...),
			IsConcealed: false,
			ClaimedFrom: g.LastDiscardPlayer,
		})
		g.recordAmbition(claim.Seat, AmbitionKang)
		g.redirectToClaimant(claim.Seat)
		// Kong grants one replacement draw before the discard obligation.
		g.drawReplacement(claim.Seat)

	case ClaimWin:
		winningHand := append(append([]Tile{}, player.Hand...), discard)
		win := IsWinningHand(winningHand, player.Melds, player.Flowers)
		if !win.Valid {
			return false
		}
		// The winning tile stays in the pile; it never joins the hand, so the
		// 144-tile ledger still balances.
		g.finish(claim.Seat, win.HandType, &discard, &WinningHand{
			Tiles:   winningHand,
			Melds:   append([]Meld{}, player.Melds...),
			Flowers: append([]Tile{}, player.Flowers...),
		})
		for _, ambition := range win.Ambitions {
			g.recordAmbition(claim.Seat, ambition)
		}

	default:
		return false
	}

	return true
}

// validChowSelection checks a caller-chosen chow: it must include the discard
// and form a same-suit run of consecutive values.
func validChowSelection(tiles []Tile, discard Tile) bool {
	hasDiscard := false
	for _, t := range tiles {
		if t == discard {
			hasDiscard = true
		}
		if t.Suit != discard.Suit {
			return false
		}
	}
	return hasDiscard && IsValidSequence(tiles)
}

func handContainsAll(hand []Tile, tiles []Tile) bool {
	rest := hand
	for _, t := range tiles {
		var ok bool
		rest, ok = RemoveTile(rest, t)
		if !ok {
			return false
		}
	}
	return true
}

func sortRun(tiles []Tile) []Tile {
	out := append([]Tile{}, tiles...)
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// takeDiscard removes the live discard from the shared pile. LastDiscard and
// LastDiscardPlayer stay set until redirectToClaimant so meld bookkeeping can
// still read the discarder's seat.
func (g *Game) takeDiscard() {
	discard := *g.LastDiscard
	for i := len(g.DiscardPile) - 1; i >= 0; i-- {
		if g.DiscardPile[i] == discard {
			g.DiscardPile = append(g.DiscardPile[:i], g.DiscardPile[i+1:]...)
			break
		}
	}
}

// redirectToClaimant hands control to the claimant: they must discard next
// with no draw step. The seat that would have played after the discarder is
// marked skipped for the next normal advance, unless the claimant is exactly
// that seat.
func (g *Game) redirectToClaimant(seat int) {
	nextAfterDiscarder := (g.LastDiscardPlayer + 1) % 4
	if seat != nextAfterDiscarder {
		g.SkippedPlayer = nextAfterDiscarder
	} else {
		g.SkippedPlayer = NoSeat
	}

	g.CurrentPlayer = seat
	g.Phase = PhaseDiscard
	g.LastDiscard = nil
	g.LastDiscardPlayer = NoSeat
	g.ClaimWindow = nil
	// Blocks further claims until the claimant discards.
	g.HasDrawnThisTurn = true
}
