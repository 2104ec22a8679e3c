package internal

import (
	"pinoymahjong/internal/domain"
)

// Weights tune the discard heuristic. Higher DiscardValue means the tile is
// more valuable to keep; the bot discards the lowest-valued candidate.
type Weights struct {
	HonorBase  float64
	SuitedBase float64

	KongPartners float64 // two matching partners still in hand
	PairPartner  float64 // one matching partner

	SeqComplete float64 // both neighbours present
	SeqPartial  float64 // one neighbour present
	SeqGap      float64 // a one-gap neighbour present

	TerminalPenalty float64 // 1s and 9s bend toward the discard pile
	MiddleBonus     float64 // 4-6 are flexible

	SeenDiscount float64 // per matching tile already discarded
	MiddleDanger float64
	HonorSafety  float64

	// Conservative mode, applied when the hand is 1-2 sets from winning.
	CloseBase          float64
	BreakTripletSpike  float64
	BreakPairSpike     float64
	PairStrategySpike  float64
	IsolatedRelief     float64
	CloseSeqMultiplier float64
}

// DiscardValue scores how valuable a tile is to keep given the rest of the
// hand and the table. Lower scores make better discards.
func DiscardValue(tile domain.Tile, player *domain.Player, g *domain.Game, w Weights) float64 {
	value := w.SuitedBase
	if tile.IsHonor() {
		value = w.HonorBase
	}

	rest, _ := domain.RemoveTile(player.Hand, tile)

	switch partners := domain.CountMatching(rest, tile); {
	case partners >= 2:
		value += w.KongPartners
	case partners == 1:
		value += w.PairPartner
	}

	if tile.IsSuited() {
		value += SequencePotential(tile, rest, w)
	}

	value += dangerLevel(tile, g, w)

	if tile.Value == 1 || tile.Value == 9 {
		value -= w.TerminalPenalty
	}
	if tile.Value >= 4 && tile.Value <= 6 {
		value += w.MiddleBonus
	}

	return value
}

// SequencePotential measures how well a suited tile connects to its suit
// neighbours: full credit with both neighbours, partial with one, a little
// for a one-gap neighbour.
func SequencePotential(tile domain.Tile, hand []domain.Tile, w Weights) float64 {
	if !tile.IsSuited() {
		return 0
	}

	has := func(value int) bool {
		for _, t := range hand {
			if t.Suit == tile.Suit && t.Value == value {
				return true
			}
		}
		return false
	}

	potential := 0.0
	lower, higher := has(tile.Value-1), has(tile.Value+1)
	if lower && higher {
		potential += w.SeqComplete
	}
	if lower || higher {
		potential += w.SeqPartial
	}
	if has(tile.Value-2) || has(tile.Value+2) {
		potential += w.SeqGap
	}
	return potential
}

// dangerLevel estimates how risky the tile is to let go. Copies already in the
// discard history make it safer; live middle values are the most contested.
func dangerLevel(tile domain.Tile, g *domain.Game, w Weights) float64 {
	danger := 0.0

	seen := 0
	for _, p := range g.Players {
		seen += domain.CountMatching(p.Discards, tile)
	}
	danger -= float64(seen) * w.SeenDiscount

	if tile.Value >= 4 && tile.Value <= 6 {
		danger += w.MiddleDanger
	}
	if tile.IsHonor() {
		danger -= w.HonorSafety
	}

	return danger
}

// ConservativeValue replaces DiscardValue when the hand is close to winning:
// it spikes the cost of breaking any near-complete pair, triplet or sequence.
func ConservativeValue(tile domain.Tile, player *domain.Player, w Weights, strategy Strategy) float64 {
	value := w.CloseBase
	rest, _ := domain.RemoveTile(player.Hand, tile)
	partners := domain.CountMatching(rest, tile)

	if strategy == StrategyPairs {
		switch partners {
		case 1:
			value += w.PairStrategySpike
		case 0:
			value -= w.IsolatedRelief
		}
		return value
	}

	if tile.IsSuited() {
		value += SequencePotential(tile, rest, w) * w.CloseSeqMultiplier
	}
	switch {
	case partners >= 2:
		value += w.BreakTripletSpike
	case partners == 1:
		value += w.BreakPairSpike
	}
	return value
}
