package internal

import (
	"sort"

	"pinoymahjong/internal/domain"
)

// Strategy names which winning shape the hand is closest to.
type Strategy string

const (
	StrategyPairs     Strategy = "pairs"     // Siete Pares shape
	StrategySequences Strategy = "sequences" // standard shape, nearly there
	StrategyMixed     Strategy = "mixed"
)

// Potential summarises how far a hand is from a win.
type Potential struct {
	TilesAway int
	Strategy  Strategy
}

// AnalyzePotential estimates the shortfall toward both winning shapes and
// reports the cheaper one. The estimates are heuristic tile-replacement
// counts, not exact shanten.
func AnalyzePotential(player *domain.Player) Potential {
	pairsAway := pairsShortfall(player.Hand)
	standardAway := standardShortfall(player.Hand, len(player.Melds))

	if pairsAway <= standardAway {
		return Potential{TilesAway: pairsAway, Strategy: StrategyPairs}
	}
	strategy := StrategyMixed
	if standardAway <= 3 {
		strategy = StrategySequences
	}
	return Potential{TilesAway: standardAway, Strategy: strategy}
}

// pairsShortfall counts how many more pairs and trios a Siete Pares hand
// still needs, crediting singles that can grow into pairs.
func pairsShortfall(hand []domain.Tile) int {
	counts := countByType(hand)

	pairs, singles, triples := 0, 0, 0
	for _, n := range counts {
		switch n {
		case 1:
			singles++
		case 2:
			pairs++
		case 3:
			triples++
		case 4:
			pairs += 2
		}
	}

	neededPairs := 7 - pairs
	if neededPairs < 0 {
		neededPairs = 0
	}
	neededTriples := 1 - triples
	if neededTriples < 0 {
		neededTriples = 0
	}

	away := neededPairs + neededTriples
	credit := singles
	if credit > neededPairs {
		credit = neededPairs
	}
	away -= credit
	if away < 0 {
		away = 0
	}
	return away
}

// standardShortfall counts how many of the needed sets and the pair the hand
// cannot yet cover with triplets, runs or held pairs.
func standardShortfall(hand []domain.Tile, existingMelds int) int {
	neededSets := 5 - existingMelds

	sets, pairs := 0, 0
	for _, n := range countByType(hand) {
		switch {
		case n >= 3:
			sets++
		case n == 2:
			pairs++
		}
	}

	for _, suit := range []domain.Suit{domain.SuitCircles, domain.SuitBamboos, domain.SuitCharacters} {
		sets += completedRuns(hand, suit)
	}

	setShortfall := neededSets - sets
	if setShortfall < 0 {
		setShortfall = 0
	}
	pairShortfall := 1 - pairs
	if pairShortfall < 0 {
		pairShortfall = 0
	}
	return setShortfall + pairShortfall
}

// completedRuns counts non-overlapping consecutive runs present in one suit.
func completedRuns(hand []domain.Tile, suit domain.Suit) int {
	var values []int
	for _, t := range hand {
		if t.Suit == suit {
			values = append(values, t.Value)
		}
	}
	if len(values) < 3 {
		return 0
	}
	sort.Ints(values)

	runs := 0
	for i := 0; i+2 < len(values); i++ {
		if values[i+1] == values[i]+1 && values[i+2] == values[i]+2 {
			runs++
			i += 2
		}
	}
	return runs
}

func countByType(hand []domain.Tile) map[domain.Tile]int {
	counts := make(map[domain.Tile]int, len(hand))
	for _, t := range hand {
		key := t
		key.Copy = 0
		counts[key]++
	}
	return counts
}
