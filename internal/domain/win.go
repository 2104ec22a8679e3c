package domain

import "sort"

// WinCondition is the evaluator's verdict on a candidate hand. It is a plain
// result record; evaluation never fails, callers branch on Valid.
type WinCondition struct {
	Valid       bool               `json:"valid"`
	HandType    string             `json:"hand_type"`
	Ambitions   []AmbitionType     `json:"ambitions"`
	TotalPayout float64            `json:"total_payout"`
	Breakdown   map[string]float64 `json:"breakdown"`
}

// Hand type labels reported in WinCondition and Game.WinType.
const (
	HandTypeStandard   = "Standard Win"
	HandTypeSietePares = "Siete Pares"
)

// IsWinningHand decides whether hand tiles plus meld tiles form a legal
// 17-tile winning hand and which ambitions apply. The 17-tile precondition is
// strict: any other total is invalid with no partial credit.
func IsWinningHand(hand []Tile, melds []Meld, flowers []Tile) WinCondition {
	total := len(hand)
	for _, m := range melds {
		total += len(m.Tiles)
	}
	if total != 17 {
		return WinCondition{Breakdown: map[string]float64{}}
	}

	if len(melds) == 0 && isSietePares(hand) {
		return WinCondition{
			Valid:       true,
			HandType:    HandTypeSietePares,
			Ambitions:   []AmbitionType{AmbitionTodas, AmbitionSietePares},
			TotalPayout: 1.5,
			Breakdown:   map[string]float64{"Basic Win": 1, "Siete Pares": 0.5},
		}
	}

	if !decompose(SortTiles(hand), 5-len(melds), 1) {
		return WinCondition{Breakdown: map[string]float64{}}
	}

	ambitions := []AmbitionType{AmbitionTodas}
	payout := 1.0
	breakdown := map[string]float64{"Basic Win": 1}

	if isEscalera(melds) {
		ambitions = append(ambitions, AmbitionEscalera)
		payout += 0.5
		breakdown["Escalera"] = 0.5
	}
	if len(flowers) == 0 {
		ambitions = append(ambitions, AmbitionNoFlowersEnd)
		payout += 0.25
		breakdown["No Flowers"] = 0.25
	}
	if allConcealed(melds) {
		ambitions = append(ambitions, AmbitionAllUp)
		payout += 0.25
		breakdown["All Up"] = 0.25
	}

	return WinCondition{
		Valid:       true,
		HandType:    HandTypeStandard,
		Ambitions:   ambitions,
		TotalPayout: payout,
		Breakdown:   breakdown,
	}
}

// tileKey collapses a tile to its type, so it can index count maps.
func tileKey(t Tile) Tile {
	t.Copy = 0
	return t
}

// decompose searches for trios triplets-or-runs plus pairs final pairs in the
// sorted tiles, backtracking at every step. It anchors each choice on the
// first remaining tile, which keeps the search complete: any valid grouping
// must consume that tile as part of a pair, triplet or run it starts.
func decompose(tiles []Tile, trios, pairs int) bool {
	if len(tiles) == 0 {
		return trios == 0 && pairs == 0
	}
	if len(tiles) < trios*3+pairs*2 || trios < 0 || pairs < 0 {
		return false
	}

	first := tiles[0]

	if pairs > 0 && CountMatching(tiles, first) >= 2 {
		_, rest := RemoveMatching(tiles, first, 2)
		if decompose(rest, trios, pairs-1) {
			return true
		}
	}

	if trios > 0 {
		if CountMatching(tiles, first) >= 3 {
			_, rest := RemoveMatching(tiles, first, 3)
			if decompose(rest, trios-1, pairs) {
				return true
			}
		}
		if rest, ok := removeRun(tiles, first); ok {
			if decompose(rest, trios-1, pairs) {
				return true
			}
		}
	}

	return false
}

// removeRun removes first, first+1, first+2 of the same suit when all three
// are present.
func removeRun(tiles []Tile, first Tile) ([]Tile, bool) {
	if !first.IsSuited() || first.Value > 7 {
		return nil, false
	}
	second := Tile{Suit: first.Suit, Value: first.Value + 1}
	third := Tile{Suit: first.Suit, Value: first.Value + 2}
	if CountMatching(tiles, second) == 0 || CountMatching(tiles, third) == 0 {
		return nil, false
	}
	_, rest := RemoveMatching(tiles, first, 1)
	_, rest = RemoveMatching(rest, second, 1)
	_, rest = RemoveMatching(rest, third, 1)
	return rest, true
}

// isSietePares reports whether 17 concealed tiles decompose into exactly seven
// pairs plus one trio, where the trio is a triplet or a same-suit run. The
// check is a real decomposition: it enumerates every trio candidate and
// requires the 14 leftover tiles to pair off exactly (4-counts split into two
// pairs).
func isSietePares(hand []Tile) bool {
	if len(hand) != 17 {
		return false
	}

	counts := make(map[Tile]int, len(hand))
	for _, t := range hand {
		counts[tileKey(t)]++
	}

	// Trio as triplet.
	for key, n := range counts {
		if n >= 3 {
			counts[key] -= 3
			if pairsOff(counts) {
				counts[key] += 3
				return true
			}
			counts[key] += 3
		}
	}

	// Trio as run.
	for key, n := range counts {
		if n == 0 || !key.IsSuited() || key.Value > 7 {
			continue
		}
		second := Tile{Suit: key.Suit, Value: key.Value + 1}
		third := Tile{Suit: key.Suit, Value: key.Value + 2}
		if counts[second] == 0 || counts[third] == 0 {
			continue
		}
		counts[key]--
		counts[second]--
		counts[third]--
		if pairsOff(counts) {
			counts[key]++
			counts[second]++
			counts[third]++
			return true
		}
		counts[key]++
		counts[second]++
		counts[third]++
	}

	return false
}

// pairsOff reports whether every remaining count is even, i.e. the tiles
// resolve into pairs with nothing left over.
func pairsOff(counts map[Tile]int) bool {
	for _, n := range counts {
		if n%2 != 0 {
			return false
		}
	}
	return true
}

// isEscalera reports whether the chow melds tile a full 1-9 run in one suit.
func isEscalera(melds []Meld) bool {
	bySuit := make(map[Suit][]int)
	for _, m := range melds {
		if m.Type != MeldChow || len(m.Tiles) == 0 {
			continue
		}
		suit := m.Tiles[0].Suit
		for _, t := range m.Tiles {
			bySuit[suit] = append(bySuit[suit], t.Value)
		}
	}
	for _, values := range bySuit {
		if len(values) != 9 {
			continue
		}
		sort.Ints(values)
		full := true
		for i, v := range values {
			if v != i+1 {
				full = false
				break
			}
		}
		if full {
			return true
		}
	}
	return false
}

func allConcealed(melds []Meld) bool {
	if len(melds) == 0 {
		return false
	}
	for _, m := range melds {
		if !m.IsConcealed {
			return false
		}
	}
	return true
}
