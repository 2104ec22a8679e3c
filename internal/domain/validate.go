package domain

import "fmt"

// TotalTiles is the size of the Filipino Mahjong set; every tile is always in
// exactly one of wall, a hand, the discard pile, a flower row or a meld.
const TotalTiles = 144

// Validate runs the advisory consistency checks: per-seat hand sizes and the
// 144-tile conservation invariant. It returns human-readable diagnostics and
// never blocks play; tests treat a non-empty result as fatal, production
// callers log it.
func Validate(g *Game) []string {
	var problems []string

	if !g.Finished() {
		for seat, p := range g.Players {
			// Every meld replaces three hand tiles (kongs include one extra
			// tile but also granted a replacement draw).
			expected := 16 - 3*len(p.Melds)
			if seat == g.CurrentPlayer && g.Phase == PhaseDiscard {
				expected++
			}
			if len(p.Hand) != expected {
				problems = append(problems, fmt.Sprintf(
					"seat %d (%s) holds %d tiles (expected %d)", seat, p.Name, len(p.Hand), expected))
			}
		}
	}

	total := len(g.Wall) + len(g.DiscardPile)
	for _, p := range g.Players {
		total += len(p.Hand) + len(p.Flowers) + p.MeldTileCount()
	}
	if total != TotalTiles {
		problems = append(problems, fmt.Sprintf(
			"tile conservation broken: %d tiles in play (expected %d)", total, TotalTiles))
	}

	return problems
}
