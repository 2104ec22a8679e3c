package bot

import (
	"math/rand"

	botinternal "pinoymahjong/internal/bot/internal"
	"pinoymahjong/internal/domain"
)

// HeuristicBot is the standard opponent. It wins the moment a winning hand is
// available, otherwise scores every candidate discard and sheds the least
// valuable tile, switching to a conservative mode when 1-2 sets from winning.
type HeuristicBot struct{}

func (b *HeuristicBot) CalculateMove(g *domain.Game, seat int) (Move, error) {
	player := g.PlayerAt(seat)
	if player == nil {
		return Move{Action: ActionDraw}, nil
	}

	if canWinNow(g, player) {
		return Move{Action: ActionWin}, nil
	}

	if g.Phase == domain.PhaseDiscard && g.CurrentPlayer == seat && len(player.Hand) > 0 {
		tile := b.chooseDiscard(player, g)
		return Move{Action: ActionDiscard, Tile: &tile}, nil
	}

	return Move{Action: ActionDraw}, nil
}

func (b *HeuristicBot) chooseDiscard(player *domain.Player, g *domain.Game) domain.Tile {
	potential := botinternal.AnalyzePotential(player)
	conservative := potential.TilesAway <= ConservativeThreshold

	best := player.Hand[0]
	lowest := 0.0
	for i, tile := range player.Hand {
		var value float64
		if conservative {
			value = botinternal.ConservativeValue(tile, player, DefaultTuning, potential.Strategy)
		} else {
			value = botinternal.DiscardValue(tile, player, g, DefaultTuning)
		}
		if i == 0 || value < lowest {
			lowest = value
			best = tile
		}
	}
	return best
}

// RandomBot discards an arbitrary tile; it exists as a baseline opponent and
// for wiring tests that need legal but unbiased play.
type RandomBot struct {
	Rng *rand.Rand
}

func (b *RandomBot) CalculateMove(g *domain.Game, seat int) (Move, error) {
	player := g.PlayerAt(seat)
	if player == nil {
		return Move{Action: ActionDraw}, nil
	}

	if canWinNow(g, player) {
		return Move{Action: ActionWin}, nil
	}

	if g.Phase == domain.PhaseDiscard && g.CurrentPlayer == seat && len(player.Hand) > 0 {
		tile := player.Hand[b.Rng.Intn(len(player.Hand))]
		return Move{Action: ActionDiscard, Tile: &tile}, nil
	}

	return Move{Action: ActionDraw}, nil
}

// canWinNow checks the hand as held; the claimable-discard case is handled by
// the orchestration layer's claim resolution, not here.
func canWinNow(g *domain.Game, player *domain.Player) bool {
	return domain.IsWinningHand(player.Hand, player.Melds, player.Flowers).Valid
}
