package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"

	"pinoymahjong/internal/app"
	"pinoymahjong/internal/bot"
	"pinoymahjong/internal/config"
	"pinoymahjong/internal/domain"
)

// maxTurnsPerGame bounds a single game so a rules regression cannot hang the
// batch; a 144-tile wall finishes far below this.
const maxTurnsPerGame = 1000

func main() {
	configPath := flag.String("config", "", "path to game config JSON")
	games := flag.Int("games", 0, "number of games to simulate (0 = config value)")
	seed := flag.Int64("seed", 0, "rng seed (0 = random)")
	verbose := flag.Bool("v", false, "log every table event")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := config.LoadGameConfig(*configPath); err != nil {
		log.WithError(err).Fatal("load config")
	}
	cfg := config.GetGameConfig()

	count := *games
	if count <= 0 {
		count = cfg.SimulationGames
	}
	if *seed == 0 {
		*seed = rand.Int63()
	}
	rng := rand.New(rand.NewSource(*seed))

	brain, err := bot.NewBrain(bot.BotLevel(cfg.BotLevel), rng)
	if err != nil {
		log.WithError(err).Fatal("build bot brain")
	}

	stats := runBatch(log, rng, brain, count)
	fmt.Printf("games=%d wins=%d stalemates=%d seed=%d\n", count, stats.wins, stats.stalemates, *seed)
	fmt.Printf("avg turns=%.1f total payout=%.2f\n", float64(stats.turns)/float64(count), stats.payout)
	for hand, n := range stats.handTypes {
		fmt.Printf("  %-14s %d\n", hand, n)
	}
	os.Exit(0)
}

type batchStats struct {
	wins       int
	stalemates int
	turns      int
	payout     float64
	handTypes  map[string]int
}

func runBatch(log *logrus.Logger, rng *rand.Rand, brain bot.Brain, count int) batchStats {
	stats := batchStats{handTypes: make(map[string]int)}
	svc := app.NewService(rng, log)

	for i := 0; i < count; i++ {
		game, turns, err := runGame(log, svc, brain)
		if err != nil {
			log.WithError(err).WithField("game", i).Error("game aborted")
			continue
		}
		stats.turns += turns
		if game.Winner == domain.NoSeat {
			stats.stalemates++
			continue
		}
		stats.wins++
		stats.handTypes[game.WinType]++
		win := domain.IsWinningHand(game.WinningHand.Tiles, game.WinningHand.Melds, game.WinningHand.Flowers)
		stats.payout += win.TotalPayout
		log.WithFields(logrus.Fields{
			"game":    i,
			"winner":  game.Winner,
			"type":    game.WinType,
			"payout":  win.TotalPayout,
			"turns":   turns,
			"flowers": len(game.PlayerAt(game.Winner).Flowers),
		}).Debug("game finished")
	}
	return stats
}

// runGame plays one bot-vs-bot game to completion. Timing policy collapses to
// zero in simulation: claim windows resolve immediately after every discard.
func runGame(log *logrus.Logger, svc *app.Service, brain bot.Brain) (*domain.Game, int, error) {
	specs := make([]app.PlayerSpec, 4)
	for i := range specs {
		specs[i] = app.PlayerSpec{Name: fmt.Sprintf("Bot %d", i+1), IsBot: true}
	}
	game, _, err := svc.StartGame(specs)
	if err != nil {
		return nil, 0, err
	}

	turns := 0
	for !game.Finished() && turns < maxTurnsPerGame {
		turns++
		seat := game.CurrentPlayer

		switch game.Phase {
		case domain.PhaseDraw:
			if _, err := svc.Draw(game, seat); err != nil {
				return nil, turns, fmt.Errorf("draw seat %d: %w", seat, err)
			}

		case domain.PhaseDiscard:
			move, err := brain.CalculateMove(game, seat)
			if err != nil {
				return nil, turns, fmt.Errorf("bot move seat %d: %w", seat, err)
			}
			if move.Action == bot.ActionWin {
				// Self-drawn wins finish the game inside the draw step, so a
				// win reported here cannot be realized. Discard and play on.
				log.WithField("seat", seat).Warn("bot reported a win at discard time")
			}
			tile := pickDiscard(game, seat, move)
			if _, err := svc.Discard(game, seat, tile); err != nil {
				return nil, turns, fmt.Errorf("discard seat %d: %w", seat, err)
			}

		case domain.PhaseClaimResolution:
			claims := svc.BotClaims(game)
			if _, err := svc.ResolveClaims(game, claims); err != nil {
				return nil, turns, fmt.Errorf("resolve claims: %w", err)
			}
		}

		if issues := domain.Validate(game); len(issues) > 0 {
			return nil, turns, fmt.Errorf("state invalid: %v", issues)
		}
	}
	if !game.Finished() {
		return nil, turns, fmt.Errorf("game did not finish in %d turns", maxTurnsPerGame)
	}
	return game, turns, nil
}

// pickDiscard trusts the brain's choice when it names a held tile and falls
// back to the first hand tile otherwise.
func pickDiscard(game *domain.Game, seat int, move bot.Move) domain.Tile {
	player := game.PlayerAt(seat)
	if move.Action == bot.ActionDiscard && move.Tile != nil {
		for _, t := range player.Hand {
			if t == *move.Tile {
				return t
			}
		}
	}
	return player.Hand[0]
}
