package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects which brain a bot agent plays with.
type BotLevel int

const (
	BotLevelRandom BotLevel = iota
	BotLevelHeuristic
)

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelRandom:
		return &RandomBot{Rng: rng}, nil
	case BotLevelHeuristic:
		return &HeuristicBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
