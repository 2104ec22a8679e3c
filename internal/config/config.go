package config

import (
	"fmt"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// GameConfig carries the tunables the orchestration layer owns: claim-window
// pacing, bot behavior, and simulation batch size. The engine itself never
// reads wall-clock settings.
type GameConfig struct {
	// ClaimWindowSeconds is the total time a discard stays contestable.
	ClaimWindowSeconds int `json:"claim_window_seconds"`
	// HumanAdvantageSeconds is the head start humans get before bot claims
	// are evaluated against the same discard.
	HumanAdvantageSeconds int `json:"human_advantage_seconds"`
	// BotLevel selects the bot brain: 0 random, 1 heuristic.
	BotLevel int `json:"bot_level"`
	// BotThinkDelayMS paces bot moves so humans can follow the table.
	BotThinkDelayMS int `json:"bot_think_delay_ms"`
	// SimulationGames is how many games the simulate command plays.
	SimulationGames int `json:"simulation_games"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

func defaults() *GameConfig {
	return &GameConfig{
		ClaimWindowSeconds:    8,
		HumanAdvantageSeconds: 3,
		BotLevel:              1,
		BotThinkDelayMS:       500,
		SimulationGames:       100,
	}
}

// LoadGameConfig loads the game configuration from the given path, then
// applies environment overrides. An empty path loads defaults plus overrides.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c := defaults()
		if path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				loadErr = fmt.Errorf("failed to read game config: %w", err)
				return
			}
			if err := jsoniter.Unmarshal(data, c); err != nil {
				loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
				return
			}
		}
		applyEnv(c)
		cfg = c
	})
	return loadErr
}

// applyEnv lets deployments override single fields without editing the file.
func applyEnv(c *GameConfig) {
	if v, ok := os.LookupEnv("PM_CLAIM_WINDOW_SECONDS"); ok {
		c.ClaimWindowSeconds = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv("PM_HUMAN_ADVANTAGE_SECONDS"); ok {
		c.HumanAdvantageSeconds = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv("PM_BOT_LEVEL"); ok {
		c.BotLevel = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv("PM_BOT_THINK_DELAY_MS"); ok {
		c.BotThinkDelayMS = cast.ToInt(v)
	}
	if v, ok := os.LookupEnv("PM_SIMULATION_GAMES"); ok {
		c.SimulationGames = cast.ToInt(v)
	}
}

// GetGameConfig returns the global game configuration, or defaults when
// LoadGameConfig was never called.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return defaults()
	}
	return cfg
}
