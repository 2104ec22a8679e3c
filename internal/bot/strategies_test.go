package bot

import (
	"math/rand"
	"testing"

	"pinoymahjong/internal/domain"
)

func discardingGame(hand []domain.Tile) *domain.Game {
	players := make([]*domain.Player, 4)
	for i := range players {
		players[i] = &domain.Player{Seat: i, IsBot: true}
	}
	players[0].Hand = hand
	return &domain.Game{
		Players:           players,
		CurrentPlayer:     0,
		LastDiscardPlayer: domain.NoSeat,
		SkippedPlayer:     domain.NoSeat,
		Winner:            domain.NoSeat,
		Phase:             domain.PhaseDiscard,
		Status:            domain.StatusPlaying,
	}
}

func tiles(suit domain.Suit, values ...int) []domain.Tile {
	out := make([]domain.Tile, len(values))
	seen := map[int]int{}
	for i, v := range values {
		out[i] = domain.Tile{Suit: suit, Value: v, Copy: seen[v]}
		seen[v]++
	}
	return out
}

func TestHeuristicBotDeclaresWin(t *testing.T) {
	hand := append(tiles(domain.SuitCircles, 1, 2, 3, 4, 5, 6, 7, 8, 9), tiles(domain.SuitBamboos, 1, 1, 1, 2, 2, 2, 5, 5)...)
	g := discardingGame(hand)

	brain := &HeuristicBot{}
	move, err := brain.CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Action != ActionWin {
		t.Errorf("expected win, got %s", move.Action)
	}
}

func TestHeuristicBotDiscardsLooseTile(t *testing.T) {
	// Two strong circle groups plus a lone honor; the honor must go.
	hand := append(
		tiles(domain.SuitCircles, 4, 5, 6, 7, 7, 7),
		domain.Tile{Suit: domain.SuitWinds, Wind: domain.WindNorth},
	)
	g := discardingGame(hand)

	brain := &HeuristicBot{}
	move, err := brain.CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Action != ActionDiscard || move.Tile == nil {
		t.Fatalf("expected a discard, got %+v", move)
	}
	if move.Tile.Suit != domain.SuitWinds {
		t.Errorf("expected the lone wind to go, bot chose %s", move.Tile.Name())
	}
}

func TestHeuristicBotDrawsOutOfTurn(t *testing.T) {
	g := discardingGame(tiles(domain.SuitCircles, 1, 2, 3))
	g.CurrentPlayer = 2

	brain := &HeuristicBot{}
	move, err := brain.CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Action != ActionDraw {
		t.Errorf("expected draw out of turn, got %s", move.Action)
	}
}

func TestRandomBotDiscardsHeldTile(t *testing.T) {
	hand := tiles(domain.SuitBamboos, 1, 3, 5, 7, 9)
	g := discardingGame(hand)

	brain := &RandomBot{Rng: rand.New(rand.NewSource(3))}
	move, err := brain.CalculateMove(g, 0)
	if err != nil {
		t.Fatalf("CalculateMove failed: %v", err)
	}
	if move.Action != ActionDiscard || move.Tile == nil {
		t.Fatalf("expected a discard, got %+v", move)
	}
	found := false
	for _, tile := range hand {
		if tile == *move.Tile {
			found = true
		}
	}
	if !found {
		t.Errorf("random bot discarded a tile it does not hold: %v", move.Tile)
	}
}

func TestAgentPlay(t *testing.T) {
	g := discardingGame(tiles(domain.SuitCircles, 1, 2, 3))
	agent := &Agent{ID: "b1", Name: "Bot 1", Seat: 0, Strategy: &HeuristicBot{}}

	move, err := agent.Play(g)
	if err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if move.Action != ActionDiscard {
		t.Errorf("agent at its own discard phase should discard, got %s", move.Action)
	}
}

func TestNewBrain(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewBrain(BotLevelRandom, rng); err != nil {
		t.Errorf("random level should build: %v", err)
	}
	if _, err := NewBrain(BotLevelHeuristic, rng); err != nil {
		t.Errorf("heuristic level should build: %v", err)
	}
	if _, err := NewBrain(BotLevel(99), rng); err == nil {
		t.Error("unknown level should fail")
	}
}
