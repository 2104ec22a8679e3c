package bot

import (
	"pinoymahjong/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Seat     int
	Strategy Brain
}

// Play asks the agent to calculate its move based on the current game state.
func (a *Agent) Play(game *domain.Game) (Move, error) {
	move, err := a.Strategy.CalculateMove(game, a.Seat)
	if err != nil {
		return Move{Action: ActionDraw}, err
	}
	return move, nil
}
