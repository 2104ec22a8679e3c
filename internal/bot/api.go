package bot

import (
	"pinoymahjong/internal/domain"
)

// ActionType is the kind of move a brain can request on its own turn.
type ActionType string

const (
	ActionDraw    ActionType = "draw"
	ActionDiscard ActionType = "discard"
	ActionWin     ActionType = "win"
)

// Move represents the decision made by the AI for its own turn. Tile is set
// only for discards.
type Move struct {
	Action ActionType
	Tile   *domain.Tile
}

// Brain is the interface all bot strategies implement. Claim decisions are
// not part of it: the orchestration layer resolves claims centrally during
// claim resolution.
type Brain interface {
	CalculateMove(g *domain.Game, seat int) (Move, error)
}
