package app

import "pinoymahjong/internal/domain"

// EventKind identifies emitted domain events for caller dispatch.
type EventKind string

const (
	EventGameStarted    EventKind = "game_started"
	EventHandDealt      EventKind = "hand_dealt"
	EventTileDrawn      EventKind = "tile_drawn"
	EventTileDiscarded  EventKind = "tile_discarded"
	EventClaimWindow    EventKind = "claim_window"
	EventClaimApplied   EventKind = "claim_applied"
	EventTurnAdvanced   EventKind = "turn_advanced"
	EventAmbitionScored EventKind = "ambition_scored"
	EventGameEnded      EventKind = "game_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type GameStartedPayload struct {
	DealerSeat      int
	FirstPlayerSeat int
}

type HandDealtPayload struct {
	PlayerID string
	Seat     int
	Hand     []domain.Tile
	Flowers  []domain.Tile
}

type TileDrawnPayload struct {
	Seat      int
	Tile      *domain.Tile
	WallCount int
}

type TileDiscardedPayload struct {
	Seat int
	Tile domain.Tile
}

type ClaimWindowPayload struct {
	DiscarderSeat int
	Tile          domain.Tile
	DurationMS    int64
}

type ClaimAppliedPayload struct {
	Seat  int
	Type  domain.ClaimType
	Meld  *domain.Meld
	Tiles []domain.Tile
}

type TurnAdvancedPayload struct {
	Seat        int
	SkippedSeat int
}

type AmbitionScoredPayload struct {
	Seat   int
	Type   domain.AmbitionType
	Payout float64
}

type GameEndedPayload struct {
	WinnerSeat  int
	WinType     string
	TotalPayout float64
	Breakdown   map[string]float64
	Stalemate   bool
}
