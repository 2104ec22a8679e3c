package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pinoymahjong/internal/domain"
)

// Service contains mahjong use-cases operating on domain state. It owns the
// claim policy for bot seats; the domain layer only answers legality.
type Service struct {
	rng *rand.Rand
	log logrus.FieldLogger
}

// NewService constructs a Service with the provided rng and logger, or
// time-seeded / standard defaults when nil.
func NewService(rng *rand.Rand, log logrus.FieldLogger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{rng: rng, log: log}
}

var (
	ErrWrongPlayerCount = errors.New("exactly four players required")
	ErrGameFinished     = errors.New("game is finished")
	ErrNotYourTurn      = errors.New("not this seat's turn")
	ErrClaimRejected    = errors.New("claim rejected")
	ErrNoLiveDiscard    = errors.New("no discard to resolve")
)

// PlayerSpec describes one seat for StartGame.
type PlayerSpec struct {
	ID    string
	Name  string
	IsBot bool
}

// StartGame initializes a new Game with exactly four seats, deals hands, and
// emits the opening events. Instant ambitions scored during the deal (initial
// flower bonuses, a dealt winning hand) are included in the event stream.
func (s *Service) StartGame(specs []PlayerSpec) (*domain.Game, []Event, error) {
	if len(specs) != 4 {
		return nil, nil, ErrWrongPlayerCount
	}

	players := make([]*domain.Player, len(specs))
	for i, spec := range specs {
		id := spec.ID
		if id == "" {
			id = uuid.NewString()
		}
		players[i] = &domain.Player{
			ID:    id,
			Name:  spec.Name,
			Seat:  i,
			IsBot: spec.IsBot,
		}
	}

	game := domain.NewGame(players, s.rng)

	events := make([]Event, 0, len(players)+2)
	for _, pl := range players {
		events = append(events, Event{
			Kind: EventHandDealt,
			Payload: HandDealtPayload{
				PlayerID: pl.ID,
				Seat:     pl.Seat,
				Hand:     pl.Hand,
				Flowers:  pl.Flowers,
			},
			Recipients: []string{pl.ID},
		})
	}
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			DealerSeat:      game.Dealer,
			FirstPlayerSeat: game.CurrentPlayer,
		},
	})
	events = append(events, ambitionEvents(game, 0)...)
	if game.Finished() {
		events = append(events, gameEndedEvent(game))
	}

	s.log.WithFields(logrus.Fields{
		"game_id": game.ID,
		"dealer":  game.Dealer,
	}).Info("game started")

	return game, events, nil
}

// Draw draws a tile for the given seat. When the wall is exhausted the game is
// declared a stalemate, per house rules (no winner, no payout).
func (s *Service) Draw(game *domain.Game, seat int) ([]Event, error) {
	if game.Finished() {
		return nil, ErrGameFinished
	}
	if game.CurrentPlayer != seat {
		return nil, ErrNotYourTurn
	}
	if game.Phase != domain.PhaseDraw {
		return nil, domain.ErrWrongPhase
	}
	if game.WallCount() == 0 {
		game.MarkStalemate()
		s.log.WithField("game_id", game.ID).Info("wall exhausted, stalemate")
		return []Event{gameEndedEvent(game)}, nil
	}

	before := len(game.Ambitions)
	tile := game.DrawTile(seat)
	events := []Event{{
		Kind: EventTileDrawn,
		Payload: TileDrawnPayload{
			Seat:      seat,
			Tile:      tile,
			WallCount: game.WallCount(),
		},
		Recipients: recipientsFor(game, seat),
	}}
	events = append(events, ambitionEvents(game, before)...)
	if game.Finished() {
		events = append(events, gameEndedEvent(game))
	}
	return events, nil
}

// Discard discards a tile from the given seat's hand and opens a claim window.
func (s *Service) Discard(game *domain.Game, seat int, tile domain.Tile) ([]Event, error) {
	if game.Finished() {
		return nil, ErrGameFinished
	}
	if game.CurrentPlayer != seat {
		return nil, ErrNotYourTurn
	}
	if game.Phase != domain.PhaseDiscard {
		return nil, domain.ErrWrongPhase
	}
	if err := game.DiscardTile(seat, tile); err != nil {
		return nil, err
	}

	events := []Event{
		{
			Kind:    EventTileDiscarded,
			Payload: TileDiscardedPayload{Seat: seat, Tile: tile},
		},
		{
			Kind: EventClaimWindow,
			Payload: ClaimWindowPayload{
				DiscarderSeat: seat,
				Tile:          tile,
				DurationMS:    game.ClaimWindow.Duration.Milliseconds(),
			},
		},
	}
	return events, nil
}

// SubmitClaim validates and applies a single claim against the live discard.
// A claim against a discard already cleared fails naturally because the
// window state changed underneath it.
func (s *Service) SubmitClaim(game *domain.Game, claim domain.Claim) ([]Event, error) {
	if game.Finished() {
		return nil, ErrGameFinished
	}
	before := len(game.Ambitions)
	meldsBefore := meldCount(game, claim.Seat)
	if !domain.ProcessClaim(game, claim) {
		return nil, ErrClaimRejected
	}
	return claimEvents(game, claim, before, meldsBefore), nil
}

// BotClaims gathers the claims every bot seat would make against the live
// discard: win whenever legal, kong and pung whenever legal, chow whenever at
// least one legal run exists. Human seats are skipped; their claims arrive
// through SubmitClaim during the window.
func (s *Service) BotClaims(game *domain.Game) []domain.Claim {
	if game.Finished() || game.LastDiscard == nil {
		return nil
	}
	var claims []domain.Claim
	for _, pl := range game.Players {
		if !pl.IsBot || pl.Seat == game.LastDiscardPlayer {
			continue
		}
		for _, ct := range []domain.ClaimType{domain.ClaimWin, domain.ClaimKong, domain.ClaimPung, domain.ClaimChow} {
			claim := domain.Claim{Type: ct, Seat: pl.Seat}
			if domain.IsValidClaim(game, claim) {
				claims = append(claims, claim)
				break
			}
		}
	}
	return claims
}

// ResolveClaims closes the claim window: the highest-priority claim wins
// (Win > Kong > Pung > Chow), ties broken by turn order from the discarder's
// left. With no claims the turn simply advances.
func (s *Service) ResolveClaims(game *domain.Game, claims []domain.Claim) ([]Event, error) {
	if game.Finished() {
		return nil, ErrGameFinished
	}
	if game.LastDiscard == nil {
		return nil, ErrNoLiveDiscard
	}

	best, ok := selectClaim(game, claims)
	if !ok {
		return s.advance(game), nil
	}

	events, err := s.SubmitClaim(game, best)
	if err != nil {
		// The chosen claim passed validation during selection; a rejection
		// here means the caller raced the window. Fall back to advancing.
		s.log.WithFields(logrus.Fields{
			"game_id": game.ID,
			"seat":    best.Seat,
			"type":    best.Type,
		}).Warn("selected claim rejected, advancing turn")
		return s.advance(game), nil
	}
	return events, nil
}

// DeclareSecretKong declares a concealed kong of four matching hand tiles.
func (s *Service) DeclareSecretKong(game *domain.Game, seat int, tile domain.Tile) ([]Event, error) {
	before := len(game.Ambitions)
	if err := game.DeclareSecretKong(seat, tile); err != nil {
		return nil, err
	}
	pl := game.PlayerAt(seat)
	meld := &pl.Melds[len(pl.Melds)-1]
	events := []Event{{
		Kind:    EventClaimApplied,
		Payload: ClaimAppliedPayload{Seat: seat, Type: domain.ClaimKong, Meld: meld},
	}}
	events = append(events, ambitionEvents(game, before)...)
	return events, nil
}

// PromoteToSagasa upgrades an exposed pung to a kong with the fourth tile.
func (s *Service) PromoteToSagasa(game *domain.Game, seat int, tile domain.Tile) ([]Event, error) {
	before := len(game.Ambitions)
	if err := game.PromoteToSagasa(seat, tile); err != nil {
		return nil, err
	}
	events := []Event{{
		Kind:    EventClaimApplied,
		Payload: ClaimAppliedPayload{Seat: seat, Type: domain.ClaimKong, Tiles: []domain.Tile{tile}},
	}}
	events = append(events, ambitionEvents(game, before)...)
	return events, nil
}

func (s *Service) advance(game *domain.Game) []Event {
	skipped := game.SkippedPlayer
	game.AdvanceTurn()
	return []Event{{
		Kind:    EventTurnAdvanced,
		Payload: TurnAdvancedPayload{Seat: game.CurrentPlayer, SkippedSeat: skipped},
	}}
}

// selectClaim validates the submitted claims and returns the winner. Priority
// decides first; among equal priorities the seat closest to the discarder's
// left acts, mirroring physical table order.
func selectClaim(game *domain.Game, claims []domain.Claim) (domain.Claim, bool) {
	var best domain.Claim
	found := false
	for _, claim := range claims {
		if !domain.IsValidClaim(game, claim) {
			continue
		}
		if !found || claimBeats(game, claim, best) {
			best = claim
			found = true
		}
	}
	return best, found
}

func claimBeats(game *domain.Game, a, b domain.Claim) bool {
	if a.Type.Priority() != b.Type.Priority() {
		return a.Type.Priority() > b.Type.Priority()
	}
	return seatDistance(game.LastDiscardPlayer, a.Seat) < seatDistance(game.LastDiscardPlayer, b.Seat)
}

func seatDistance(from, to int) int {
	return ((to - from) + 4) % 4
}

func claimEvents(game *domain.Game, claim domain.Claim, ambitionsBefore, meldsBefore int) []Event {
	payload := ClaimAppliedPayload{Seat: claim.Seat, Type: claim.Type}
	if pl := game.PlayerAt(claim.Seat); pl != nil && len(pl.Melds) > meldsBefore {
		payload.Meld = &pl.Melds[len(pl.Melds)-1]
	}
	events := []Event{{Kind: EventClaimApplied, Payload: payload}}
	events = append(events, ambitionEvents(game, ambitionsBefore)...)
	if game.Finished() {
		events = append(events, gameEndedEvent(game))
	}
	return events
}

func ambitionEvents(game *domain.Game, since int) []Event {
	var events []Event
	for _, rec := range game.Ambitions[since:] {
		events = append(events, Event{
			Kind:    EventAmbitionScored,
			Payload: AmbitionScoredPayload{Seat: rec.Seat, Type: rec.Type, Payout: rec.Payout},
		})
	}
	return events
}

func gameEndedEvent(game *domain.Game) Event {
	payload := GameEndedPayload{
		WinnerSeat: game.Winner,
		WinType:    game.WinType,
		Stalemate:  game.Winner == domain.NoSeat,
	}
	if game.WinningHand != nil && game.Winner != domain.NoSeat {
		pl := game.PlayerAt(game.Winner)
		if pl != nil {
			cond := domain.IsWinningHand(game.WinningHand.Tiles, game.WinningHand.Melds, game.WinningHand.Flowers)
			payload.TotalPayout = cond.TotalPayout
			payload.Breakdown = cond.Breakdown
		}
	}
	return Event{Kind: EventGameEnded, Payload: payload}
}

func meldCount(game *domain.Game, seat int) int {
	if pl := game.PlayerAt(seat); pl != nil {
		return len(pl.Melds)
	}
	return 0
}

func recipientsFor(game *domain.Game, seat int) []string {
	if pl := game.PlayerAt(seat); pl != nil {
		return []string{pl.ID}
	}
	return nil
}
