package services

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/telemetry"
)

// ResponseInput is a raw RSVP as it arrives from a link or form.
type ResponseInput struct {
	GameID    string
	SubjectID string
	Status    string
	Origin    string
}

// GuestResponseInput is the dashboard guest form.
type GuestResponseInput struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	GameID    string `json:"gameId"`
	InvitedBy string `json:"whoInvited"`
}

// PlayerResponse is the outcome of a player RSVP.
type PlayerResponse struct {
	Player  models.Player        `json:"player"`
	Outcome models.RecordOutcome `json:"outcome"`
}

// GuestResponse is the outcome of a guest RSVP.
type GuestResponse struct {
	Guest   models.Guest         `json:"guest"`
	Outcome models.RecordOutcome `json:"outcome"`
}

// LedgerService is the only writer of RSVP state.
type LedgerService struct {
	ledger LedgerStore
	games  GameStore
	roster *RosterService
	clock  clock.Clock
	logger *slog.Logger
}

func NewLedgerService(ledger LedgerStore, games GameStore, roster *RosterService, clk clock.Clock, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledger: ledger, games: games, roster: roster, clock: clk, logger: logger}
}

// RecordResponse validates and applies one transition for (game, subject).
// The subject id is taken as-is: players and guests are treated the same.
func (s *LedgerService) RecordResponse(ctx context.Context, in ResponseInput) (outcome *models.RecordOutcome, err error) {
	ctx, span := telemetry.Start(ctx, "ledger.RecordResponse",
		attribute.String("game.id", in.GameID),
		attribute.String("subject.id", in.SubjectID))
	defer func() { telemetry.End(span, err) }()

	status, err := validateResponse(in, "subjectId")
	if err != nil {
		return nil, err
	}
	if _, err := s.games.GetGameByID(ctx, in.GameID); err != nil {
		return nil, err
	}

	outcome, err = s.ledger.RecordResponse(ctx, models.ResponseChange{
		GameID:    in.GameID,
		SubjectID: in.SubjectID,
		Status:    status,
		Origin:    in.Origin,
		At:        s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	prior := "none"
	if outcome.PriorStatus != nil {
		prior = string(*outcome.PriorStatus)
	}
	s.logger.InfoContext(ctx, "rsvp recorded",
		"game_id", in.GameID,
		"subject_id", in.SubjectID,
		"status", string(status),
		"prior", prior,
		"origin", in.Origin)
	return outcome, nil
}

func validateResponse(in ResponseInput, subjectField string) (models.Status, error) {
	var missing []string
	if strings.TrimSpace(in.GameID) == "" {
		missing = append(missing, "gameId")
	}
	if strings.TrimSpace(in.SubjectID) == "" {
		missing = append(missing, subjectField)
	}
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return "", models.NewValidationError(strings.Join(missing, ", "), "missing parameters")
	}
	return models.ParseStatus(in.Status)
}

// RespondAsPlayer handles a capability link: the player must still be on the roster.
func (s *LedgerService) RespondAsPlayer(ctx context.Context, gameID, playerID, status, origin string) (*PlayerResponse, error) {
	if _, err := validateResponse(ResponseInput{GameID: gameID, SubjectID: playerID, Status: status}, "playerId"); err != nil {
		return nil, err
	}
	player, err := s.roster.Player(ctx, playerID)
	if err != nil {
		return nil, err
	}
	outcome, err := s.RecordResponse(ctx, ResponseInput{GameID: gameID, SubjectID: player.ID, Status: status, Origin: origin})
	if err != nil {
		return nil, err
	}
	return &PlayerResponse{Player: *player, Outcome: *outcome}, nil
}

// RespondByEmail records a player's answer given their email. An empty gameID
// means the current game.
func (s *LedgerService) RespondByEmail(ctx context.Context, gameID, email, status, origin string) (*PlayerResponse, error) {
	if _, err := models.ParseStatus(status); err != nil {
		return nil, err
	}
	player, err := s.roster.PlayerByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	gameID, err = s.gameOrCurrent(ctx, gameID)
	if err != nil {
		return nil, err
	}
	outcome, err := s.RecordResponse(ctx, ResponseInput{GameID: gameID, SubjectID: player.ID, Status: status, Origin: origin})
	if err != nil {
		return nil, err
	}
	return &PlayerResponse{Player: *player, Outcome: *outcome}, nil
}

// RecordGuestResponse resolves or creates the guest by name, then records the
// answer under the guest's id. An empty GameID means the current game.
func (s *LedgerService) RecordGuestResponse(ctx context.Context, in GuestResponseInput, origin string) (*GuestResponse, error) {
	if _, err := models.ParseStatus(in.Status); err != nil {
		return nil, err
	}
	if cleanText(in.Name) == "" {
		return nil, models.NewValidationError("name", "guest name is required")
	}
	gameID, err := s.gameOrCurrent(ctx, in.GameID)
	if err != nil {
		return nil, err
	}
	guest, err := s.roster.ResolveGuest(ctx, in.Name, in.InvitedBy)
	if err != nil {
		return nil, err
	}
	outcome, err := s.RecordResponse(ctx, ResponseInput{GameID: gameID, SubjectID: guest.ID, Status: in.Status, Origin: origin})
	if err != nil {
		return nil, err
	}
	return &GuestResponse{Guest: *guest, Outcome: *outcome}, nil
}

// gameOrCurrent resolves gameID, or the current game when it is empty, and
// checks that the game exists.
func (s *LedgerService) gameOrCurrent(ctx context.Context, gameID string) (string, error) {
	var (
		game *models.Game
		err  error
	)
	if id := strings.TrimSpace(gameID); id != "" {
		game, err = s.games.GetGameByID(ctx, id)
	} else {
		game, err = s.games.GetCurrentGame(ctx)
	}
	if err != nil {
		return "", err
	}
	return game.ID, nil
}
