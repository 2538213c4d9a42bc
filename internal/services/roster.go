package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/telemetry"
)

// RosterService manages players and guests.
type RosterService struct {
	players PlayerStore
	guests  GuestStore
	clock   clock.Clock
	logger  *slog.Logger
}

func NewRosterService(players PlayerStore, guests GuestStore, clk clock.Clock, logger *slog.Logger) *RosterService {
	return &RosterService{players: players, guests: guests, clock: clk, logger: logger}
}

// RegisterPlayers adds players to the roster. The whole batch is rejected if
// any entry lacks a name or a valid email; otherwise emails already on the
// roster are skipped and counted.
func (s *RosterService) RegisterPlayers(ctx context.Context, inputs []models.PlayerInput) (result models.RegisterResult, err error) {
	ctx, span := telemetry.Start(ctx, "roster.RegisterPlayers", attribute.Int("players.count", len(inputs)))
	defer func() { telemetry.End(span, err) }()

	if len(inputs) == 0 {
		return models.RegisterResult{}, models.NewValidationError("players", "at least one player is required")
	}

	now := s.clock.Now()
	players := make([]models.Player, 0, len(inputs))
	for i, in := range inputs {
		name := cleanText(in.Name)
		email, ok := normalizeEmail(in.Email)
		field := "players"
		if len(inputs) > 1 {
			field = fmt.Sprintf("players[%d]", i)
		}
		switch {
		case name == "" || email == "":
			return models.RegisterResult{}, models.NewValidationError(field, "name and email are required")
		case !ok:
			return models.RegisterResult{}, models.NewValidationError(field, fmt.Sprintf("%q is not a valid email address", in.Email))
		}
		players = append(players, models.Player{Name: name, Email: email, CreatedAt: now})
	}

	result, err = s.players.InsertPlayers(ctx, players)
	if err != nil {
		return models.RegisterResult{}, err
	}
	s.logger.InfoContext(ctx, "players registered", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

// RemovePlayer deletes a player and their current answers. History is kept.
func (s *RosterService) RemovePlayer(ctx context.Context, email string) (removed *models.Player, err error) {
	ctx, span := telemetry.Start(ctx, "roster.RemovePlayer")
	defer func() { telemetry.End(span, err) }()

	normalized, _ := normalizeEmail(email)
	if normalized == "" {
		return nil, models.NewValidationError("email", "email is required")
	}
	removed, err = s.players.DeletePlayer(ctx, normalized)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "player removed", "player_id", removed.ID)
	return removed, nil
}

// PlayerByEmail resolves a player from their email.
func (s *RosterService) PlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	normalized, _ := normalizeEmail(email)
	if normalized == "" {
		return nil, models.NewValidationError("email", "email is required")
	}
	return s.players.GetPlayerByEmail(ctx, normalized)
}

// PlayerID returns the stable identifier used in a player's capability links.
func (s *RosterService) PlayerID(ctx context.Context, email string) (string, error) {
	p, err := s.PlayerByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// Player looks a player up by id.
func (s *RosterService) Player(ctx context.Context, id string) (*models.Player, error) {
	if id == "" {
		return nil, models.NewValidationError("playerId", "playerId is required")
	}
	return s.players.GetPlayerByID(ctx, id)
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return s.players.ListPlayers(ctx)
}

// ResolveGuest returns the guest registered under name, creating one on first use.
// Two different people with the same name share one guest record.
func (s *RosterService) ResolveGuest(ctx context.Context, name, invitedBy string) (guest *models.Guest, err error) {
	ctx, span := telemetry.Start(ctx, "roster.ResolveGuest")
	defer func() { telemetry.End(span, err) }()

	name = cleanText(name)
	if name == "" {
		return nil, models.NewValidationError("name", "guest name is required")
	}

	guest, created, err := s.guests.ResolveGuest(ctx, models.Guest{
		Name:      name,
		InvitedBy: cleanText(invitedBy),
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.InfoContext(ctx, "guest created", "guest_id", guest.ID, "name", guest.Name)
	}
	return guest, nil
}
