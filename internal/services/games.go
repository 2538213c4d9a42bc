package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier"
	"github.com/nemogoc/pickup/internal/telemetry"
)

// GameInput is a game schedule as entered by an organiser.
type GameInput struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM, 24h
	Location string `json:"location"`
}

// InviteResult reports a game together with how its invitations went.
// NoPlayers is set when the roster was empty and nobody was notified.
type InviteResult struct {
	Game          models.Game     `json:"game"`
	Notifications notifier.Report `json:"notifications"`
	NoPlayers     bool            `json:"noPlayers"`
}

// GameService schedules games and sends invitations.
type GameService struct {
	games    GameStore
	players  playerLister
	notifier notifier.Notifier
	links    Links
	style    config.InviteStyle
	loc      *time.Location
	clock    clock.Clock
	logger   *slog.Logger
}

type GameServiceConfig struct {
	Games       GameStore
	Players     playerLister
	Notifier    notifier.Notifier
	Links       Links
	InviteStyle config.InviteStyle
	Location    *time.Location
	Clock       clock.Clock
	Logger      *slog.Logger
}

func NewGameService(cfg GameServiceConfig) *GameService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	style := cfg.InviteStyle
	if style == "" {
		style = config.InviteLinks
	}
	return &GameService{
		games:    cfg.Games,
		players:  cfg.Players,
		notifier: cfg.Notifier,
		links:    cfg.Links,
		style:    style,
		loc:      loc,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
}

// parseSchedule validates the input and returns the display and normalised
// dates. Both are the wall-clock time as entered; no zone is applied.
func parseSchedule(in GameInput) (display, iso, location string, err error) {
	date := strings.TrimSpace(in.Date)
	clk := strings.TrimSpace(in.Time)
	location = cleanText(in.Location)

	var missing []string
	if date == "" {
		missing = append(missing, "date")
	}
	if clk == "" {
		missing = append(missing, "time")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return "", "", "", models.NewValidationError(strings.Join(missing, ", "), "date, time, and location are required")
	}

	when, err := time.Parse("2006-01-02 15:04", date+" "+clk)
	if err != nil {
		return "", "", "", models.NewValidationError("date", "date must be YYYY-MM-DD and time HH:MM")
	}
	return when.Format(models.DisplayDateLayout), when.Format(models.ISODateLayout), location, nil
}

// warnIfSkipped logs when iso names a local time that does not exist in the
// configured zone, such as one inside a daylight-saving gap.
func (s *GameService) warnIfSkipped(ctx context.Context, iso string) {
	when, err := time.ParseInLocation(models.ISODateLayout, iso, s.loc)
	if err == nil && when.Format(models.ISODateLayout) != iso {
		s.logger.WarnContext(ctx, "game time does not exist in the configured timezone", "date", iso, "timezone", s.loc.String())
	}
}

// CreateGame stores a new game, which becomes the current game, and invites
// every player. Delivery problems are reported in the result, never as an error.
func (s *GameService) CreateGame(ctx context.Context, in GameInput) (result *InviteResult, err error) {
	ctx, span := telemetry.Start(ctx, "games.CreateGame")
	defer func() { telemetry.End(span, err) }()

	display, iso, location, err := parseSchedule(in)
	if err != nil {
		return nil, err
	}
	s.warnIfSkipped(ctx, iso)

	game, err := s.games.CreateGame(ctx, models.Game{
		DisplayDate: display,
		DateISO:     iso,
		Location:    location,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("game.id", game.ID))
	s.logger.InfoContext(ctx, "game created", "game_id", game.ID, "date", game.DisplayDate, "location", game.Location)

	return s.invite(ctx, *game)
}

// ResendInvites sends the current game's invitations again.
func (s *GameService) ResendInvites(ctx context.Context) (result *InviteResult, err error) {
	ctx, span := telemetry.Start(ctx, "games.ResendInvites")
	defer func() { telemetry.End(span, err) }()

	game, err := s.games.GetCurrentGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.invite(ctx, *game)
}

// EditCurrentGame rewrites the current game's schedule in place. Players are not re-notified.
func (s *GameService) EditCurrentGame(ctx context.Context, in GameInput) (game *models.Game, err error) {
	ctx, span := telemetry.Start(ctx, "games.EditCurrentGame")
	defer func() { telemetry.End(span, err) }()

	display, iso, location, err := parseSchedule(in)
	if err != nil {
		return nil, err
	}
	s.warnIfSkipped(ctx, iso)
	game, err = s.games.UpdateCurrentGame(ctx, display, iso, location)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "game edited", "game_id", game.ID, "date", game.DisplayDate, "location", game.Location)
	return game, nil
}

// CurrentGame returns the most recently created game.
func (s *GameService) CurrentGame(ctx context.Context) (*models.Game, error) {
	return s.games.GetCurrentGame(ctx)
}

// Game returns a game by id.
func (s *GameService) Game(ctx context.Context, id string) (*models.Game, error) {
	if id == "" {
		return nil, models.NewValidationError("gameId", "gameId is required")
	}
	return s.games.GetGameByID(ctx, id)
}

func (s *GameService) invite(ctx context.Context, game models.Game) (*InviteResult, error) {
	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	result := &InviteResult{Game: game}
	if len(players) == 0 {
		result.NoPlayers = true
		s.logger.InfoContext(ctx, "no players to invite", "game_id", game.ID)
		return result, nil
	}

	var msgs []notifier.Message
	switch s.style {
	case config.InviteDashboard:
		html, text, err := dashboardInvite(s.links, game)
		if err != nil {
			return nil, err
		}
		for _, p := range players {
			msgs = append(msgs, notifier.Message{To: []string{p.Email}, Subject: inviteSubject(game), HTML: html, Text: text})
		}
	default:
		for _, p := range players {
			msg, err := linkInvite(s.links, game, p)
			if err != nil {
				return nil, err
			}
			msgs = append(msgs, msg)
		}
	}

	result.Notifications = notifier.Deliver(ctx, s.notifier, s.logger, msgs...)
	s.logger.InfoContext(ctx, "invitations sent",
		"game_id", game.ID,
		"style", string(s.style),
		"attempted", result.Notifications.Attempted,
		"failed", result.Notifications.Failed)
	return result, nil
}
