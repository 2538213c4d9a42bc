package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier"
	"github.com/nemogoc/pickup/internal/telemetry"
)

// MailService sends roster-wide email: ad hoc broadcasts and the pre-game summary.
type MailService struct {
	players  playerLister
	games    GameStore
	reports  *ReportService
	notifier notifier.Notifier
	links    Links
	loc      *time.Location
	clock    clock.Clock
	logger   *slog.Logger
}

type MailServiceConfig struct {
	Players  playerLister
	Games    GameStore
	Reports  *ReportService
	Notifier notifier.Notifier
	Links    Links
	Location *time.Location
	Clock    clock.Clock
	Logger   *slog.Logger
}

func NewMailService(cfg MailServiceConfig) *MailService {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &MailService{
		players:  cfg.Players,
		games:    cfg.Games,
		reports:  cfg.Reports,
		notifier: cfg.Notifier,
		links:    cfg.Links,
		loc:      loc,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}
}

// Broadcast sends the same message to every player, one email each. The body
// may contain basic HTML; unsafe markup is removed.
func (s *MailService) Broadcast(ctx context.Context, subject, body string) (report notifier.Report, err error) {
	ctx, span := telemetry.Start(ctx, "mail.Broadcast")
	defer func() { telemetry.End(span, err) }()

	subject = cleanText(subject)
	if subject == "" || strings.TrimSpace(body) == "" {
		return notifier.Report{}, models.NewValidationError("subject, body", "subject and body are required")
	}

	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return notifier.Report{}, err
	}
	if len(players) == 0 {
		return notifier.Report{}, models.ErrNoRecipients
	}

	html, text, err := broadcastBody(s.links, body)
	if err != nil {
		return notifier.Report{}, err
	}
	msgs := make([]notifier.Message, 0, len(players))
	for _, p := range players {
		msgs = append(msgs, notifier.Message{To: []string{p.Email}, Subject: subject, HTML: html, Text: text})
	}

	report = notifier.Deliver(ctx, s.notifier, s.logger, msgs...)
	s.logger.InfoContext(ctx, "broadcast sent", "attempted", report.Attempted, "failed", report.Failed)
	return report, nil
}

// ReminderResult describes one run of the pre-game summary.
// Game is nil when nothing is scheduled for tomorrow.
type ReminderResult struct {
	Game          *models.Game    `json:"game"`
	Notifications notifier.Report `json:"notifications"`
}

// SendTomorrowSummary emails all players the attendance for the earliest game
// scheduled tomorrow (local time). It sends one message addressed to everyone,
// so a delivery failure counts against every recipient.
func (s *MailService) SendTomorrowSummary(ctx context.Context) (result *ReminderResult, err error) {
	ctx, span := telemetry.Start(ctx, "mail.SendTomorrowSummary")
	defer func() { telemetry.End(span, err) }()

	tomorrow := s.clock.Now().In(s.loc).AddDate(0, 0, 1).Format("2006-01-02")
	game, err := s.games.FindGameOn(ctx, tomorrow)
	if err != nil {
		if models.IsNotFound(err) {
			s.logger.InfoContext(ctx, "no game tomorrow, skipping summary", "date", tomorrow)
			return &ReminderResult{}, nil
		}
		return nil, err
	}

	summary, err := s.reports.rosterSummary(ctx, game)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	result = &ReminderResult{Game: game}
	if len(players) == 0 {
		return result, nil
	}

	html, text, err := render("summary", newSummaryData(s.links, *summary))
	if err != nil {
		return nil, err
	}
	to := make([]string, 0, len(players))
	for _, p := range players {
		to = append(to, p.Email)
	}

	result.Notifications = notifier.Deliver(ctx, s.notifier, s.logger, notifier.Message{
		To:      to,
		Subject: "Tomorrow's Basketball: Attendance Summary",
		HTML:    html,
		Text:    text,
	})
	s.logger.InfoContext(ctx, "summary email sent",
		"game_id", game.ID,
		"recipients", len(to),
		"failed", result.Notifications.Failed)
	return result, nil
}
