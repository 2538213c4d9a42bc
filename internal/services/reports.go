package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/telemetry"
)

// DefaultLogLimit is how many recent log entries are shown by default, and the most returned.
const DefaultLogLimit = 200

// ReportService derives read-only views from the ledger. Nothing is cached.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// AttendanceSummary lists everyone who answered for gameID with aggregate counts.
func (s *ReportService) AttendanceSummary(ctx context.Context, gameID string) (summary *models.AttendanceSummary, err error) {
	ctx, span := telemetry.Start(ctx, "reports.AttendanceSummary", attribute.String("game.id", gameID))
	defer func() { telemetry.End(span, err) }()

	if gameID == "" {
		return nil, models.NewValidationError("gameId", "gameId is required")
	}
	game, err := s.store.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, game)
}

func (s *ReportService) summarize(ctx context.Context, game *models.Game) (*models.AttendanceSummary, error) {
	entries, err := s.store.AttendanceEntries(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	summary := &models.AttendanceSummary{Game: *game, Entries: entries}
	for _, e := range entries {
		summary.Counts.Add(e.Status)
	}
	return summary, nil
}

// RosterSummary extends the attendance summary with players who have not answered.
// An empty gameID means the current game.
func (s *ReportService) RosterSummary(ctx context.Context, gameID string) (summary *models.RosterSummary, err error) {
	ctx, span := telemetry.Start(ctx, "reports.RosterSummary", attribute.String("game.id", gameID))
	defer func() { telemetry.End(span, err) }()

	var game *models.Game
	if gameID == "" {
		game, err = s.store.GetCurrentGame(ctx)
	} else {
		game, err = s.store.GetGameByID(ctx, gameID)
	}
	if err != nil {
		return nil, err
	}
	return s.rosterSummary(ctx, game)
}

func (s *ReportService) rosterSummary(ctx context.Context, game *models.Game) (*models.RosterSummary, error) {
	attendance, err := s.summarize(ctx, game)
	if err != nil {
		return nil, err
	}
	missing, err := s.store.PlayersWithoutResponse(ctx, game.ID)
	if err != nil {
		return nil, err
	}
	return &models.RosterSummary{AttendanceSummary: *attendance, NoResponse: missing}, nil
}

// RecentLogs returns the latest log entries for the current game, newest first.
// limit <= 0 or above DefaultLogLimit falls back to DefaultLogLimit.
func (s *ReportService) RecentLogs(ctx context.Context, limit int) (entries []models.LogEntry, err error) {
	ctx, span := telemetry.Start(ctx, "reports.RecentLogs")
	defer func() { telemetry.End(span, err) }()

	if limit <= 0 || limit > DefaultLogLimit {
		limit = DefaultLogLimit
	}
	game, err := s.store.GetCurrentGame(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.RecentLogs(ctx, game.ID, limit)
}
