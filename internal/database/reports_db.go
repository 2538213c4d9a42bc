package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nemogoc/pickup/internal/models"
)

type attendanceRow struct {
	SubjectID  string         `db:"subject_id"`
	Status     models.Status  `db:"status"`
	UpdatedAt  time.Time      `db:"updated_at"`
	PlayerName sql.NullString `db:"player_name"`
	GuestName  sql.NullString `db:"guest_name"`
}

func (r attendanceRow) entry() models.AttendanceEntry {
	e := models.AttendanceEntry{Status: r.Status, UpdatedAt: r.UpdatedAt}
	switch {
	case r.PlayerName.Valid:
		e.Subject = models.PlayerSubject(r.SubjectID)
		e.Name = r.PlayerName.String
	case r.GuestName.Valid:
		e.Subject = models.GuestSubject(r.SubjectID)
		e.Name = r.GuestName.String
	default:
		e.Subject = models.Subject{Kind: models.SubjectUnknown, ID: r.SubjectID}
		e.Name = r.SubjectID
	}
	return e
}

// AttendanceEntries joins a game's current-status rows to players and guests,
// most recently updated first. Subjects that resolve to neither keep their raw id as name.
func (s *Store) AttendanceEntries(ctx context.Context, gameID string) ([]models.AttendanceEntry, error) {
	var rows []attendanceRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT r.subject_id, r.status, r.updated_at, p.name AS player_name, g.name AS guest_name
		FROM responses r
		LEFT JOIN players p ON p.id = r.subject_id
		LEFT JOIN guests g ON g.id = r.subject_id
		WHERE r.game_id = ?
		ORDER BY r.updated_at DESC, r.rowid DESC`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	entries := make([]models.AttendanceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, row.entry())
	}
	return entries, nil
}

// PlayersWithoutResponse lists roster players with no current status for the game.
func (s *Store) PlayersWithoutResponse(ctx context.Context, gameID string) ([]models.Player, error) {
	players := []models.Player{}
	err := s.db.SelectContext(ctx, &players, `
		SELECT p.id, p.name, p.email, p.created_at
		FROM players p
		LEFT JOIN responses r ON r.subject_id = p.id AND r.game_id = ?
		WHERE r.id IS NULL
		ORDER BY p.name COLLATE NOCASE, p.email`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players without response: %w", err)
	}
	return players, nil
}

// RecentLogs returns up to limit log entries for a game, newest first, with
// subject names resolved through players and guests. An entry whose subject
// no longer exists is named by its raw id.
func (s *Store) RecentLogs(ctx context.Context, gameID string, limit int) ([]models.LogEntry, error) {
	entries := []models.LogEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT l.id, l.subject_id, l.game_id, l.new_status, l.prior_status, l.logged_at, l.origin,
			COALESCE(p.name, g.name, l.subject_id) AS subject_name
		FROM rsvp_logs l
		LEFT JOIN players p ON p.id = l.subject_id
		LEFT JOIN guests g ON g.id = l.subject_id
		WHERE l.game_id = ?
		ORDER BY l.id DESC
		LIMIT ?`, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent logs: %w", err)
	}
	return entries, nil
}
