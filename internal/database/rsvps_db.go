package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nemogoc/pickup/internal/models"
)

const responseColumns = "id, game_id, subject_id, status, updated_at"

// RecordResponse applies one ledger transition atomically: it reads the prior
// status, upserts the current-status row and appends a log entry, all in a
// single immediate transaction. Replaying the same change leaves one current
// row and adds one more log entry.
func (s *Store) RecordResponse(ctx context.Context, change models.ResponseChange) (*models.RecordOutcome, error) {
	at := change.At.UTC()
	var outcome models.RecordOutcome

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		var prior sql.NullString
		err := tx.GetContext(ctx, &prior,
			"SELECT status FROM responses WHERE game_id = ? AND subject_id = ?",
			change.GameID, change.SubjectID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read prior status: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO responses (id, game_id, subject_id, status, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(game_id, subject_id) DO UPDATE SET
				status = excluded.status,
				updated_at = excluded.updated_at`,
			uuid.NewString(), change.GameID, change.SubjectID, change.Status, at)
		if err != nil {
			return fmt.Errorf("failed to upsert response: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO rsvp_logs (subject_id, game_id, new_status, prior_status, logged_at, origin)
			VALUES (?, ?, ?, ?, ?, ?)`,
			change.SubjectID, change.GameID, change.Status, prior, at, change.Origin)
		if err != nil {
			return fmt.Errorf("failed to append rsvp log: %w", err)
		}

		if err := tx.GetContext(ctx, &outcome.Response,
			"SELECT "+responseColumns+" FROM responses WHERE game_id = ? AND subject_id = ?",
			change.GameID, change.SubjectID); err != nil {
			return fmt.Errorf("failed to read back response: %w", err)
		}
		if prior.Valid {
			ps := models.Status(prior.String)
			outcome.PriorStatus = &ps
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// GetResponse returns the current status row for (gameID, subjectID).
func (s *Store) GetResponse(ctx context.Context, gameID, subjectID string) (*models.Response, error) {
	r := &models.Response{}
	err := s.db.GetContext(ctx, r,
		"SELECT "+responseColumns+" FROM responses WHERE game_id = ? AND subject_id = ?", gameID, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("response %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return r, nil
}

// ListResponsesForGame returns every current-status row for a game, most recent first.
func (s *Store) ListResponsesForGame(ctx context.Context, gameID string) ([]models.Response, error) {
	responses := []models.Response{}
	err := s.db.SelectContext(ctx, &responses,
		"SELECT "+responseColumns+" FROM responses WHERE game_id = ? ORDER BY updated_at DESC", gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// ListResponsesForSubject returns a subject's current answers across all games.
func (s *Store) ListResponsesForSubject(ctx context.Context, subjectID string) ([]models.Response, error) {
	responses := []models.Response{}
	err := s.db.SelectContext(ctx, &responses,
		"SELECT "+responseColumns+" FROM responses WHERE subject_id = ? ORDER BY updated_at DESC", subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

// ListLogsForSubject returns the full history of one subject for one game, oldest first.
func (s *Store) ListLogsForSubject(ctx context.Context, gameID, subjectID string) ([]models.LogEntry, error) {
	entries := []models.LogEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, subject_id, game_id, new_status, prior_status, logged_at, origin, '' AS subject_name
		FROM rsvp_logs
		WHERE game_id = ? AND subject_id = ?
		ORDER BY id`, gameID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}
