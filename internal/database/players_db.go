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

const playerColumns = "id, name, email, created_at"

// InsertPlayers registers players in one transaction. A player whose email is
// already on the roster is left untouched and counted as skipped.
// Players without an ID get a fresh UUID.
func (s *Store) InsertPlayers(ctx context.Context, players []models.Player) (models.RegisterResult, error) {
	var result models.RegisterResult

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx,
			"INSERT OR IGNORE INTO players (id, name, email, created_at) VALUES (?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("failed to prepare player insert: %w", err)
		}
		defer stmt.Close()

		for i := range players {
			p := &players[i]
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			res, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Email, p.CreatedAt.UTC())
			if err != nil {
				return fmt.Errorf("failed to insert player %s: %w", p.Email, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read rows affected: %w", err)
			}
			if n == 0 {
				result.Skipped++
			} else {
				result.Inserted++
			}
		}
		return nil
	})
	if err != nil {
		return models.RegisterResult{}, err
	}
	return result, nil
}

// GetPlayerByEmail looks a player up by email, ignoring case.
func (s *Store) GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error) {
	return getPlayer(ctx, s.db, "SELECT "+playerColumns+" FROM players WHERE email = ?", email)
}

// GetPlayerByID looks a player up by id.
func (s *Store) GetPlayerByID(ctx context.Context, id string) (*models.Player, error) {
	return getPlayer(ctx, s.db, "SELECT "+playerColumns+" FROM players WHERE id = ?", id)
}

// ListPlayers returns the roster ordered by name.
func (s *Store) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players := []models.Player{}
	err := s.db.SelectContext(ctx, &players,
		"SELECT "+playerColumns+" FROM players ORDER BY name COLLATE NOCASE, email")
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// DeletePlayer removes the player with the given email together with their
// current-status rows for every game. Log entries are kept.
func (s *Store) DeletePlayer(ctx context.Context, email string) (*models.Player, error) {
	var removed *models.Player

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		p, err := getPlayer(ctx, tx, "SELECT "+playerColumns+" FROM players WHERE email = ?", email)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM responses WHERE subject_id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to delete responses for player %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM players WHERE id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to delete player %s: %w", p.ID, err)
		}
		removed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func getPlayer(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*models.Player, error) {
	p := &models.Player{}
	if err := sqlx.GetContext(ctx, q, p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}
