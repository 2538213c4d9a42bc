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

const gameColumns = "id, display_date, date_iso, location, created_at"

// currentGameQuery picks the most recently created game; rowid breaks ties
// between games created within the same clock tick.
const currentGameQuery = "SELECT " + gameColumns + " FROM games ORDER BY created_at DESC, rowid DESC LIMIT 1"

// CreateGame inserts a new game and returns it as stored.
func (s *Store) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	game.CreatedAt = game.CreatedAt.UTC()

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO games (id, display_date, date_iso, location, created_at)
		VALUES (:id, :display_date, :date_iso, :location, :created_at)`, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return s.GetGameByID(ctx, game.ID)
}

// GetGameByID retrieves a game by its ID.
func (s *Store) GetGameByID(ctx context.Context, id string) (*models.Game, error) {
	return getGame(ctx, s.db, "SELECT "+gameColumns+" FROM games WHERE id = ?", id)
}

// GetCurrentGame returns the game created most recently.
func (s *Store) GetCurrentGame(ctx context.Context) (*models.Game, error) {
	return getGame(ctx, s.db, currentGameQuery)
}

// UpdateCurrentGame rewrites the schedule and location of the current game in place.
func (s *Store) UpdateCurrentGame(ctx context.Context, displayDate, dateISO, location string) (*models.Game, error) {
	var updated *models.Game

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := getGame(ctx, tx, currentGameQuery)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			"UPDATE games SET display_date = ?, date_iso = ?, location = ? WHERE id = ?",
			displayDate, dateISO, location, current.ID)
		if err != nil {
			return fmt.Errorf("failed to update game %s: %w", current.ID, err)
		}
		updated, err = getGame(ctx, tx, "SELECT "+gameColumns+" FROM games WHERE id = ?", current.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindGameOn returns the earliest game scheduled on day ("YYYY-MM-DD").
func (s *Store) FindGameOn(ctx context.Context, day string) (*models.Game, error) {
	return getGame(ctx, s.db,
		"SELECT "+gameColumns+" FROM games WHERE date_iso LIKE ? ORDER BY date_iso LIMIT 1", day+"T%")
}

// ListGames retrieves all games, newest first.
func (s *Store) ListGames(ctx context.Context) ([]models.Game, error) {
	games := []models.Game{}
	if err := s.db.SelectContext(ctx, &games,
		"SELECT "+gameColumns+" FROM games ORDER BY created_at DESC, rowid DESC"); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func getGame(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*models.Game, error) {
	g := &models.Game{}
	if err := sqlx.GetContext(ctx, q, g, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}
