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

const guestColumns = "id, name, COALESCE(invited_by, '') AS invited_by, created_at"

// ResolveGuest returns the guest with g.Name, creating it from g when no guest
// has that name yet. The boolean reports whether a new row was created.
// An existing guest keeps its original InvitedBy.
func (s *Store) ResolveGuest(ctx context.Context, g models.Guest) (*models.Guest, bool, error) {
	var (
		guest   *models.Guest
		created bool
	)

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO guests (id, name, invited_by, created_at)
			VALUES (?, ?, NULLIF(?, ''), ?)
			ON CONFLICT(name) DO NOTHING`,
			g.ID, g.Name, g.InvitedBy, g.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert guest %q: %w", g.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		created = n > 0

		guest, err = getGuest(ctx, tx, "SELECT "+guestColumns+" FROM guests WHERE name = ?", g.Name)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return guest, created, nil
}

// GetGuestByID looks a guest up by id.
func (s *Store) GetGuestByID(ctx context.Context, id string) (*models.Guest, error) {
	return getGuest(ctx, s.db, "SELECT "+guestColumns+" FROM guests WHERE id = ?", id)
}

// ListGuests returns every guest ordered by name.
func (s *Store) ListGuests(ctx context.Context) ([]models.Guest, error) {
	guests := []models.Guest{}
	if err := s.db.SelectContext(ctx, &guests,
		"SELECT "+guestColumns+" FROM guests ORDER BY name COLLATE NOCASE"); err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func getGuest(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*models.Guest, error) {
	g := &models.Guest{}
	if err := sqlx.GetContext(ctx, q, g, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrGuestNotFound
		}
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	return g, nil
}
