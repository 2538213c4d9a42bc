// Package services holds the application operations: roster management, game
// scheduling, the RSVP ledger, reporting and outbound email. Each service
// depends only on the narrow store interface it needs.
package services

import (
	"context"

	"github.com/nemogoc/pickup/internal/models"
)

type PlayerStore interface {
	InsertPlayers(ctx context.Context, players []models.Player) (models.RegisterResult, error)
	GetPlayerByEmail(ctx context.Context, email string) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id string) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	DeletePlayer(ctx context.Context, email string) (*models.Player, error)
}

type GuestStore interface {
	ResolveGuest(ctx context.Context, g models.Guest) (*models.Guest, bool, error)
}

type GameStore interface {
	CreateGame(ctx context.Context, game models.Game) (*models.Game, error)
	GetGameByID(ctx context.Context, id string) (*models.Game, error)
	GetCurrentGame(ctx context.Context) (*models.Game, error)
	UpdateCurrentGame(ctx context.Context, displayDate, dateISO, location string) (*models.Game, error)
	FindGameOn(ctx context.Context, day string) (*models.Game, error)
}

type LedgerStore interface {
	RecordResponse(ctx context.Context, change models.ResponseChange) (*models.RecordOutcome, error)
}

type ReportStore interface {
	GetGameByID(ctx context.Context, id string) (*models.Game, error)
	GetCurrentGame(ctx context.Context) (*models.Game, error)
	AttendanceEntries(ctx context.Context, gameID string) ([]models.AttendanceEntry, error)
	PlayersWithoutResponse(ctx context.Context, gameID string) ([]models.Player, error)
	RecentLogs(ctx context.Context, gameID string, limit int) ([]models.LogEntry, error)
}

// Store is everything the services need from persistence; database.Store implements it.
type Store interface {
	PlayerStore
	GuestStore
	GameStore
	LedgerStore
	ReportStore
}

type playerLister interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
}
