// Package app wires the store, notifier and services shared by the server and
// the admin CLI.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/database"
	"github.com/nemogoc/pickup/internal/notifier"
	"github.com/nemogoc/pickup/internal/services"
)

// App contains all wired application components.
type App struct {
	Store    *database.Store
	Notifier notifier.Notifier
	Clock    clock.Clock
	Location *time.Location
	Logger   *slog.Logger

	Roster  *services.RosterService
	Games   *services.GameService
	Ledger  *services.LedgerService
	Reports *services.ReportService
	Mail    *services.MailService
}

// Dependencies are the parts of an App that tests replace.
type Dependencies struct {
	Store       *database.Store
	Notifier    notifier.Notifier
	Clock       clock.Clock
	Location    *time.Location
	BaseURL     string
	InviteStyle config.InviteStyle
	Logger      *slog.Logger
}

// New opens the database named in cfg and wires every service. Without SMTP
// credentials, outgoing email is logged instead of sent.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := database.InitDB(cfg.DBFile)
	if err != nil {
		return nil, err
	}

	var n notifier.Notifier
	if cfg.EmailEnabled() {
		n = notifier.NewSMTP(cfg.Email)
	} else {
		logger.Warn("EMAIL_USER not set, emails will be logged instead of sent")
		n = notifier.LogNotifier{Logger: logger}
	}

	return NewWithDependencies(Dependencies{
		Store:       store,
		Notifier:    n,
		Clock:       clock.Real{},
		Location:    loc,
		BaseURL:     cfg.BaseURL,
		InviteStyle: cfg.InviteStyle,
		Logger:      logger,
	}), nil
}

// NewWithDependencies wires the services around already-built dependencies.
func NewWithDependencies(deps Dependencies) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	links := services.Links{BaseURL: deps.BaseURL}

	roster := services.NewRosterService(deps.Store, deps.Store, clk, logger)
	reports := services.NewReportService(deps.Store)

	return &App{
		Store:    deps.Store,
		Notifier: deps.Notifier,
		Clock:    clk,
		Location: loc,
		Logger:   logger,
		Roster:   roster,
		Games: services.NewGameService(services.GameServiceConfig{
			Games:       deps.Store,
			Players:     deps.Store,
			Notifier:    deps.Notifier,
			Links:       links,
			InviteStyle: deps.InviteStyle,
			Location:    loc,
			Clock:       clk,
			Logger:      logger,
		}),
		Ledger:  services.NewLedgerService(deps.Store, deps.Store, roster, clk, logger),
		Reports: reports,
		Mail: services.NewMailService(services.MailServiceConfig{
			Players:  deps.Store,
			Games:    deps.Store,
			Reports:  reports,
			Notifier: deps.Notifier,
			Links:    links,
			Location: loc,
			Clock:    clk,
			Logger:   logger,
		}),
	}
}

// Healthy reports whether the database is reachable.
func (a *App) Healthy(ctx context.Context) error {
	return a.Store.Ping(ctx)
}

func (a *App) Close() error {
	return a.Store.Close()
}
