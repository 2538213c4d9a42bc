package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"github.com/nemogoc/pickup/internal/app"
	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/handlers"
	"github.com/nemogoc/pickup/internal/scheduler"
	"github.com/nemogoc/pickup/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Otel)
	if err != nil {
		logger.Error("failed to set up tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	h, err := handlers.New(handlers.Config{
		Roster:       a.Roster,
		Games:        a.Games,
		Ledger:       a.Ledger,
		Reports:      a.Reports,
		Mail:         a.Mail,
		Health:       a.Healthy,
		Location:     a.Location,
		Clock:        a.Clock,
		Logger:       logger,
		TrustProxy:   cfg.TrustProxy,
		RespondRate:  rate.Limit(cfg.RespondRateLimit),
		RespondBurst: cfg.RespondRateBurst,
	})
	if err != nil {
		logger.Error("failed to load templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var reminders *scheduler.Scheduler
	if cfg.ReminderSchedule != "" {
		reminders, err = scheduler.New(cfg.ReminderSchedule, a.Location, "tomorrow-summary", func(ctx context.Context) error {
			_, err := a.Mail.SendTomorrowSummary(ctx)
			return err
		}, logger)
		if err != nil {
			logger.Error("invalid reminder schedule", slog.String("error", err.Error()))
			os.Exit(1)
		}
		reminders.Start()
	} else {
		logger.Info("REMINDER_CRON_SCHEDULE not set, summary emails disabled")
	}

	server := handlers.NewServer(h.NewRouter(), handlers.ServerConfig{
		Port:            cfg.Port,
		ShutdownTimeout: cfg.ShutdownTimeout,
		TLSDomains:      cfg.TLS.Domains,
		TLSCacheDir:     cfg.TLS.CacheDir,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("base_url", cfg.BaseURL),
		slog.String("invite_style", string(cfg.InviteStyle)),
	)

	exitCode := 0
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			exitCode = 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if reminders != nil {
		if err := reminders.Stop(shutdownCtx); err != nil {
			logger.Error("scheduler shutdown error", slog.String("error", err.Error()))
		}
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		exitCode = 1
	}
	h.Close()
	if err := a.Close(); err != nil {
		logger.Error("failed to close database", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	os.Exit(exitCode)
}
