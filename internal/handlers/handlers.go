// Package handlers is the HTTP surface: the JSON endpoints under /pickup, the
// respond and dashboard pages, and the middleware around them.
package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/services"
)

// Config holds everything the handlers depend on.
type Config struct {
	Roster  *services.RosterService
	Games   *services.GameService
	Ledger  *services.LedgerService
	Reports *services.ReportService
	Mail    *services.MailService

	// Health is called by /healthz; nil means always healthy.
	Health func(ctx context.Context) error

	Location *time.Location
	Clock    clock.Clock
	Logger   *slog.Logger

	// TrustProxy takes the client address from X-Forwarded-For.
	TrustProxy bool
	// RespondRate and RespondBurst limit each client on the public RSVP routes.
	RespondRate  rate.Limit
	RespondBurst int
}

// Handler serves every route. Build one with New.
type Handler struct {
	roster  *services.RosterService
	games   *services.GameService
	ledger  *services.LedgerService
	reports *services.ReportService
	mail    *services.MailService
	health  func(ctx context.Context) error

	clock      clock.Clock
	logger     *slog.Logger
	trustProxy bool
	limiter    *RateLimiter
	templates  map[string]*template.Template
}

// New parses the page templates and builds a Handler. Call Close when done to
// stop the rate limiter's cleanup loop.
func New(cfg Config) (*Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	limit, burst := cfg.RespondRate, cfg.RespondBurst
	if limit <= 0 {
		limit = 1
	}
	if burst <= 0 {
		burst = 10
	}

	tmpls, err := LoadTemplates(templateFuncs(loc, clk))
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handler{
		roster:     cfg.Roster,
		games:      cfg.Games,
		ledger:     cfg.Ledger,
		reports:    cfg.Reports,
		mail:       cfg.Mail,
		health:     cfg.Health,
		clock:      clk,
		logger:     logger,
		trustProxy: cfg.TrustProxy,
		limiter:    NewRateLimiter(limit, burst),
		templates:  tmpls,
	}, nil
}

func (h *Handler) Close() {
	h.limiter.Close()
}

// Healthz handles GET /healthz.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.logger.ErrorContext(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
