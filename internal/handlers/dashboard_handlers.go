package handlers

import (
	"net/http"

	"github.com/nemogoc/pickup/internal/models"
)

// dashboardLogLimit is how much recent activity the dashboard shows.
const dashboardLogLimit = 20

// Dashboard handles GET /pickup/dashboard: the current game's attendance,
// recent activity and the RSVP forms.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summary, err := h.reports.RosterSummary(ctx, "")
	if err != nil {
		if models.IsNotFound(err) {
			h.RenderTemplate(w, r, http.StatusOK, "dashboard.html", map[string]any{
				"Title": "Pickup Basketball",
			})
			return
		}
		h.renderServiceError(w, r, err)
		return
	}

	logs, err := h.reports.RecentLogs(ctx, dashboardLogLimit)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}
	players, err := h.roster.ListPlayers(ctx)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	h.RenderTemplate(w, r, http.StatusOK, "dashboard.html", map[string]any{
		"Title":    "Pickup Basketball",
		"Game":     summary.Game,
		"Summary":  summary,
		"Logs":     logs,
		"Players":  players,
		"Statuses": models.Statuses,
	})
}
