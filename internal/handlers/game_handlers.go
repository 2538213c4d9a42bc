package handlers

import (
	"net/http"
	"strconv"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/services"
)

type inviteResponse struct {
	Message string `json:"message"`
	*services.InviteResult
}

func inviteMessage(res *services.InviteResult) string {
	switch {
	case res.NoPlayers:
		return "No players to notify"
	case res.Notifications.Failed > 0:
		return "Invitations sent with some failures"
	default:
		return "Invitations sent"
	}
}

// CreateGame handles POST /pickup/create-game. The new game becomes the
// current game and every player is invited.
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var in services.GameInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.games.CreateGame(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inviteResponse{Message: "Game created. " + inviteMessage(res), InviteResult: res})
}

// EditGame handles POST /pickup/edit-game.
func (h *Handler) EditGame(w http.ResponseWriter, r *http.Request) {
	var in services.GameInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	game, err := h.games.EditCurrentGame(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// ResendGame handles POST /pickup/resend-game.
func (h *Handler) ResendGame(w http.ResponseWriter, r *http.Request) {
	res, err := h.games.ResendInvites(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inviteResponse{Message: inviteMessage(res), InviteResult: res})
}

// CurrentGame handles GET /pickup/current-game.
func (h *Handler) CurrentGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.games.CurrentGame(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// Summary handles GET /pickup/summary?gameId=. Without gameId the current game is used.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.RosterSummary(r.Context(), r.URL.Query().Get("gameId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Logs handles GET /pickup/logs?limit=.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, models.NewValidationError("limit", "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	entries, err := h.reports.RecentLogs(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.LogEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

type broadcastRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// BroadcastEmail handles POST /pickup/broadcast-email.
func (h *Handler) BroadcastEmail(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	report, err := h.mail.Broadcast(r.Context(), req.Subject, req.Body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Broadcast sent",
		"notifications": report,
	})
}
