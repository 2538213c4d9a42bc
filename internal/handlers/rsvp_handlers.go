package handlers

import (
	"net/http"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/services"
)

// rsvpResponse is returned by the JSON RSVP endpoints.
type rsvpResponse struct {
	PlayerID    string         `json:"playerId,omitempty"`
	GuestID     string         `json:"guestId,omitempty"`
	Status      models.Status  `json:"status"`
	PriorStatus *models.Status `json:"priorStatus"`
}

// Respond handles GET /pickup/respond, the capability link in invitation
// emails. It answers with an HTML page either way.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.ledger.RespondAsPlayer(r.Context(), q.Get("gameId"), q.Get("playerId"), q.Get("status"), h.clientIP(r))
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	game, err := h.games.Game(r.Context(), res.Outcome.Response.GameID)
	if err != nil {
		h.renderServiceError(w, r, err)
		return
	}

	h.RenderTemplate(w, r, http.StatusOK, "respond.html", map[string]any{
		"Title":   "Response recorded",
		"Refresh": true,
		"Player":  res.Player,
		"Game":    game,
		"Status":  res.Outcome.Response.Status,
		"Prior":   res.Outcome.PriorStatus,
	})
}

type emailRSVPRequest struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	GameID string `json:"gameId"`
}

// RSVPByEmail handles POST /pickup/rsvp from the dashboard player form.
func (h *Handler) RSVPByEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRSVPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.ledger.RespondByEmail(r.Context(), req.GameID, req.Email, req.Status, h.clientIP(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsvpResponse{
		PlayerID:    res.Player.ID,
		Status:      res.Outcome.Response.Status,
		PriorStatus: res.Outcome.PriorStatus,
	})
}

// AddGuest handles POST /pickup/add-guest.
func (h *Handler) AddGuest(w http.ResponseWriter, r *http.Request) {
	var in services.GuestResponseInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.ledger.RecordGuestResponse(r.Context(), in, h.clientIP(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rsvpResponse{
		GuestID:     res.Guest.ID,
		Status:      res.Outcome.Response.Status,
		PriorStatus: res.Outcome.PriorStatus,
	})
}
