package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/nemogoc/pickup/internal/models"
)

type emailRequest struct {
	Email string `json:"email"`
}

// AddPlayer handles POST /pickup/add-player. The body is one {name, email}
// object or an array of them.
func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := decodeJSON(w, r, &raw); err != nil {
		h.writeError(w, r, err)
		return
	}

	var inputs []models.PlayerInput
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &inputs); err != nil {
			h.writeError(w, r, models.NewValidationError("body", "expected an array of {name, email}"))
			return
		}
	} else {
		var in models.PlayerInput
		if err := json.Unmarshal(trimmed, &in); err != nil {
			h.writeError(w, r, models.NewValidationError("body", "expected {name, email}"))
			return
		}
		inputs = []models.PlayerInput{in}
	}

	result, err := h.roster.RegisterPlayers(r.Context(), inputs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// RemovePlayer handles POST and DELETE /pickup/remove-player.
func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	player, err := h.roster.RemovePlayer(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Player removed",
		"player":  player,
	})
}

// GetPlayerID handles POST /pickup/get-player-id.
func (h *Handler) GetPlayerID(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := h.roster.PlayerID(r.Context(), req.Email)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"playerId": id})
}
