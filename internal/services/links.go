package services

import (
	"net/url"

	"github.com/nemogoc/pickup/internal/models"
)

// Links builds absolute URLs that go into emails.
type Links struct {
	BaseURL string
}

// Respond is a player's capability link for answering status for a game.
func (l Links) Respond(gameID, playerID string, status models.Status) string {
	q := url.Values{}
	q.Set("gameId", gameID)
	q.Set("playerId", playerID)
	q.Set("status", string(status))
	return l.BaseURL + "/pickup/respond?" + q.Encode()
}

func (l Links) Dashboard() string {
	return l.BaseURL + "/pickup/dashboard"
}
