package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/models"
)

func TestBroadcast(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()

	t.Run("No players", func(t *testing.T) {
		_, err := env.mail.Broadcast(ctx, "Court closed", "No game this week")
		assert.ErrorIs(t, err, models.ErrNoRecipients)
	})

	env.addPlayers(t, "Ana", "ana@example.com", "Ben", "ben@example.com")

	t.Run("Validation", func(t *testing.T) {
		_, err := env.mail.Broadcast(ctx, "", "body")
		assert.True(t, models.IsValidation(err))
		_, err = env.mail.Broadcast(ctx, "subject", "   ")
		assert.True(t, models.IsValidation(err))
	})

	t.Run("Fan out with sanitised body", func(t *testing.T) {
		env.notifier.Reset()
		env.notifier.FailFor["ben@example.com"] = errors.New("timeout")
		defer delete(env.notifier.FailFor, "ben@example.com")

		report, err := env.mail.Broadcast(ctx, "Court closed", `<p>No game <b>this week</b></p><script>alert(1)</script>`)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Attempted)
		assert.Equal(t, 1, report.Succeeded)
		assert.Equal(t, 1, report.Failed)

		msgs := env.notifier.SentTo("ana@example.com")
		require.Len(t, msgs, 1)
		assert.Equal(t, "Court closed", msgs[0].Subject)
		assert.Contains(t, msgs[0].HTML, "<b>this week</b>")
		assert.NotContains(t, msgs[0].HTML, "<script>")
		assert.Equal(t, "No game this week", msgs[0].Text)
	})

	t.Run("Text alternative keeps paragraphs", func(t *testing.T) {
		env.notifier.Reset()
		_, err := env.mail.Broadcast(ctx, "Schedule", "<p>Line one</p><p>Line two</p>")
		require.NoError(t, err)
		msgs := env.notifier.SentTo("ben@example.com")
		require.Len(t, msgs, 1)
		assert.Equal(t, "Line one\nLine two", msgs[0].Text)
	})
}

func TestSendTomorrowSummary(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()

	t.Run("Skips when nothing is scheduled tomorrow", func(t *testing.T) {
		env.createGame(t, "2025-11-20", "18:30")
		res, err := env.mail.SendTomorrowSummary(ctx)
		require.NoError(t, err)
		assert.Nil(t, res.Game)
		assert.Empty(t, env.notifier.Messages())
	})

	players := env.addPlayers(t, "Ana", "ana@example.com", "Ben", "ben@example.com", "Cleo", "cleo@example.com")
	game := env.createGame(t, "2025-11-11", "18:30") // testNow is Nov 10
	env.notifier.Reset()

	_, err := env.ledger.RespondAsPlayer(ctx, game.ID, players[0].ID, "yes", "")
	require.NoError(t, err)
	_, err = env.ledger.RespondAsPlayer(ctx, game.ID, players[1].ID, "maybe", "")
	require.NoError(t, err)
	_, err = env.ledger.RecordGuestResponse(ctx, GuestResponseInput{Name: "Sam", Status: "yes", GameID: game.ID}, "")
	require.NoError(t, err)

	res, err := env.mail.SendTomorrowSummary(ctx)
	require.NoError(t, err)
	require.NotNil(t, res.Game)
	assert.Equal(t, game.ID, res.Game.ID)
	assert.Equal(t, 3, res.Notifications.Attempted)

	msgs := env.notifier.Messages()
	require.Len(t, msgs, 1, "one message addressed to everyone")
	msg := msgs[0]
	assert.ElementsMatch(t, []string{"ana@example.com", "ben@example.com", "cleo@example.com"}, msg.To)
	assert.Equal(t, "Tomorrow's Basketball: Attendance Summary", msg.Subject)
	assert.Contains(t, msg.Text, "Time: 18:30")
	assert.Contains(t, msg.Text, "COMING (2)")
	assert.Contains(t, msg.Text, "MAYBE (1)\nBen")
	assert.Contains(t, msg.Text, "NOT COMING (0)\n—")
	assert.Contains(t, msg.Text, "NO RESPONSE (1)\nCleo")
	assert.Contains(t, msg.HTML, "Manage Attendance")

	t.Run("Delivery failure is one aggregate failure", func(t *testing.T) {
		env.notifier.FailFor["cleo@example.com"] = errors.New("relay refused")
		res, err := env.mail.SendTomorrowSummary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Notifications.Failed)
		assert.Len(t, res.Notifications.Failures, 1)
	})
}
