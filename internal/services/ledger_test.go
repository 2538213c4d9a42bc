package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/models"
)

func TestPlayerChangesMindEndToEnd(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()
	players := env.addPlayers(t, "Ana", "ana@example.com")
	ana := players[0]
	game := env.createGame(t, "2025-11-11", "18:30")

	first, err := env.ledger.RespondAsPlayer(ctx, game.ID, ana.ID, "yes", "203.0.113.5")
	require.NoError(t, err)
	assert.Nil(t, first.Outcome.PriorStatus)

	env.clock.Advance(time.Hour)
	second, err := env.ledger.RespondAsPlayer(ctx, game.ID, ana.ID, "maybe", "203.0.113.5")
	require.NoError(t, err)
	require.NotNil(t, second.Outcome.PriorStatus)
	assert.Equal(t, models.StatusYes, *second.Outcome.PriorStatus)

	summary, err := env.reports.AttendanceSummary(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, "Ana", summary.Entries[0].Name)
	assert.Equal(t, models.StatusMaybe, summary.Entries[0].Status)
	assert.Equal(t, models.PlayerSubject(ana.ID), summary.Entries[0].Subject)
	assert.True(t, summary.Entries[0].UpdatedAt.Equal(env.clock.Now()))
	assert.Equal(t, models.Counts{Maybe: 1}, summary.Counts)

	logs, err := env.store.ListLogsForSubject(ctx, game.ID, ana.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Nil(t, logs[0].PriorStatus)
	require.NotNil(t, logs[1].PriorStatus)
	assert.Equal(t, models.StatusYes, *logs[1].PriorStatus)
	assert.Equal(t, "203.0.113.5", logs[1].OriginAddress)
}

func TestGuestRespondsTwiceEndToEnd(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()
	game := env.createGame(t, "2025-11-11", "18:30")

	r1, err := env.ledger.RecordGuestResponse(ctx, GuestResponseInput{Name: "Sam", Status: "yes", GameID: game.ID, InvitedBy: "Ana"}, "198.51.100.1")
	require.NoError(t, err)
	r2, err := env.ledger.RecordGuestResponse(ctx, GuestResponseInput{Name: "Sam", Status: "yes", GameID: game.ID, InvitedBy: "Ben"}, "198.51.100.2")
	require.NoError(t, err)
	assert.Equal(t, r1.Guest.ID, r2.Guest.ID)

	guests, err := env.store.ListGuests(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, "Sam", guests[0].Name)

	current, err := env.store.GetResponse(ctx, game.ID, r1.Guest.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusYes, current.Status)

	logs, err := env.store.ListLogsForSubject(ctx, game.ID, r1.Guest.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)

	summary, err := env.reports.AttendanceSummary(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, summary.Entries, 1)
	assert.Equal(t, models.SubjectGuest, summary.Entries[0].Subject.Kind)
}

func TestGuestResponseDefaultsToCurrentGame(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()

	_, err := env.ledger.RecordGuestResponse(ctx, GuestResponseInput{Name: "Sam", Status: "yes"}, "")
	assert.ErrorIs(t, err, models.ErrGameNotFound)

	env.createGame(t, "2025-11-11", "18:30")
	current := env.createGame(t, "2025-11-18", "18:30")

	res, err := env.ledger.RecordGuestResponse(ctx, GuestResponseInput{Name: "Sam", Status: "no"}, "")
	require.NoError(t, err)
	assert.Equal(t, current.ID, res.Outcome.Response.GameID)
}

func TestRecordResponseValidation(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()
	game := env.createGame(t, "2025-11-11", "18:30")

	tests := map[string]ResponseInput{
		"missing game":    {SubjectID: "s", Status: "yes"},
		"missing subject": {GameID: game.ID, Status: "yes"},
		"missing status":  {GameID: game.ID, SubjectID: "s"},
		"unknown status":  {GameID: game.ID, SubjectID: "s", Status: "foo"},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := env.ledger.RecordResponse(ctx, in)
			require.Error(t, err)
			assert.True(t, models.IsValidation(err), err.Error())
		})
	}

	t.Run("unknown game", func(t *testing.T) {
		_, err := env.ledger.RecordResponse(ctx, ResponseInput{GameID: "nope", SubjectID: "s", Status: "yes"})
		assert.ErrorIs(t, err, models.ErrGameNotFound)
	})

	t.Run("status is normalised", func(t *testing.T) {
		out, err := env.ledger.RecordResponse(ctx, ResponseInput{GameID: game.ID, SubjectID: "s", Status: " YES "})
		require.NoError(t, err)
		assert.Equal(t, models.StatusYes, out.Response.Status)
	})

	responses, err := env.store.ListResponsesForGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, responses, 1, "rejected calls leave no state behind")
}

func TestRespondAsPlayerRequiresRosterPlayer(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()
	game := env.createGame(t, "2025-11-11", "18:30")

	_, err := env.ledger.RespondAsPlayer(ctx, game.ID, "not-a-player", "yes", "")
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)

	_, err = env.ledger.RespondAsPlayer(ctx, game.ID, "", "yes", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playerId")
}

func TestRespondByEmail(t *testing.T) {
	env := setupServices(t, config.InviteLinks)
	ctx := context.Background()
	players := env.addPlayers(t, "Ana", "ana@example.com")
	game := env.createGame(t, "2025-11-11", "18:30")

	res, err := env.ledger.RespondByEmail(ctx, "", "Ana@Example.com", "no", "")
	require.NoError(t, err)
	assert.Equal(t, players[0].ID, res.Player.ID)
	assert.Equal(t, game.ID, res.Outcome.Response.GameID)

	_, err = env.ledger.RespondByEmail(ctx, "", "stranger@example.com", "no", "")
	assert.ErrorIs(t, err, models.ErrPlayerNotFound)

	_, err = env.ledger.RespondByEmail(ctx, "", "ana@example.com", "perhaps", "")
	assert.True(t, models.IsValidation(err))
}
