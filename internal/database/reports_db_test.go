package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/models"
)

func TestAttendanceEntriesResolveSubjects(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	game := createTestGame(t, store, "2025-11-11T18:30:00")
	ana := createTestPlayer(t, store, "Ana", "ana@example.com")
	sam, _, err := store.ResolveGuest(ctx, models.Guest{Name: "Sam", CreatedAt: testNow})
	require.NoError(t, err)

	recordTestResponse(t, store, game.ID, ana.ID, models.StatusYes)
	recordTestResponse(t, store, game.ID, sam.ID, models.StatusMaybe)
	recordTestResponse(t, store, game.ID, "ghost", models.StatusNo)

	entries, err := store.AttendanceEntries(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byID := map[string]models.AttendanceEntry{}
	for _, e := range entries {
		byID[e.Subject.ID] = e
	}
	assert.Equal(t, models.PlayerSubject(ana.ID), byID[ana.ID].Subject)
	assert.Equal(t, "Ana", byID[ana.ID].Name)
	assert.Equal(t, models.GuestSubject(sam.ID), byID[sam.ID].Subject)
	assert.Equal(t, "Sam", byID[sam.ID].Name)
	assert.Equal(t, models.SubjectUnknown, byID["ghost"].Subject.Kind)
	assert.Equal(t, "ghost", byID["ghost"].Name)
}

func TestPlayersWithoutResponse(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	game := createTestGame(t, store, "2025-11-11T18:30:00")
	other := createTestGame(t, store, "2025-11-18T18:30:00")
	ana := createTestPlayer(t, store, "Ana", "ana@example.com")
	createTestPlayer(t, store, "Ben", "ben@example.com")

	recordTestResponse(t, store, game.ID, ana.ID, models.StatusNo)
	recordTestResponse(t, store, other.ID, ana.ID, models.StatusYes)

	missing, err := store.PlayersWithoutResponse(ctx, game.ID)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, "Ben", missing[0].Name)
}

func TestRecentLogsNewestFirstAndCapped(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	game := createTestGame(t, store, "2025-11-11T18:30:00")
	other := createTestGame(t, store, "2025-11-18T18:30:00")
	ana := createTestPlayer(t, store, "Ana", "ana@example.com")

	for _, s := range []models.Status{models.StatusYes, models.StatusNo, models.StatusMaybe} {
		recordTestResponse(t, store, game.ID, ana.ID, s)
	}
	recordTestResponse(t, store, other.ID, ana.ID, models.StatusYes)

	logs, err := store.RecentLogs(ctx, game.ID, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.StatusMaybe, logs[0].NewStatus)
	assert.Equal(t, models.StatusNo, logs[1].NewStatus)
	assert.Equal(t, "Ana", logs[0].SubjectName)
	for _, l := range logs {
		assert.Equal(t, game.ID, l.GameID)
	}
}
