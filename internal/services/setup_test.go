package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/database"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier/notifiertest"
)

const testBaseURL = "https://hoops.example.com"

// Monday evening, UTC.
var testNow = time.Date(2025, 11, 10, 17, 0, 0, 0, time.UTC)

type testEnv struct {
	store    *database.Store
	clock    *clock.Fixed
	notifier *notifiertest.Recorder
	roster   *RosterService
	games    *GameService
	ledger   *LedgerService
	reports  *ReportService
	mail     *MailService
}

func setupServices(t *testing.T, style config.InviteStyle) *testEnv {
	t.Helper()

	store, err := database.InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFixed(testNow)
	rec := notifiertest.New()
	links := Links{BaseURL: testBaseURL}

	roster := NewRosterService(store, store, clk, logger)
	reports := NewReportService(store)
	return &testEnv{
		store:    store,
		clock:    clk,
		notifier: rec,
		roster:   roster,
		games: NewGameService(GameServiceConfig{
			Games: store, Players: store, Notifier: rec, Links: links,
			InviteStyle: style, Location: time.UTC, Clock: clk, Logger: logger,
		}),
		ledger:  NewLedgerService(store, store, roster, clk, logger),
		reports: reports,
		mail: NewMailService(MailServiceConfig{
			Players: store, Games: store, Reports: reports, Notifier: rec, Links: links,
			Location: time.UTC, Clock: clk, Logger: logger,
		}),
	}
}

func (e *testEnv) addPlayers(t *testing.T, pairs ...string) []models.Player {
	t.Helper()
	ctx := context.Background()
	var inputs []models.PlayerInput
	for i := 0; i+1 < len(pairs); i += 2 {
		inputs = append(inputs, models.PlayerInput{Name: pairs[i], Email: pairs[i+1]})
	}
	_, err := e.roster.RegisterPlayers(ctx, inputs)
	require.NoError(t, err)

	var out []models.Player
	for _, in := range inputs {
		p, err := e.roster.PlayerByEmail(ctx, in.Email)
		require.NoError(t, err)
		out = append(out, *p)
	}
	return out
}

func (e *testEnv) createGame(t *testing.T, date, clk string) models.Game {
	t.Helper()
	res, err := e.games.CreateGame(context.Background(), GameInput{Date: date, Time: clk, Location: "Rec Center"})
	require.NoError(t, err)
	e.clock.Advance(time.Minute)
	return res.Game
}
