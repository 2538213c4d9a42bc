package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/nemogoc/pickup/internal/app"
	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/database"
	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier/notifiertest"
	"github.com/nemogoc/pickup/internal/services"
)

var testNow = time.Date(2025, 11, 10, 17, 0, 0, 0, time.UTC)

// testServer holds a test server and its dependencies.
type testServer struct {
	server   *httptest.Server
	app      *app.App
	clock    *clock.Fixed
	notifier *notifiertest.Recorder
	client   *http.Client
}

// setupTestServer starts the full router on an in-memory database. opts can
// adjust the handler config before the router is built.
func setupTestServer(t *testing.T, opts ...func(*Config)) *testServer {
	t.Helper()

	store, err := database.InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewFixed(testNow)
	rec := notifiertest.New()

	a := app.NewWithDependencies(app.Dependencies{
		Store:       store,
		Notifier:    rec,
		Clock:       clk,
		Location:    time.UTC,
		BaseURL:     "https://hoops.example.com",
		InviteStyle: config.InviteLinks,
		Logger:      logger,
	})

	cfg := Config{
		Roster:       a.Roster,
		Games:        a.Games,
		Ledger:       a.Ledger,
		Reports:      a.Reports,
		Mail:         a.Mail,
		Health:       a.Healthy,
		Location:     time.UTC,
		Clock:        clk,
		Logger:       logger,
		RespondRate:  rate.Inf,
		RespondBurst: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h, err := New(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(h.NewRouter())
	t.Cleanup(func() {
		ts.Close()
		h.Close()
		a.Close()
	})

	return &testServer{
		server:   ts,
		app:      a,
		clock:    clk,
		notifier: rec,
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// do sends a request with an optional JSON body and returns the status and body.
func (ts *testServer) do(t *testing.T, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.server.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := ts.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// getDoc fetches path and parses the HTML response.
func (ts *testServer) getDoc(t *testing.T, path string) (int, *goquery.Document) {
	t.Helper()
	status, body := ts.do(t, http.MethodGet, path, nil)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err)
	return status, doc
}

func decodeBody[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func errorCode(t *testing.T, data []byte) string {
	t.Helper()
	return decodeBody[ErrorResponse](t, data).Error.Code
}

// seed registers players and creates the current game directly through the services.
func (ts *testServer) seed(t *testing.T, pairs ...string) ([]models.Player, models.Game) {
	t.Helper()
	ctx := context.Background()

	var players []models.Player
	if len(pairs) > 0 {
		var inputs []models.PlayerInput
		for i := 0; i+1 < len(pairs); i += 2 {
			inputs = append(inputs, models.PlayerInput{Name: pairs[i], Email: pairs[i+1]})
		}
		_, err := ts.app.Roster.RegisterPlayers(ctx, inputs)
		require.NoError(t, err)
		for _, in := range inputs {
			p, err := ts.app.Roster.PlayerByEmail(ctx, in.Email)
			require.NoError(t, err)
			players = append(players, *p)
		}
	}

	res, err := ts.app.Games.CreateGame(ctx, services.GameInput{Date: "2025-11-11", Time: "18:30", Location: "Rec Center"})
	require.NoError(t, err)
	ts.clock.Advance(time.Minute)
	return players, res.Game
}
