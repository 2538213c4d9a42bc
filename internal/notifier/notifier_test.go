package notifier_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/config"
	"github.com/nemogoc/pickup/internal/notifier"
	"github.com/nemogoc/pickup/internal/notifier/notifiertest"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeliverIsolatesFailures(t *testing.T) {
	rec := notifiertest.New()
	rec.FailFor["bad@example.com"] = errors.New("mailbox unavailable")

	report := notifier.Deliver(context.Background(), rec, nopLogger(),
		notifier.Message{To: []string{"a@example.com"}, Subject: "s"},
		notifier.Message{To: []string{"bad@example.com"}, Subject: "s"},
		notifier.Message{To: []string{"c@example.com"}, Subject: "s"},
	)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, []string{"bad@example.com"}, report.Failures[0].Recipients)
	assert.Contains(t, report.Failures[0].Error, "mailbox unavailable")
	assert.Len(t, rec.SentTo("c@example.com"), 1, "delivery continues after a failure")
}

func TestDeliverMultiRecipientFailsAsOne(t *testing.T) {
	rec := notifiertest.New()
	rec.FailFor["b@example.com"] = errors.New("rejected")

	report := notifier.Deliver(context.Background(), rec, nopLogger(), notifier.Message{
		To:      []string{"a@example.com", "b@example.com", "c@example.com"},
		Subject: "summary",
	})

	assert.Equal(t, notifier.Report{
		Attempted: 3,
		Failed:    3,
		Failures: []notifier.Failure{{
			Recipients: []string{"a@example.com", "b@example.com", "c@example.com"},
			Error:      "rejected",
		}},
	}, report)
	assert.Empty(t, rec.Messages())
}

func TestDeliverSkipsEmptyAndHonoursCancel(t *testing.T) {
	rec := notifiertest.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := notifier.Deliver(ctx, rec, nopLogger(),
		notifier.Message{Subject: "nobody"},
		notifier.Message{To: []string{"a@example.com"}},
	)
	assert.Equal(t, 1, report.Attempted)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, rec.Messages())
}

func TestLogNotifierNeverFails(t *testing.T) {
	var buf strings.Builder
	n := notifier.LogNotifier{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	err := n.Send(context.Background(), notifier.Message{To: []string{"a@example.com"}, Subject: "hello"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello")
}

func TestSMTPNotifierRejectsBadAddressBeforeDialing(t *testing.T) {
	n := notifier.NewSMTP(config.EmailConfig{Host: "127.0.0.1", Port: 2525, From: "bot@example.com"})
	err := n.Send(context.Background(), notifier.Message{To: []string{"not an address"}, Subject: "x", Text: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient")
}
