// Package notifier delivers email to players. Delivery is best effort: the
// fan-out helpers never return an error, they return a Report.
package notifier

import (
	"context"
	"log/slog"

	"github.com/nemogoc/pickup/internal/models"
)

// Message is one email. A message with several recipients is delivered in a
// single call and succeeds or fails as a whole.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Notifier sends a single message.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Failure describes one failed delivery call.
type Failure struct {
	Recipients []string `json:"recipients"`
	Error      string   `json:"error"`
}

// Report counts recipients, not calls.
type Report struct {
	Attempted int       `json:"attempted"`
	Succeeded int       `json:"succeeded"`
	Failed    int       `json:"failed"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Deliver sends every message in order. A failed message is logged and counted
// and does not stop the rest. Messages left when ctx is cancelled count as failed.
func Deliver(ctx context.Context, n Notifier, logger *slog.Logger, msgs ...Message) Report {
	var report Report
	for _, msg := range msgs {
		if len(msg.To) == 0 {
			continue
		}
		report.Attempted += len(msg.To)

		err := ctx.Err()
		if err == nil {
			err = n.Send(ctx, msg)
		}
		if err != nil {
			nerr := &models.NotifierError{Recipients: msg.To, Err: err}
			logger.WarnContext(ctx, "email delivery failed",
				"subject", msg.Subject,
				"recipients", len(msg.To),
				"error", nerr)
			report.Failed += len(msg.To)
			report.Failures = append(report.Failures, Failure{Recipients: msg.To, Error: err.Error()})
			continue
		}
		report.Succeeded += len(msg.To)
	}
	return report
}
