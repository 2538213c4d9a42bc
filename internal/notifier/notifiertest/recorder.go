// Package notifiertest provides an in-memory notifier for tests.
package notifiertest

import (
	"context"
	"sync"

	"github.com/nemogoc/pickup/internal/notifier"
)

// Recorder keeps every message it is asked to send. A message addressed to
// any recipient listed in FailFor fails with that recipient's error.
type Recorder struct {
	mu       sync.Mutex
	messages []notifier.Message
	FailFor  map[string]error
}

var _ notifier.Notifier = (*Recorder)(nil)

func New() *Recorder {
	return &Recorder{FailFor: map[string]error{}}
}

func (r *Recorder) Send(_ context.Context, msg notifier.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, to := range msg.To {
		if err, ok := r.FailFor[to]; ok {
			return err
		}
	}
	r.messages = append(r.messages, msg)
	return nil
}

// Messages returns the successfully sent messages.
func (r *Recorder) Messages() []notifier.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notifier.Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// SentTo returns the messages addressed to addr.
func (r *Recorder) SentTo(addr string) []notifier.Message {
	var out []notifier.Message
	for _, m := range r.Messages() {
		for _, to := range m.To {
			if to == addr {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.messages = nil
	r.mu.Unlock()
}
