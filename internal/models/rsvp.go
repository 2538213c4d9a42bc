package models

import (
	"strings"
	"time"
)

// Status is an attendance answer for a game.
type Status string

const (
	StatusYes   Status = "yes"
	StatusNo    Status = "no"
	StatusMaybe Status = "maybe"
)

// Statuses lists the accepted answers in display order.
var Statuses = []Status{StatusYes, StatusMaybe, StatusNo}

// Valid reports whether s is one of yes, no or maybe.
func (s Status) Valid() bool {
	switch s {
	case StatusYes, StatusNo, StatusMaybe:
		return true
	}
	return false
}

// ParseStatus normalises a raw status value (case and surrounding whitespace
// are ignored) and rejects anything outside yes/no/maybe.
func ParseStatus(raw string) (Status, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", NewValidationError("status", "status is required")
	}
	s := Status(trimmed)
	if !s.Valid() {
		return "", NewValidationError("status", "status must be one of yes, no or maybe")
	}
	return s, nil
}

// Response is the current status of one subject for one game. There is at
// most one Response per (GameID, SubjectID).
type Response struct {
	ID        string    `db:"id" json:"id"`
	GameID    string    `db:"game_id" json:"gameId"`
	SubjectID string    `db:"subject_id" json:"subjectId"`
	Status    Status    `db:"status" json:"status"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// LogEntry is one append-only record of a status change.
// PriorStatus is nil for a subject's first response to a game.
type LogEntry struct {
	ID            int64     `db:"id" json:"id"`
	SubjectID     string    `db:"subject_id" json:"subjectId"`
	GameID        string    `db:"game_id" json:"gameId"`
	NewStatus     Status    `db:"new_status" json:"newStatus"`
	PriorStatus   *Status   `db:"prior_status" json:"priorStatus"`
	LoggedAt      time.Time `db:"logged_at" json:"timestamp"`
	OriginAddress string    `db:"origin" json:"originAddress"`

	// SubjectName is filled in by reporting queries; it falls back to the
	// raw subject id when the subject no longer resolves.
	SubjectName string `db:"subject_name" json:"name,omitempty"`
}

// ResponseChange is the input to a single ledger transition.
type ResponseChange struct {
	GameID    string
	SubjectID string
	Status    Status
	Origin    string
	At        time.Time
}

// RecordOutcome is what the ledger reports after a transition.
type RecordOutcome struct {
	Response    Response `json:"response"`
	PriorStatus *Status  `json:"priorStatus"`
}
