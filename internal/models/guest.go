package models

import "time"

// Guest is a non-roster attendee. Guests are keyed by name and never emailed.
type Guest struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	InvitedBy string    `db:"invited_by" json:"whoInvited,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// SubjectKind distinguishes what a subject id refers to.
type SubjectKind string

const (
	SubjectPlayer SubjectKind = "player"
	SubjectGuest  SubjectKind = "guest"
	// SubjectUnknown is a subject id that no longer resolves, e.g. a removed player.
	SubjectUnknown SubjectKind = "unknown"
)

// Subject is anyone who can hold an RSVP. Players and guests share one id space,
// so the ledger only ever sees ID; Kind matters for reporting and removal.
type Subject struct {
	Kind SubjectKind `json:"kind"`
	ID   string      `json:"id"`
}

func PlayerSubject(id string) Subject { return Subject{Kind: SubjectPlayer, ID: id} }

func GuestSubject(id string) Subject { return Subject{Kind: SubjectGuest, ID: id} }

func (s Subject) IsPlayer() bool { return s.Kind == SubjectPlayer }

func (s Subject) IsGuest() bool { return s.Kind == SubjectGuest }
