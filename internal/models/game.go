package models

import "time"

const (
	// DisplayDateLayout renders a game time like "Nov 11, 6:30 PM".
	DisplayDateLayout = "Jan 2, 3:04 PM"
	// ISODateLayout is the normalised local timestamp stored alongside the display date.
	ISODateLayout = "2006-01-02T15:04:05"
)

// Game is a scheduled pickup game. The current game is the one created last.
type Game struct {
	ID          string    `db:"id" json:"id"`
	DisplayDate string    `db:"display_date" json:"date"`
	DateISO     string    `db:"date_iso" json:"dateIso"`
	Location    string    `db:"location" json:"location"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ScheduledAt parses DateISO as a wall-clock time in loc.
func (g Game) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(ISODateLayout, g.DateISO, loc)
}

// Clock returns the "HH:MM" part of the scheduled time.
func (g Game) Clock() string {
	if len(g.DateISO) < 16 {
		return ""
	}
	return g.DateISO[11:16]
}
