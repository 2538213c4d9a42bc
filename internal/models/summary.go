package models

import "time"

// AttendanceEntry is one subject's current answer for a game.
type AttendanceEntry struct {
	Subject   Subject   `json:"subject"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"lastUpdated"`
}

// Counts aggregates current answers.
type Counts struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Maybe int `json:"maybe"`
}

// Add counts one answer.
func (c *Counts) Add(s Status) {
	switch s {
	case StatusYes:
		c.Yes++
	case StatusNo:
		c.No++
	case StatusMaybe:
		c.Maybe++
	}
}

// AttendanceSummary is the derived view of the ledger for one game.
type AttendanceSummary struct {
	Game    Game              `json:"game"`
	Entries []AttendanceEntry `json:"entries"`
	Counts  Counts            `json:"counts"`
}

// ByStatus returns the entries holding status s, in summary order.
func (a AttendanceSummary) ByStatus(s Status) []AttendanceEntry {
	var out []AttendanceEntry
	for _, e := range a.Entries {
		if e.Status == s {
			out = append(out, e)
		}
	}
	return out
}

// RosterSummary adds the players who have not answered yet.
type RosterSummary struct {
	AttendanceSummary
	NoResponse []Player `json:"noResponse"`
}
