package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier"
	"github.com/nemogoc/pickup/internal/services"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case models.RegisterResult:
		fmt.Fprintf(o.w, "Inserted: %d, skipped: %d\n", v.Inserted, v.Skipped)
	case *models.Player:
		fmt.Fprintf(o.w, "Player: %s <%s> (%s)\n", v.Name, v.Email, v.ID)
	case []models.Player:
		o.printPlayers(v)
	case *models.Game:
		o.printGame(v)
	case *services.InviteResult:
		o.printInviteResult(v)
	case *services.PlayerResponse:
		o.printOutcome(v.Player.Name, v.Outcome)
	case *services.GuestResponse:
		o.printOutcome(v.Guest.Name+" (guest)", v.Outcome)
	case *models.RosterSummary:
		o.printSummary(v)
	case []models.LogEntry:
		o.printLogs(v)
	case notifier.Report:
		o.printReport(v)
	case *services.ReminderResult:
		if v.Game == nil {
			fmt.Fprintln(o.w, "No game tomorrow, nothing sent.")
			return
		}
		o.printGame(v.Game)
		o.printReport(v.Notifications)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printPlayers(players []models.Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tID")
	for _, p := range players {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Email, p.ID)
	}
	_ = tw.Flush()
}

func (o *Output) printGame(g *models.Game) {
	fmt.Fprintf(o.w, "Game: %s @ %s\n", g.DisplayDate, g.Location)
	fmt.Fprintf(o.w, "ID: %s\n", g.ID)
}

func (o *Output) printInviteResult(r *services.InviteResult) {
	o.printGame(&r.Game)
	if r.NoPlayers {
		fmt.Fprintln(o.w, "No players to notify.")
		return
	}
	o.printReport(r.Notifications)
}

func (o *Output) printReport(r notifier.Report) {
	fmt.Fprintf(o.w, "Notified: %d/%d\n", r.Succeeded, r.Attempted)
	for _, f := range r.Failures {
		fmt.Fprintf(o.w, "  failed: %s: %s\n", strings.Join(f.Recipients, ", "), f.Error)
	}
}

func (o *Output) printOutcome(name string, outcome models.RecordOutcome) {
	if outcome.PriorStatus != nil {
		fmt.Fprintf(o.w, "%s: %s (was %s)\n", name, outcome.Response.Status, *outcome.PriorStatus)
		return
	}
	fmt.Fprintf(o.w, "%s: %s\n", name, outcome.Response.Status)
}

func (o *Output) printSummary(s *models.RosterSummary) {
	o.printGame(&s.Game)
	fmt.Fprintf(o.w, "Yes: %d  Maybe: %d  No: %d  No response: %d\n",
		s.Counts.Yes, s.Counts.Maybe, s.Counts.No, len(s.NoResponse))

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSTATUS\tUPDATED")
	for _, e := range s.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Subject.Kind, e.Status, humanize.Time(e.UpdatedAt))
	}
	for _, p := range s.NoResponse {
		fmt.Fprintf(tw, "%s\t%s\t-\t-\n", p.Name, models.SubjectPlayer)
	}
	_ = tw.Flush()
}

func (o *Output) printLogs(entries []models.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No activity.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tNAME\tFROM\tTO\tORIGIN")
	for _, e := range entries {
		prior := "-"
		if e.PriorStatus != nil {
			prior = string(*e.PriorStatus)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", humanize.Time(e.LoggedAt), e.SubjectName, prior, e.NewStatus, e.OriginAddress)
	}
	_ = tw.Flush()
}
