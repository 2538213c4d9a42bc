package services

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/nemogoc/pickup/internal/models"
	"github.com/nemogoc/pickup/internal/notifier"
)

//go:embed templates
var emailTemplates embed.FS

var emailFuncs = map[string]any{
	"names": formatNames,
}

var (
	htmlEmails = htmltemplate.Must(htmltemplate.New("email").Funcs(emailFuncs).ParseFS(emailTemplates, "templates/*.html"))
	textEmails = texttemplate.Must(texttemplate.New("email").Funcs(emailFuncs).ParseFS(emailTemplates, "templates/*.txt"))
)

// formatNames joins names for an email, with a dash for an empty list.
func formatNames(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}

// render executes name+".html" and, when it exists, name+".txt".
func render(name string, data any) (html, text string, err error) {
	var hb bytes.Buffer
	if err := htmlEmails.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("render %s.html: %w", name, err)
	}
	if textEmails.Lookup(name+".txt") != nil {
		var tb bytes.Buffer
		if err := textEmails.ExecuteTemplate(&tb, name+".txt", data); err != nil {
			return "", "", fmt.Errorf("render %s.txt: %w", name, err)
		}
		text = tb.String()
	}
	return hb.String(), text, nil
}

func inviteSubject(g models.Game) string {
	return fmt.Sprintf("Basketball: %s at %s", g.DisplayDate, g.Location)
}

type linkInviteData struct {
	Player                  models.Player
	Game                    models.Game
	YesURL, NoURL, MaybeURL string
	DashboardURL            string
}

// linkInvite is a personal invitation carrying the player's capability links.
func linkInvite(links Links, g models.Game, p models.Player) (notifier.Message, error) {
	html, text, err := render("invite_links", linkInviteData{
		Player:       p,
		Game:         g,
		YesURL:       links.Respond(g.ID, p.ID, models.StatusYes),
		NoURL:        links.Respond(g.ID, p.ID, models.StatusNo),
		MaybeURL:     links.Respond(g.ID, p.ID, models.StatusMaybe),
		DashboardURL: links.Dashboard(),
	})
	if err != nil {
		return notifier.Message{}, err
	}
	return notifier.Message{To: []string{p.Email}, Subject: inviteSubject(g), HTML: html, Text: text}, nil
}

// dashboardInvite is the shared invitation that points everyone at the dashboard.
func dashboardInvite(links Links, g models.Game) (html, text string, err error) {
	return render("invite_dashboard", struct {
		Game         models.Game
		DashboardURL string
	}{g, links.Dashboard()})
}

type summaryData struct {
	Summary      models.RosterSummary
	Coming       []string
	Maybe        []string
	NotComing    []string
	NoResponse   []string
	DashboardURL string
}

func newSummaryData(links Links, s models.RosterSummary) summaryData {
	names := func(status models.Status) []string {
		var out []string
		for _, e := range s.ByStatus(status) {
			out = append(out, e.Name)
		}
		return out
	}
	var none []string
	for _, p := range s.NoResponse {
		none = append(none, p.Name)
	}
	return summaryData{
		Summary:      s,
		Coming:       names(models.StatusYes),
		Maybe:        names(models.StatusMaybe),
		NotComing:    names(models.StatusNo),
		NoResponse:   none,
		DashboardURL: links.Dashboard(),
	}
}

func broadcastBody(links Links, body string) (html, text string, err error) {
	html, _, err = render("broadcast", struct {
		Body         htmltemplate.HTML
		DashboardURL string
	}{htmltemplate.HTML(cleanHTML(body)), links.Dashboard()})
	if err != nil {
		return "", "", err
	}
	return html, htmlToText(body), nil
}
