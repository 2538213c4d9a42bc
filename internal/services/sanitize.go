package services

import (
	"html"
	"net/mail"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicy = bluemonday.StrictPolicy()
	htmlPolicy = bluemonday.UGCPolicy()

	lineBreaks = regexp.MustCompile(`(?i)<br\s*/?>|</(p|div|li|h[1-6]|tr|blockquote|pre)\s*>`)
	blankRuns  = regexp.MustCompile(`\n{3,}`)
)

// cleanText strips all markup from user input and returns plain text.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// htmlToText is cleanText for message bodies: block ends and <br> become
// line breaks, and runs of blank lines collapse to one.
func htmlToText(s string) string {
	lines := strings.Split(cleanText(lineBreaks.ReplaceAllString(s, "\n")), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
}

// cleanHTML keeps formatting markup but drops scripts, handlers and the like.
func cleanHTML(s string) string {
	return strings.TrimSpace(htmlPolicy.Sanitize(s))
}

// normalizeEmail trims and lower-cases an address and checks it parses.
func normalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return email, false
	}
	return email, true
}
