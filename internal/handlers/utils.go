package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nemogoc/pickup/internal/clock"
	"github.com/nemogoc/pickup/internal/models"
)

//go:embed all:web/templates web/static
var webFS embed.FS

var titleCaser = cases.Title(language.English)

// TitleCase converts a status or key to title case.
// e.g., "no_response" -> "No Response"
func TitleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// statusLabel is the display form of a status, accepting a *Status as
// logged prior statuses are.
func statusLabel(v any) string {
	switch s := v.(type) {
	case models.Status:
		return TitleCase(string(s))
	case *models.Status:
		if s == nil {
			return ""
		}
		return TitleCase(string(*s))
	case string:
		return TitleCase(s)
	}
	return fmt.Sprint(v)
}

// templateFuncs returns the helpers available to every page. Times are shown
// in loc, and relative times are measured against clk.
func templateFuncs(loc *time.Location, clk clock.Clock) template.FuncMap {
	return template.FuncMap{
		"TitleCase": TitleCase,
		"label":     statusLabel,
		"FormatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.In(loc).Format("Jan 2, 3:04 PM")
		},
		"TimeAgo": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.RelTime(t, clk.Now(), "ago", "from now")
		},
		"StatusIcon": func(s models.Status) string {
			switch s {
			case models.StatusYes:
				return "✅"
			case models.StatusNo:
				return "❌"
			case models.StatusMaybe:
				return "\U0001F937"
			}
			return ""
		},
	}
}

// LoadTemplates parses every page under web/templates together with
// layout.html and the partials (files starting with "_"). Pages are keyed by
// file name, e.g. "dashboard.html".
func LoadTemplates(funcs template.FuncMap) (map[string]*template.Template, error) {
	const dir = "web/templates"
	const layoutFile = dir + "/layout.html"

	partialFiles, err := fs.Glob(webFS, dir+"/_*.html")
	if err != nil {
		return nil, fmt.Errorf("error globbing partial templates: %w", err)
	}
	allFiles, err := fs.Glob(webFS, dir+"/*.html")
	if err != nil {
		return nil, fmt.Errorf("error globbing templates: %w", err)
	}

	templates := make(map[string]*template.Template)
	for _, file := range allFiles {
		name := path.Base(file)
		if file == layoutFile || strings.HasPrefix(name, "_") {
			continue
		}
		files := append([]string{file, layoutFile}, partialFiles...)
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(webFS, files...)
		if err != nil {
			return nil, fmt.Errorf("error parsing page template %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}
	return templates, nil
}

// staticFiles serves web/static.
func staticFiles() http.Handler {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// RenderTemplate executes the named page into a buffer first so a template
// error never leaves a half-written response.
func (h *Handler) RenderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	tmpl, ok := h.templates[name]
	if !ok {
		h.logger.ErrorContext(r.Context(), "template not found", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["CurrentYear"] = h.clock.Now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "template execution failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderErrorPage renders error.html with the given status.
func (h *Handler) RenderErrorPage(w http.ResponseWriter, r *http.Request, statusCode int, title, message string) {
	h.RenderTemplate(w, r, statusCode, "error.html", map[string]any{
		"Title":      fmt.Sprintf("Error %d - %s", statusCode, title),
		"StatusCode": statusCode,
		"StatusText": http.StatusText(statusCode),
		"ErrorTitle": title,
		"Message":    message,
	})
}

// renderServiceError shows err on the error page, using the same status and
// message as the JSON endpoints.
func (h *Handler) renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	he := toHTTPError(err)
	if he.status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	h.RenderErrorPage(w, r, he.status, http.StatusText(he.status), he.apiError.Message)
}
