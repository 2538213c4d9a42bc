package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemogoc/pickup/internal/clock"
)

func TestLoadTemplatesIncludesPartials(t *testing.T) {
	templates, err := LoadTemplates(templateFuncs(time.UTC, clock.NewFixed(testNow)))
	require.NoError(t, err)

	for _, page := range []string{"dashboard.html", "respond.html", "error.html"} {
		tmpl, ok := templates[page]
		require.True(t, ok, page)
		assert.NotNil(t, tmpl.Lookup("layout"), page)
		assert.NotNil(t, tmpl.Lookup("attendance"), page)
	}
	assert.NotContains(t, templates, "_attendance.html")
	assert.NotContains(t, templates, "layout.html")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "No Response", TitleCase("no_response"))
	assert.Equal(t, "Maybe", TitleCase("maybe"))
}
