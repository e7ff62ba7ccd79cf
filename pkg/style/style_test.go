package style

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMarkupParser(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "values-ar", "values-ar"},
		{"single tag", "[merged]values-ar-rSA[/merged]", "values-ar-rSA"},
		{"nested tags", "[bold][path]values-ar[/path][/bold]", "values-ar"},
		{"unknown tag kept", "[nope]x[/nope]", "[nope]x[/nope]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.input))
		})
	}
}

func TestRenderTemplate(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	p := NewMarkupParser()
	p.AddStyle("custom", lipgloss.NewStyle())
	out := p.RenderTemplate("[custom]{{dir}}[/custom] -> {{base}}", map[string]string{
		"dir":  "values-ar-rSA",
		"base": "values-ar",
	})
	assert.Equal(t, "values-ar-rSA -> values-ar", out)
}

func TestOutcomeStyle(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	for _, outcome := range []string{"merged", "skipped", "excepted", "failed", "other"} {
		assert.Equal(t, outcome, OutcomeStyle(outcome).Render(outcome))
	}
}
