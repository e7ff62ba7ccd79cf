// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"io"

	"github.com/arthur-debert/locfold/pkg/style"
	"github.com/arthur-debert/locfold/pkg/ui/text"
	"github.com/charmbracelet/lipgloss"
)

// Renderer lays reports out like the text renderer, styled with lipgloss and
// annotated with locale display names
type Renderer struct {
	*text.Renderer
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	inner, err := text.NewWithStyles(w, Styles())
	if err != nil {
		return nil, err
	}
	return &Renderer{Renderer: inner}, nil
}

// Styles returns the terminal styles for report rendering
func Styles() text.Styles {
	return text.Styles{
		Title: render(style.SubtitleStyle),
		Outcome: func(outcome, s string) string {
			return style.OutcomeStyle(outcome).Render(s)
		},
		Path:    render(style.PathStyle),
		Muted:   render(style.MutedStyle),
		Warning: render(style.WarningStyle),
		Error:   render(style.ErrorStyle),
		Summary: render(style.SummaryStyle),
		Display: true,
	}
}

func render(st lipgloss.Style) func(string) string {
	return func(s string) string {
		return st.Render(s)
	}
}
