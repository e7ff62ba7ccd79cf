package terminal_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/locfold/pkg/report"
	"github.com/arthur-debert/locfold/pkg/ui/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalRendererShowsDisplayNames(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	b := report.NewBuilder("/res", false)
	b.Skipped("values-fr-rCA", "values-fr", "Canadian French")

	var buf bytes.Buffer
	r, err := terminal.New(&buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderResult(b.Build()))

	out := buf.String()
	assert.Contains(t, out, "values-fr-rCA")
	assert.Contains(t, out, "(Canadian French)")
	assert.Contains(t, out, "0 merged, 1 skipped")
}
