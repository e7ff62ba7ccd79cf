package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/locfold/pkg/ui"
	"github.com/arthur-debert/locfold/pkg/ui/json"
	"github.com/arthur-debert/locfold/pkg/ui/text"
	"github.com/arthur-debert/locfold/pkg/ui/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"term", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"TEXT", ui.FormatText, false},
		{"plain", ui.FormatText, false},
		{"json", ui.FormatJSON, false},
		{"yaml", ui.FormatYAML, false},
		{"yml", ui.FormatYAML, false},
		{"xml", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		parsed, err := ui.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	assert.Equal(t, "unknown", ui.Format(42).String())
}

func TestNewRenderer(t *testing.T) {
	var buf bytes.Buffer

	r, err := ui.NewRenderer(ui.FormatAuto, &buf)
	require.NoError(t, err)
	assert.IsType(t, &text.Renderer{}, r, "non-file writers get plain text")

	r, err = ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	assert.IsType(t, &json.Renderer{}, r)

	r, err = ui.NewRenderer(ui.FormatYAML, &buf)
	require.NoError(t, err)
	assert.IsType(t, &yaml.Renderer{}, r)

	_, err = ui.NewRenderer(ui.Format(42), &buf)
	assert.Error(t, err)
}
