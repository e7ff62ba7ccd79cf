package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)

	SummaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)
)

// Outcome styles
var (
	MergedStyle = lipgloss.NewStyle().
			Foreground(MergedColor).
			Bold(true)

	SkippedStyle = lipgloss.NewStyle().
			Foreground(SkippedColor).
			Bold(true)

	ExceptedStyle = lipgloss.NewStyle().
			Foreground(ExceptedColor).
			Bold(true)
)

// OutcomeStyle returns the style for a report outcome name.
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "merged":
		return MergedStyle
	case "skipped":
		return SkippedStyle
	case "excepted":
		return ExceptedStyle
	case "failed":
		return ErrorStyle
	default:
		return MutedStyle
	}
}
