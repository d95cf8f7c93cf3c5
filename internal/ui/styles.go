package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Colors
	ColorPrimary   = lipgloss.Color("205") // Pink
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange/Yellow
	ColorText      = lipgloss.Color("252") // White/Gray
	ColorCyan      = lipgloss.Color("87")
	ColorBlue      = lipgloss.Color("75")

	// Base Styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleText    = lipgloss.NewStyle().Foreground(ColorText)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorCyan)

	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	StyleSectionTitle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true)

	// Reasoning and recommendation lines
	StylePrefixReason = lipgloss.NewStyle().Foreground(ColorSecondary)
	StylePrefixPick   = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StylePrefixWarn   = lipgloss.NewStyle().Foreground(ColorWarning)
	StylePrefixError  = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)

// statusStyles colors the labels that show up in task, KPI and workload
// listings. Keys are lower-cased.
var statusStyles = map[string]lipgloss.Style{
	// KPI status
	"green":  StyleSuccess,
	"yellow": StyleWarning,
	"red":    StyleError,
	// priority
	"high":   StyleError,
	"medium": StyleWarning,
	"low":    StyleSuccess,
	// workload
	"light load":    StyleSuccess,
	"moderate load": StyleWarning,
	"heavy load":    StyleError,
	// task and delegation status
	"done":        StyleSuccess,
	"complete":    StyleSuccess,
	"in progress": StyleInfo,
	"blocked":     StyleError,
	"to do":       StyleSubtle,
	"pending":     StyleSubtle,
	// KPI trend
	"improving": StyleSuccess,
	"declining": StyleError,
}

// StatusStyle returns the style for a status, priority, load or trend label.
// Unknown labels render as plain text.
func StatusStyle(label string) lipgloss.Style {
	if s, ok := statusStyles[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s
	}
	return StyleText
}

// Status renders label with its StatusStyle.
func Status(label string) string {
	return StatusStyle(label).Render(label)
}

// Icon returns a styled icon string
func Icon(icon string, style lipgloss.Style) string {
	return style.Render(icon)
}

// ConfigureColor turns styling off when stdout is not a terminal or when
// disabled is set, so piped output stays free of escape codes.
func ConfigureColor(disabled bool) {
	if disabled || os.Getenv("NO_COLOR") != "" || !IsInteractive() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
