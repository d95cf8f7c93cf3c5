package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// IsInteractive checks if stdout is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when it is not a terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// RenderPageHeader writes a consistent styled header for commands.
func RenderPageHeader(w io.Writer, title, subtitle string) {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		MarginBottom(1)

	fmt.Fprintln(w, titleStyle.Render(title))
	if subtitle != "" {
		fmt.Fprintf(w, "  %s\n", StyleSubtle.Render(subtitle))
	}
}

// Panel is a bordered box of bulleted report lines, such as insight alerts
// or recommendations.
type Panel struct {
	Title       string
	Lines       []string
	BorderColor lipgloss.Color
	Width       int // outer width including border; 0 = fit content
}

// NewPanel creates a panel with the default border.
func NewPanel(title string, lines ...string) *Panel {
	return &Panel{Title: title, Lines: lines, BorderColor: ColorSecondary}
}

func (p *Panel) WithBorderColor(color lipgloss.Color) *Panel {
	p.BorderColor = color
	return p
}

func (p *Panel) WithWidth(width int) *Panel {
	p.Width = width
	return p
}

// Render returns the panel as a string. Each line becomes a bullet, wrapped
// with a hanging indent when Width is set.
func (p *Panel) Render() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Padding(0, 1)

	// border (2) + padding (2) + bullet (2)
	textWidth := 0
	if p.Width > 6 {
		textWidth = p.Width - 6
	}

	var body []string
	if p.Title != "" {
		body = append(body, lipgloss.NewStyle().Bold(true).Foreground(p.BorderColor).Render(p.Title))
	}
	for _, line := range p.Lines {
		wrapped := strings.Split(WrapText(line, textWidth), "\n")
		for i, part := range wrapped {
			prefix := "  "
			if i == 0 {
				prefix = "• "
			}
			body = append(body, prefix+part)
		}
	}
	return style.Render(strings.Join(body, "\n"))
}

// RenderInfoPanel renders lines in a cyan-bordered panel.
func RenderInfoPanel(title string, width int, lines ...string) string {
	return NewPanel(title, lines...).WithBorderColor(ColorCyan).WithWidth(width).Render()
}

// RenderSuccessPanel renders lines in a green-bordered panel.
func RenderSuccessPanel(title string, width int, lines ...string) string {
	return NewPanel(title, lines...).WithBorderColor(ColorSuccess).WithWidth(width).Render()
}

// RenderWarningPanel renders lines in a yellow-bordered panel.
func RenderWarningPanel(title string, width int, lines ...string) string {
	return NewPanel(title, lines...).WithBorderColor(ColorWarning).WithWidth(width).Render()
}

// Truncate shortens free text such as task or KPI names to maxWidth display
// cells, ending with an ellipsis when cut. maxWidth <= 0 disables it.
func Truncate(s string, maxWidth int) string {
	return clip(strings.TrimSpace(s), maxWidth)
}

// WrapText word-wraps text to width display cells. Words longer than width
// are kept whole on their own line.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if lipgloss.Width(line) <= width {
			out = append(out, line)
			continue
		}
		current := ""
		for _, word := range strings.Fields(line) {
			switch {
			case current == "":
				current = word
			case lipgloss.Width(current)+1+lipgloss.Width(word) <= width:
				current += " " + word
			default:
				out = append(out, current)
				current = word
			}
		}
		if current != "" {
			out = append(out, current)
		}
	}
	return strings.Join(out, "\n")
}
