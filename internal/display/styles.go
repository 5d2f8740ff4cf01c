package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the colors used for operator-facing output
type Styles struct {
	Prompt     lipgloss.Style
	Suggestion lipgloss.Style
	Accept     lipgloss.Style
	Cancel     lipgloss.Style
	Error      lipgloss.Style
	Muted      lipgloss.Style
}

// NewStyles builds styles for w. Color is dropped when w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Prompt:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Suggestion: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Accept:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Cancel:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Error:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Muted:      r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
