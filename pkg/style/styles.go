package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of styles status output is rendered with. Every style
// is bound to one renderer so output written to a pipe stays plain.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles builds the styles for r. A nil r uses the default renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	return Styles{
		Title: r.NewStyle().
			Foreground(HeadingColor).
			Bold(true),

		Success: r.NewStyle().
			Foreground(SuccessColor).
			Bold(true),

		Error: r.NewStyle().
			Foreground(ErrorColor).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(WarningColor).
			Bold(true),

		Info: r.NewStyle().
			Foreground(InfoColor),

		Muted: r.NewStyle().
			Foreground(MutedColor),

		Path: r.NewStyle().
			Foreground(SecondaryColor).
			Italic(true),

		Bold: r.NewStyle().Bold(true),
	}
}

// Indent pads every line of s by two spaces per level.
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
