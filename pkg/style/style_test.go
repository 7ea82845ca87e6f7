package style

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plainStyles() Styles {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)
	return NewStyles(r)
}

func TestMarkupPlain(t *testing.T) {
	p := NewMarkupParser(plainStyles())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no markup", "Pulling the current repo...", "Pulling the current repo..."},
		{"single tag", "[success]done.[/success]", "done."},
		{"several tags", "[path]/tmp/SVNR1[/path] is [muted]empty[/muted]", "/tmp/SVNR1 is empty"},
		{"nested tags", "[bold][path]x[/path][/bold]", "x"},
		{"unknown tag", "[blink]x[/blink]", "[blink]x[/blink]"},
		{"unclosed tag", "[error]broken", "[error]broken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Render(tt.input))
		})
	}
}

func TestMarkupStyled(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.ANSI256)
	p := NewMarkupParser(NewStyles(r))

	out := p.Render("[error]failed[/error]")
	assert.Contains(t, out, "failed")
	assert.NotEqual(t, "failed", out, "styled output should carry escape codes")
}

func TestAddStyle(t *testing.T) {
	p := NewMarkupParser(plainStyles())
	p.AddStyle("tag", lipgloss.NewStyle())
	assert.Equal(t, "v1.0", p.Render("[tag]v1.0[/tag]"))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "    x", Indent("x", 2))
	assert.Equal(t, "x", Indent("x", 0))
}
