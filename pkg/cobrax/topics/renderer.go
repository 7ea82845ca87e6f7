package topics

import "strings"

// Renderer turns a topic's raw content into terminal output. ext is the
// topic file's extension, dot included.
type Renderer interface {
	Render(content string, ext string) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(content, ext string) string

// Render calls f.
func (f RendererFunc) Render(content, ext string) string {
	return f(content, ext)
}

// PlainRenderer prints topics as written, ending in a single newline so the
// shell prompt starts on its own line.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, _ string) string {
	trimmed := strings.TrimRight(content, " \t\r\n")
	if trimmed == "" {
		return ""
	}
	return trimmed + "\n"
}
