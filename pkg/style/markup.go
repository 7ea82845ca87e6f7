package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with a set of styles
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a parser that knows the tags of s
func NewMarkupParser(s Styles) *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	p.AddStyle("title", s.Title)
	p.AddStyle("success", s.Success)
	p.AddStyle("error", s.Error)
	p.AddStyle("warning", s.Warning)
	p.AddStyle("info", s.Info)
	p.AddStyle("muted", s.Muted)
	p.AddStyle("path", s.Path)
	p.AddStyle("bold", s.Bold)
	return p
}

// AddStyle registers or replaces the style for tag
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`(?s)\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render processes markup text and returns styled output. Nested tags are
// resolved innermost first; unknown tags are left untouched.
func (p *MarkupParser) Render(text string) string {
	tags := make([]string, 0, len(p.patterns))
	for tag := range p.patterns {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	result := text
	for {
		before := result
		for _, tag := range tags {
			pattern := p.patterns[tag]
			style := p.styles[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				submatch := pattern.FindStringSubmatch(match)
				if len(submatch) != 2 {
					return match
				}
				return style.Render(submatch[1])
			})
		}
		if result == before {
			return result
		}
	}
}
