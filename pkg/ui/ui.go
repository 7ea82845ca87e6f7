// Package ui renders release progress for the operator. Each pipeline stage
// reports a "what is happening..." line followed by its outcome.
package ui

import (
	"fmt"
	"io"

	"github.com/arthur-debert/svnrelease/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// Reporter writes status lines. Messages may carry style markup such as
// [path]/tmp/x[/path].
type Reporter struct {
	w      io.Writer
	markup *style.MarkupParser
	open   bool
}

// NewReporter creates a reporter for w. Styling follows ColorProfile.
func NewReporter(format Format, w io.Writer) (*Reporter, error) {
	profile, err := ColorProfile(format, w)
	if err != nil {
		return nil, err
	}

	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(profile)

	return &Reporter{
		w:      w,
		markup: style.NewMarkupParser(style.NewStyles(renderer)),
	}, nil
}

// Discard returns a reporter that writes nothing.
func Discard() *Reporter {
	r, _ := NewReporter(FormatText, io.Discard)
	return r
}

// Step starts a status line. The line stays open until an outcome is
// reported or another line is written.
func (r *Reporter) Step(format string, args ...interface{}) {
	r.closeLine()
	r.write(fmt.Sprintf(format, args...) + "... ")
	r.open = true
}

// Done completes the open status line with a successful outcome.
func (r *Reporter) Done(format string, args ...interface{}) {
	r.outcome("success", fmt.Sprintf(format, args...))
}

// Skip completes the open status line with a neutral outcome.
func (r *Reporter) Skip(format string, args ...interface{}) {
	r.outcome("muted", fmt.Sprintf(format, args...))
}

// Fail completes the open status line with a failure.
func (r *Reporter) Fail(format string, args ...interface{}) {
	r.outcome("error", fmt.Sprintf(format, args...))
}

// Info writes a standalone line.
func (r *Reporter) Info(format string, args ...interface{}) {
	r.closeLine()
	r.write(fmt.Sprintf(format, args...) + "\n")
}

// Warn writes a standalone warning line.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.closeLine()
	r.write("[warning]" + fmt.Sprintf(format, args...) + "[/warning]\n")
}

// Error writes a standalone error line.
func (r *Reporter) Error(format string, args ...interface{}) {
	r.closeLine()
	r.write("[error]" + fmt.Sprintf(format, args...) + "[/error]\n")
}

func (r *Reporter) outcome(tag, msg string) {
	r.write("[" + tag + "]" + msg + "[/" + tag + "]\n")
	r.open = false
}

func (r *Reporter) closeLine() {
	if r.open {
		r.write("\n")
		r.open = false
	}
}

func (r *Reporter) write(s string) {
	_, _ = io.WriteString(r.w, r.markup.Render(s))
}
