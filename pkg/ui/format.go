package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format selects how status lines are styled.
type Format string

const (
	// FormatAuto styles output only when it goes to a capable terminal.
	FormatAuto Format = "auto"
	// FormatTerminal always styles output.
	FormatTerminal Format = "term"
	// FormatText never styles output.
	FormatText Format = "text"
)

var formatNames = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
}

func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a --format value. Names are case insensitive.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q, expected auto, term or text", s)
}

// ColorProfile returns the color profile status lines written to w use
// under format.
func ColorProfile(format Format, w io.Writer) (termenv.Profile, error) {
	switch format {
	case FormatText:
		return termenv.Ascii, nil
	case FormatTerminal:
		// Forced styling still needs colors when w is not a terminal.
		if p := termenv.NewOutput(w).ColorProfile(); p != termenv.Ascii {
			return p, nil
		}
		return termenv.ANSI256, nil
	case FormatAuto:
		return detectProfile(w), nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown format %q", string(format))
	}
}

// detectProfile styles only terminals, and only when NO_COLOR is unset.
func detectProfile(w io.Writer) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}

	f, ok := w.(*os.File)
	if !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.NewOutput(f).ColorProfile()
}
