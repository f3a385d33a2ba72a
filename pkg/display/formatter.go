package display

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mkling/logbook/pkg/store"
)

// fallbackWidth is used when the output is not a terminal.
const fallbackWidth = 100

// New creates a new formatter based on configuration.
func New(cfg Config) Formatter {
	// Set defaults.
	if cfg.Format == "" {
		cfg.Format = FormatTable
	}
	if cfg.Width <= 0 {
		cfg.Width = detectWidth()
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatSimple:
		return &simpleFormatter{config: cfg}
	case FormatTable:
		fallthrough
	default:
		return &tableFormatter{config: cfg}
	}
}

// detectWidth returns the terminal width, or fallbackWidth when stdout is
// not a terminal or its size cannot be read.
func detectWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallbackWidth
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallbackWidth
	}

	return width
}

// formatFloat formats a float with specified precision.
func formatFloat(f float64, precision int) string {
	format := fmt.Sprintf("%%.%df", precision)
	return fmt.Sprintf(format, f)
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}

	return string(runes[:max-3]) + "..."
}

// sessionFlags derives display markers for a session: a duration bucket
// plus "!" for negative moods.
func sessionFlags(s store.Session) string {
	var flag string
	switch {
	case s.Minutes > 120:
		flag = "LONG"
	case s.Minutes > 60:
		flag = "MID"
	default:
		flag = "SHORT"
	}

	if s.Mood == "bad" || s.Mood == "angry" {
		flag += "!"
	}

	return flag
}

// userFlags derives display markers for a user from its stored name traits.
func userFlags(u store.User) string {
	flag := "O"
	if u.EvenName {
		flag = "E"
	}
	if u.LongName {
		flag += "L"
	}
	return flag
}

// writeHeader writes a section header.
func writeHeader(w io.Writer, title string) error {
	separator := ""
	for i := 0; i < len(title); i++ {
		separator += "="
	}

	_, err := fmt.Fprintf(w, "\n%s\n%s\n\n", title, separator)
	return err
}
