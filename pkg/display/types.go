// Package display provides output formatting for logbook records.
//
// It supports multiple output formats (table, JSON, simple text) and
// renders users, sessions, per-user summaries, and archived records.
package display

import (
	"io"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/stats"
	"github.com/mkling/logbook/pkg/store"
)

// Format represents an output format.
type Format string

const (
	// FormatTable displays records in a formatted table.
	FormatTable Format = "table"

	// FormatJSON displays records as JSON.
	FormatJSON Format = "json"

	// FormatSimple displays records in simple text format.
	FormatSimple Format = "simple"
)

// ParseFormat converts a format name to a Format.
//
// Returns ErrUnknownFormat for unrecognized names.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatTable, FormatJSON, FormatSimple:
		return Format(name), nil
	default:
		return "", ErrUnknownFormat
	}
}

// Formatter formats and displays logbook records.
type Formatter interface {
	// FormatUsers renders a user listing.
	FormatUsers(w io.Writer, users []store.User) error

	// FormatSessions renders a session listing.
	FormatSessions(w io.Writer, sessions []store.Session) error

	// FormatSummary renders a per-user summary.
	FormatSummary(w io.Writer, summary *stats.Summary) error

	// FormatSettings renders the scoring settings.
	FormatSettings(w io.Writer, settings store.Settings) error

	// FormatArchivedUsers renders archived user records.
	FormatArchivedUsers(w io.Writer, users []archive.DeletedUser) error

	// FormatArchivedSessions renders archived session records.
	FormatArchivedSessions(w io.Writer, sessions []archive.DeletedSession) error
}

// Config contains formatter configuration.
type Config struct {
	// Format specifies the output format.
	// Default: FormatTable.
	Format Format

	// Width is the output width in columns used to size note columns.
	// Zero means detect from the terminal, falling back to 100.
	Width int
}
