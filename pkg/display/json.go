package display

import (
	"encoding/json"
	"io"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/stats"
	"github.com/mkling/logbook/pkg/store"
)

// jsonFormatter formats output as JSON.
type jsonFormatter struct {
	config Config
}

func (f *jsonFormatter) encode(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatUsers implements Formatter.FormatUsers.
func (f *jsonFormatter) FormatUsers(w io.Writer, users []store.User) error {
	return f.encode(w, users)
}

// FormatSessions implements Formatter.FormatSessions.
func (f *jsonFormatter) FormatSessions(w io.Writer, sessions []store.Session) error {
	return f.encode(w, sessions)
}

// FormatSummary implements Formatter.FormatSummary.
func (f *jsonFormatter) FormatSummary(w io.Writer, summary *stats.Summary) error {
	return f.encode(w, summary)
}

// FormatSettings implements Formatter.FormatSettings.
func (f *jsonFormatter) FormatSettings(w io.Writer, settings store.Settings) error {
	return f.encode(w, settings)
}

// FormatArchivedUsers implements Formatter.FormatArchivedUsers.
func (f *jsonFormatter) FormatArchivedUsers(w io.Writer, users []archive.DeletedUser) error {
	return f.encode(w, users)
}

// FormatArchivedSessions implements Formatter.FormatArchivedSessions.
func (f *jsonFormatter) FormatArchivedSessions(w io.Writer, sessions []archive.DeletedSession) error {
	return f.encode(w, sessions)
}
