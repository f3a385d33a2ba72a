package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/stats"
	"github.com/mkling/logbook/pkg/store"
)

// deletedAtLayout renders archive deletion timestamps.
const deletedAtLayout = "2006-01-02 15:04:05"

// tableFormatter formats output as tables.
type tableFormatter struct {
	config Config
}

// FormatUsers implements Formatter.FormatUsers.
func (f *tableFormatter) FormatUsers(w io.Writer, users []store.User) error {
	if err := writeHeader(w, "Users"); err != nil {
		return err
	}

	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.ID, u.Name, u.CreatedAt, userFlags(u)}
	}

	return f.writeTable(w, []string{"ID", "Name", "Created", "Flags"}, rows)
}

// FormatSessions implements Formatter.FormatSessions.
func (f *tableFormatter) FormatSessions(w io.Writer, sessions []store.Session) error {
	if err := writeHeader(w, "Sessions"); err != nil {
		return err
	}

	rows := make([][]string, len(sessions))
	for i, s := range sessions {
		rows[i] = []string{
			s.ID,
			s.UserName,
			strconv.Itoa(s.Minutes),
			s.Mood,
			formatFloat(s.Score, 3),
			sessionFlags(s),
			truncate(s.Note, f.noteWidth()),
		}
	}

	return f.writeTable(w,
		[]string{"ID", "User", "Min", "Mood", "Score", "Flags", "Note"}, rows)
}

// FormatSummary implements Formatter.FormatSummary.
func (f *tableFormatter) FormatSummary(w io.Writer, summary *stats.Summary) error {
	if err := writeHeader(w, fmt.Sprintf("Stats for %s", summary.UserName)); err != nil {
		return err
	}

	rows := [][]string{
		{"Sessions", strconv.Itoa(summary.Count)},
		{"Total Minutes", strconv.Itoa(summary.TotalMinutes)},
		{"Avg Minutes", formatFloat(summary.AvgMinutes, 1)},
		{"Total Score", formatFloat(summary.TotalScore, 3)},
		{"Avg Score", formatFloat(summary.AvgScore, 3)},
	}

	if summary.Best != nil {
		rows = append(rows,
			[]string{"Best", describeSession(*summary.Best)},
			[]string{"Worst", describeSession(*summary.Worst)},
		)
	}

	return f.writeTable(w, []string{"Metric", "Value"}, rows)
}

// FormatSettings implements Formatter.FormatSettings.
func (f *tableFormatter) FormatSettings(w io.Writer, settings store.Settings) error {
	if err := writeHeader(w, "Scoring Settings"); err != nil {
		return err
	}

	rows := [][]string{
		{"Level", strconv.Itoa(settings.Level)},
		{"Weirdness", strconv.Itoa(settings.Weirdness)},
		{"Minutes Cap", strconv.Itoa(settings.Cap)},
	}

	return f.writeTable(w, []string{"Setting", "Value"}, rows)
}

// FormatArchivedUsers implements Formatter.FormatArchivedUsers.
func (f *tableFormatter) FormatArchivedUsers(w io.Writer, users []archive.DeletedUser) error {
	if err := writeHeader(w, "Archived Users"); err != nil {
		return err
	}

	rows := make([][]string, len(users))
	for i, rec := range users {
		rows[i] = []string{
			rec.User.ID,
			rec.User.Name,
			rec.User.CreatedAt,
			rec.DeletedAt.Format(deletedAtLayout),
		}
	}

	return f.writeTable(w, []string{"ID", "Name", "Created", "Deleted"}, rows)
}

// FormatArchivedSessions implements Formatter.FormatArchivedSessions.
func (f *tableFormatter) FormatArchivedSessions(w io.Writer, sessions []archive.DeletedSession) error {
	if err := writeHeader(w, "Archived Sessions"); err != nil {
		return err
	}

	rows := make([][]string, len(sessions))
	for i, rec := range sessions {
		rows[i] = []string{
			rec.Session.ID,
			rec.Session.UserName,
			strconv.Itoa(rec.Session.Minutes),
			rec.Session.Mood,
			formatFloat(rec.Session.Score, 3),
			rec.DeletedAt.Format(deletedAtLayout),
		}
	}

	return f.writeTable(w,
		[]string{"ID", "User", "Min", "Mood", "Score", "Deleted"}, rows)
}

// noteWidth sizes the note column from the configured output width,
// leaving room for the fixed columns.
func (f *tableFormatter) noteWidth() int {
	width := f.config.Width - 60
	if width < 12 {
		return 12
	}
	if width > 48 {
		return 48
	}
	return width
}

// describeSession renders a one-cell session reference for summary rows.
func describeSession(s store.Session) string {
	return fmt.Sprintf("%s (%s, %dm, %s)",
		s.ID, formatFloat(s.Score, 3), s.Minutes, s.Mood)
}

// writeTable writes a formatted table.
func (f *tableFormatter) writeTable(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No data")
		return err
	}

	// Calculate column widths.
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	// Write header.
	if err := f.writeRow(w, header, widths); err != nil {
		return err
	}

	// Write separator.
	separator := make([]string, len(header))
	for i, width := range widths {
		separator[i] = strings.Repeat("-", width)
	}
	if err := f.writeRow(w, separator, widths); err != nil {
		return err
	}

	// Write rows.
	for _, row := range rows {
		if err := f.writeRow(w, row, widths); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

// writeRow writes a single table row.
func (f *tableFormatter) writeRow(w io.Writer, cells []string, widths []int) error {
	for i, cell := range cells {
		if i > 0 {
			if _, err := fmt.Fprint(w, "  "); err != nil {
				return err
			}
		}

		format := fmt.Sprintf("%%-%ds", widths[i])
		if _, err := fmt.Fprintf(w, format, cell); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
