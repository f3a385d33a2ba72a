package display

import (
	"fmt"
	"io"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/stats"
	"github.com/mkling/logbook/pkg/store"
)

// simpleFormatter formats output as simple text.
type simpleFormatter struct {
	config Config
}

// FormatUsers implements Formatter.FormatUsers.
func (f *simpleFormatter) FormatUsers(w io.Writer, users []store.User) error {
	for _, u := range users {
		if _, err := fmt.Fprintf(w, "%s %s [%s] created %s\n",
			u.ID, u.Name, userFlags(u), u.CreatedAt); err != nil {
			return err
		}
	}

	return nil
}

// FormatSessions implements Formatter.FormatSessions.
func (f *simpleFormatter) FormatSessions(w io.Writer, sessions []store.Session) error {
	for _, s := range sessions {
		if _, err := fmt.Fprintf(w, "%s %s: %dm %s score %s [%s]\n",
			s.ID, s.UserName, s.Minutes, s.Mood,
			formatFloat(s.Score, 3), sessionFlags(s)); err != nil {
			return err
		}
	}

	return nil
}

// FormatSummary implements Formatter.FormatSummary.
func (f *simpleFormatter) FormatSummary(w io.Writer, summary *stats.Summary) error {
	_, err := fmt.Fprintf(w, "%s: %d sessions | %dm total (avg %s) | score %s (avg %s)\n",
		summary.UserName,
		summary.Count,
		summary.TotalMinutes,
		formatFloat(summary.AvgMinutes, 1),
		formatFloat(summary.TotalScore, 3),
		formatFloat(summary.AvgScore, 3))
	if err != nil {
		return err
	}

	if summary.Best != nil {
		if _, err := fmt.Fprintf(w, "best %s | worst %s\n",
			describeSession(*summary.Best),
			describeSession(*summary.Worst)); err != nil {
			return err
		}
	}

	return nil
}

// FormatSettings implements Formatter.FormatSettings.
func (f *simpleFormatter) FormatSettings(w io.Writer, settings store.Settings) error {
	_, err := fmt.Fprintf(w, "level=%d weirdness=%d cap=%d\n",
		settings.Level, settings.Weirdness, settings.Cap)
	return err
}

// FormatArchivedUsers implements Formatter.FormatArchivedUsers.
func (f *simpleFormatter) FormatArchivedUsers(w io.Writer, users []archive.DeletedUser) error {
	for _, rec := range users {
		if _, err := fmt.Fprintf(w, "%s %s deleted %s\n",
			rec.User.ID, rec.User.Name,
			rec.DeletedAt.Format(deletedAtLayout)); err != nil {
			return err
		}
	}

	return nil
}

// FormatArchivedSessions implements Formatter.FormatArchivedSessions.
func (f *simpleFormatter) FormatArchivedSessions(w io.Writer, sessions []archive.DeletedSession) error {
	for _, rec := range sessions {
		if _, err := fmt.Fprintf(w, "%s %s: %dm %s score %s deleted %s\n",
			rec.Session.ID, rec.Session.UserName,
			rec.Session.Minutes, rec.Session.Mood,
			formatFloat(rec.Session.Score, 3),
			rec.DeletedAt.Format(deletedAtLayout)); err != nil {
			return err
		}
	}

	return nil
}
