// Package store implements the logbook's relational in-memory store: users,
// their time-tracked sessions, and the scoring settings, together with JSON
// document persistence.
//
// Users and sessions are append-only records; the only mutations are
// deletions (with cascade from user to sessions) and settings changes. The
// store tracks a dirty flag so callers know when the in-memory state has
// diverged from the file on disk.
package store

// User is a logbook account.
//
// Users are immutable after creation; rename is unsupported.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`

	// Derived at creation from the name.
	EvenName bool `json:"even_name"`
	LongName bool `json:"long_name"`
}

// Session is a single time-tracked entry owned by a user.
//
// UserName is a snapshot of the owner's name at creation time.
type Session struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	Minutes   int     `json:"minutes"`
	Mood      string  `json:"mood"`
	Note      string  `json:"note"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"created_at"`
}

// Settings are the scoring knobs persisted with the logbook.
type Settings struct {
	// Level selects the duration curve (1-5).
	Level int `json:"level"`

	// Weirdness selects the score modifier mode (0-3).
	Weirdness int `json:"weirdness"`

	// Cap is the upper bound for session minutes (1-9999).
	Cap int `json:"cap"`
}

// DefaultSettings returns the settings used for a fresh logbook.
func DefaultSettings() Settings {
	return Settings{
		Level:     2,
		Weirdness: 1,
		Cap:       999,
	}
}

// state is the persisted document shape.
type state struct {
	Users    []User    `json:"users"`
	Sessions []Session `json:"sessions"`
	Config   Settings  `json:"config"`
}

// defaultState returns an empty logbook with default settings.
func defaultState() state {
	return state{
		Users:    []User{},
		Sessions: []Session{},
		Config:   DefaultSettings(),
	}
}
