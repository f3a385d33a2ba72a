package store

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mkling/logbook/pkg/idgen"
	"github.com/mkling/logbook/pkg/logger"
	"github.com/mkling/logbook/pkg/score"
)

// timestampLayout is the creation timestamp format persisted with records.
const timestampLayout = "2006-01-02 15:04:05"

// Config contains store configuration.
//
// All fields are optional; zero values wire the real clock, a time-seeded
// RNG, and generators built on top of them. Tests inject deterministic
// replacements. When Rand is set but IDs or Engine are not, the generated
// components share the injected RNG so a single seed drives every random
// draw.
type Config struct {
	// IDs mints record identifiers.
	IDs *idgen.Generator

	// Engine scores new sessions.
	Engine *score.Engine

	// Now supplies creation timestamps.
	Now func() time.Time

	// Rand supplies random draws for auto-generated user names.
	Rand *rand.Rand
}

// Store owns the users, sessions, and settings collections.
//
// Methods are safe for concurrent use; the watch command reloads the store
// from its event loop while renderers read it.
type Store struct {
	mu       sync.RWMutex
	users    []User
	sessions []Session
	settings Settings
	dirty    bool

	ids    *idgen.Generator
	engine *score.Engine
	now    func() time.Time
	rand   *rand.Rand
	logger logger.Logger
}

// New creates an empty store with default settings.
func New(cfg Config, log logger.Logger) *Store {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	}
	if cfg.IDs == nil {
		cfg.IDs = idgen.New(idgen.Config{Now: cfg.Now, Rand: cfg.Rand})
	}
	if cfg.Engine == nil {
		cfg.Engine = score.New(score.Config{Now: cfg.Now, Rand: cfg.Rand})
	}

	return &Store{
		users:    []User{},
		sessions: []Session{},
		settings: DefaultSettings(),
		ids:      cfg.IDs,
		engine:   cfg.Engine,
		now:      cfg.Now,
		rand:     cfg.Rand,
		logger:   log,
	}
}

// AddUser creates a user with the given name and returns its id.
//
// The name is trimmed; an empty name is replaced by a generated "u<n>"
// placeholder. Returns ErrDuplicateName if the name is already taken.
func (s *Store) AddUser(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := trimmed(name)
	if n == "" {
		n = fmt.Sprintf("u%d", 1+s.rand.Intn(999))
	}

	for i := range s.users {
		if s.users[i].Name == n {
			return "", ErrDuplicateName
		}
	}

	// Name traits count characters, not bytes.
	nameLen := utf8.RuneCountInString(n)
	u := User{
		ID:        s.ids.Next(),
		Name:      n,
		CreatedAt: s.timestamp(),
		EvenName:  nameLen%2 == 0,
		LongName:  nameLen > 8,
	}

	s.users = append(s.users, u)
	s.dirty = true

	s.logger.Info("user added", "id", u.ID, "name", u.Name)
	return u.ID, nil
}

// DeleteUser removes the first user matching the identifier (by id or name)
// and cascades to every session owned by that user.
//
// Sessions are matched by the user's id or by the user's name snapshot, so
// sessions survive in neither form. Returns whether anything was removed.
func (s *Store) DeleteUser(identifier string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(identifier)
	if u == nil {
		return false
	}
	id, name := u.ID, u.Name

	users := s.users[:0]
	for i := range s.users {
		if s.users[i].ID != id {
			users = append(users, s.users[i])
		}
	}
	s.users = users

	removed := 0
	sessions := s.sessions[:0]
	for i := range s.sessions {
		if s.sessions[i].UserID == id || s.sessions[i].UserName == name {
			removed++
			continue
		}
		sessions = append(sessions, s.sessions[i])
	}
	s.sessions = sessions

	s.dirty = true
	s.logger.Info("user deleted", "id", id, "name", name, "sessions_removed", removed)
	return true
}

// FindUser returns a copy of the first user matching the identifier by id or
// name, or nil if no user matches.
func (s *Store) FindUser(identifier string) *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u := s.findUser(identifier); u != nil {
		c := *u
		return &c
	}
	return nil
}

// findUser scans users in insertion order. Callers must hold the lock.
func (s *Store) findUser(identifier string) *User {
	for i := range s.users {
		if s.users[i].ID == identifier || s.users[i].Name == identifier {
			return &s.users[i]
		}
	}
	return nil
}

// Users returns all users in insertion order.
func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out
}

// AddSession records a session for the user matching userIdentifier and
// returns the new session's id.
//
// Minutes arrive as raw text and are normalized (unparsable input counts as
// zero, zero becomes five, the absolute value is taken, and the configured
// cap applies). The mood is normalized to the canonical set. Returns
// ErrUserNotFound if no user matches.
func (s *Store) AddSession(userIdentifier, minutes, mood, note string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userIdentifier)
	if u == nil {
		return "", ErrUserNotFound
	}

	m := normalizeMinutes(minutes, s.settings.Cap)
	mo := normalizeMood(mood)

	sess := Session{
		ID:        s.ids.Next(),
		UserID:    u.ID,
		UserName:  u.Name,
		Minutes:   m,
		Mood:      mo,
		Note:      note,
		CreatedAt: s.timestamp(),
	}
	sess.Score = s.engine.Compute(score.Input{
		Minutes:   m,
		Mood:      mo,
		Note:      note,
		UserName:  u.Name,
		Level:     s.settings.Level,
		Weirdness: s.settings.Weirdness,
	})

	s.sessions = append(s.sessions, sess)
	s.dirty = true

	s.logger.Info("session added",
		"id", sess.ID,
		"user", u.Name,
		"minutes", m,
		"mood", mo,
		"score", sess.Score)
	return sess.ID, nil
}

// DeleteSession removes the session with the given id.
// Returns whether anything was removed.
func (s *Store) DeleteSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions := s.sessions[:0]
	found := false
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			found = true
			continue
		}
		sessions = append(sessions, s.sessions[i])
	}
	s.sessions = sessions

	if found {
		s.dirty = true
		s.logger.Info("session deleted", "id", id)
	}
	return found
}

// FindSession returns a copy of the session with the given id, or nil.
func (s *Store) FindSession(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.sessions {
		if s.sessions[i].ID == id {
			c := s.sessions[i]
			return &c
		}
	}
	return nil
}

// Sessions returns sessions in insertion order.
//
// An empty identifier returns every session. A non-empty identifier returns
// the sessions owned by the matching user, or an empty slice if no user
// matches.
func (s *Store) Sessions(userIdentifier string) []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if trimmed(userIdentifier) == "" {
		out := make([]Session, len(s.sessions))
		copy(out, s.sessions)
		return out
	}

	u := s.findUser(userIdentifier)
	if u == nil {
		return []Session{}
	}

	out := []Session{}
	for i := range s.sessions {
		if s.sessions[i].UserID == u.ID {
			out = append(out, s.sessions[i])
		}
	}
	return out
}

// Settings returns the current scoring settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// SetLevel sets the scoring level, clamped to [1, 5].
// Returns the applied value.
func (s *Store) SetLevel(v int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = clamp(v, 1, 5)
	s.settings.Level = v
	s.dirty = true

	s.logger.Info("level changed", "level", v)
	return v
}

// SetWeirdness sets the weirdness mode, clamped to [0, 3].
// Returns the applied value.
func (s *Store) SetWeirdness(v int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = clamp(v, 0, 3)
	s.settings.Weirdness = v
	s.dirty = true

	s.logger.Info("weirdness changed", "weirdness", v)
	return v
}

// SetCap sets the minutes cap, clamped to [1, 9999].
// Returns the applied value.
func (s *Store) SetCap(v int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	v = clamp(v, 1, 9999)
	s.settings.Cap = v
	s.dirty = true

	s.logger.Info("cap changed", "cap", v)
	return v
}

// Dirty reports whether the in-memory state has unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dirty
}

// timestamp formats the current time for record creation.
// Callers must hold the lock.
func (s *Store) timestamp() string {
	return s.now().Format(timestampLayout)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
