package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// requiredKeys are the top-level keys a persisted document must carry.
// A document missing any of them is treated as structurally invalid and
// replaced by the default state wholesale, never partially merged.
var requiredKeys = []string{"users", "sessions", "config"}

// Load replaces the store's state with the document at path.
//
// Any structural problem falls back to the default empty state: a missing
// file, an empty or whitespace-only file, unparseable JSON, a non-object
// document, or a document missing one of the required keys. Records inside
// a structurally valid document are taken verbatim. Load never fails; the
// dirty flag is cleared either way.
func (s *Store) Load(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := defaultState()

	data, err := os.ReadFile(path) // nolint:gosec
	switch {
	case err != nil:
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read data file, starting empty",
				"path", path, "error", err)
		}
	case strings.TrimSpace(string(data)) == "":
		s.logger.Warn("data file is empty, starting empty", "path", path)
	default:
		parsed, ok := parseState(data)
		if ok {
			st = parsed
		} else {
			s.logger.Warn("data file malformed, starting empty", "path", path)
		}
	}

	s.users = st.Users
	s.sessions = st.Sessions
	s.settings = st.Config
	s.dirty = false

	s.logger.Info("logbook loaded",
		"path", path,
		"users", len(s.users),
		"sessions", len(s.sessions))
}

// Save writes the full state to path as pretty-printed JSON.
//
// The dirty flag is cleared only on success; on failure the in-memory state
// stays dirty and usable and the error is returned to the caller.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := state{
		Users:    s.users,
		Sessions: s.sessions,
		Config:   s.settings,
	}
	if st.Users == nil {
		st.Users = []User{}
	}
	if st.Sessions == nil {
		st.Sessions = []Session{}
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode logbook: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}

	s.dirty = false
	s.logger.Info("logbook saved",
		"path", path,
		"users", len(s.users),
		"sessions", len(s.sessions))
	return nil
}

// parseState decodes a persisted document, reporting whether it is
// structurally valid.
func parseState(data []byte) (state, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return state{}, false
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return state{}, false
		}
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}, false
	}

	if st.Users == nil {
		st.Users = []User{}
	}
	if st.Sessions == nil {
		st.Sessions = []Session{}
	}
	return st, true
}
