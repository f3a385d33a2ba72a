package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/logger"
	"github.com/mkling/logbook/pkg/store"
)

// setupTestPaths points the data file and archive at a temp directory and
// quiets command logging.
func setupTestPaths(t *testing.T) (dataPath, archivePath string) {
	t.Helper()

	dir := t.TempDir()
	dataPath = filepath.Join(dir, "logbook.json")
	archivePath = filepath.Join(dir, "archive.db")

	t.Setenv("LOGBOOK_ARCHIVE", archivePath)
	t.Setenv("LOGBOOK_LOG_LEVEL", "error")

	return dataPath, archivePath
}

// loadTestStore reads the data file back for verification.
func loadTestStore(t *testing.T, dataPath string) *store.Store {
	t.Helper()

	st := store.New(store.Config{}, logger.Noop())
	st.Load(dataPath)
	return st
}

func TestUserAddPersists(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &userCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	u := st.FindUser("alex")
	if u == nil {
		t.Fatal("added user not found after reload")
	}
	if u.ID == "" || u.CreatedAt == "" {
		t.Errorf("user record incomplete: %+v", u)
	}
}

func TestUserAddGeneratedName(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &userCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"add"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	users := st.Users()
	if len(users) != 1 {
		t.Fatalf("user count = %d, want 1", len(users))
	}
	if !strings.HasPrefix(users[0].Name, "u") {
		t.Errorf("generated name = %s, want u<n> placeholder", users[0].Name)
	}
}

func TestUserAddDuplicate(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &userCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	err := cmd.Execute([]string{"add", "alex"})
	if !errors.Is(err, store.ErrDuplicateName) {
		t.Errorf("duplicate add error = %v, want ErrDuplicateName", err)
	}
}

func TestUserDeleteArchivesRecords(t *testing.T) {
	dataPath, archivePath := setupTestPaths(t)

	userCmd := &userCommand{dataPath: dataPath}
	if err := userCmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	sessCmd := &sessionCommand{dataPath: dataPath, user: "alex", minutes: "45", mood: "good"}
	if err := sessCmd.Execute([]string{"add"}); err != nil {
		t.Fatalf("session add error = %v", err)
	}

	if err := userCmd.Execute([]string{"delete", "alex"}); err != nil {
		t.Fatalf("user delete error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	if st.FindUser("alex") != nil {
		t.Error("user still present after delete")
	}
	if got := len(st.Sessions("")); got != 0 {
		t.Errorf("session count after cascade = %d, want 0", got)
	}

	arc, err := archive.New(archive.Config{DBPath: archivePath}, logger.Noop())
	if err != nil {
		t.Fatalf("archive.New() error = %v", err)
	}
	defer arc.Close()

	archivedUsers, err := arc.Users()
	if err != nil {
		t.Fatalf("archive Users() error = %v", err)
	}
	if len(archivedUsers) != 1 || archivedUsers[0].User.Name != "alex" {
		t.Errorf("archived users = %+v, want alex", archivedUsers)
	}

	archivedSessions, err := arc.Sessions()
	if err != nil {
		t.Fatalf("archive Sessions() error = %v", err)
	}
	if len(archivedSessions) != 1 {
		t.Errorf("archived session count = %d, want 1", len(archivedSessions))
	}
}

func TestUserDeleteArchivesNameSnapshotSessions(t *testing.T) {
	dataPath, archivePath := setupTestPaths(t)

	// A hand-edited document can hold a session whose name snapshot
	// matches a user while its user_id points elsewhere. The cascade
	// removes it, so the archive must capture it too.
	document := `{
  "users": [
    {"id": "1-1-100", "name": "alex", "created_at": "2024-01-01 10:00:00", "even_name": true, "long_name": false}
  ],
  "sessions": [
    {"id": "1-2-100", "user_id": "1-1-100", "user_name": "alex", "minutes": 30, "mood": "ok", "note": "", "score": 3.5, "created_at": "2024-01-01 10:01:00"},
    {"id": "1-3-100", "user_id": "9-9-999", "user_name": "alex", "minutes": 60, "mood": "good", "note": "", "score": 8.1, "created_at": "2024-01-01 10:02:00"}
  ],
  "config": {"level": 2, "weirdness": 1, "cap": 999}
}`
	if err := os.WriteFile(dataPath, []byte(document), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cmd := &userCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"delete", "alex"}); err != nil {
		t.Fatalf("user delete error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	if got := len(st.Sessions("")); got != 0 {
		t.Errorf("session count after cascade = %d, want 0", got)
	}

	arc, err := archive.New(archive.Config{DBPath: archivePath}, logger.Noop())
	if err != nil {
		t.Fatalf("archive.New() error = %v", err)
	}
	defer arc.Close()

	archived, err := arc.Sessions()
	if err != nil {
		t.Fatalf("archive Sessions() error = %v", err)
	}
	if len(archived) != 2 {
		t.Fatalf("archived session count = %d, want 2", len(archived))
	}

	ids := map[string]bool{}
	for _, rec := range archived {
		ids[rec.Session.ID] = true
	}
	if !ids["1-2-100"] || !ids["1-3-100"] {
		t.Errorf("archived session ids = %v, want both cascade victims", ids)
	}
}

func TestUserDeleteUnknown(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &userCommand{dataPath: dataPath}
	err := cmd.Execute([]string{"delete", "ghost"})
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("delete unknown user error = %v, want ErrUserNotFound", err)
	}
}

func TestSessionAddScoresAndPersists(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	userCmd := &userCommand{dataPath: dataPath}
	if err := userCmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	sessCmd := &sessionCommand{
		dataPath: dataPath,
		user:     "alex",
		minutes:  "45",
		mood:     "good",
		note:     "morning run",
	}
	if err := sessCmd.Execute([]string{"add"}); err != nil {
		t.Fatalf("session add error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	sessions := st.Sessions("alex")
	if len(sessions) != 1 {
		t.Fatalf("session count = %d, want 1", len(sessions))
	}

	sess := sessions[0]
	if sess.Minutes != 45 || sess.Mood != "good" || sess.Note != "morning run" {
		t.Errorf("session fields = %+v", sess)
	}
	if sess.UserName != "alex" || sess.UserID == "" {
		t.Errorf("session ownership = %+v", sess)
	}
	if sess.Score == 0 {
		t.Error("session score not computed")
	}
}

func TestSessionAddUnknownUser(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &sessionCommand{dataPath: dataPath, user: "ghost", minutes: "30"}
	err := cmd.Execute([]string{"add"})
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("session add error = %v, want ErrUserNotFound", err)
	}
}

func TestSessionAddRequiresUser(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &sessionCommand{dataPath: dataPath, minutes: "30"}
	if err := cmd.Execute([]string{"add"}); err == nil {
		t.Error("session add without -user succeeded, want error")
	}
}

func TestSessionDeleteArchives(t *testing.T) {
	dataPath, archivePath := setupTestPaths(t)

	userCmd := &userCommand{dataPath: dataPath}
	if err := userCmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	sessCmd := &sessionCommand{dataPath: dataPath, user: "alex", minutes: "30", mood: "ok"}
	if err := sessCmd.Execute([]string{"add"}); err != nil {
		t.Fatalf("session add error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	id := st.Sessions("alex")[0].ID

	if err := sessCmd.Execute([]string{"delete", id}); err != nil {
		t.Fatalf("session delete error = %v", err)
	}

	st = loadTestStore(t, dataPath)
	if st.FindSession(id) != nil {
		t.Error("session still present after delete")
	}

	arc, err := archive.New(archive.Config{DBPath: archivePath}, logger.Noop())
	if err != nil {
		t.Fatalf("archive.New() error = %v", err)
	}
	defer arc.Close()

	archived, err := arc.Sessions()
	if err != nil {
		t.Fatalf("archive Sessions() error = %v", err)
	}
	if len(archived) != 1 || archived[0].Session.ID != id {
		t.Errorf("archived sessions = %+v, want %s", archived, id)
	}
}

func TestConfigSetLevel(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &configCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"set-level", "4"}); err != nil {
		t.Fatalf("config set-level error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	if got := st.Settings().Level; got != 4 {
		t.Errorf("Level = %d, want 4", got)
	}
}

func TestConfigSetClampsOutOfRange(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &configCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"set-level", "99"}); err != nil {
		t.Fatalf("config set-level error = %v", err)
	}
	if err := cmd.Execute([]string{"set-cap", "99999"}); err != nil {
		t.Fatalf("config set-cap error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	settings := st.Settings()
	if settings.Level != 5 {
		t.Errorf("Level = %d, want clamp to 5", settings.Level)
	}
	if settings.Cap != 9999 {
		t.Errorf("Cap = %d, want clamp to 9999", settings.Cap)
	}
}

func TestConfigSetFallbackOnGarbage(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &configCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"set-level", "high"}); err != nil {
		t.Fatalf("config set-level error = %v", err)
	}
	if err := cmd.Execute([]string{"set-weird", ""}); err != nil {
		t.Fatalf("config set-weird error = %v", err)
	}
	if err := cmd.Execute([]string{"set-cap", "lots"}); err != nil {
		t.Fatalf("config set-cap error = %v", err)
	}

	st := loadTestStore(t, dataPath)
	settings := st.Settings()
	if settings.Level != fallbackLevel {
		t.Errorf("Level = %d, want fallback %d", settings.Level, fallbackLevel)
	}
	if settings.Weirdness != fallbackWeirdness {
		t.Errorf("Weirdness = %d, want fallback %d", settings.Weirdness, fallbackWeirdness)
	}
	if settings.Cap != fallbackCap {
		t.Errorf("Cap = %d, want fallback %d", settings.Cap, fallbackCap)
	}
}

func TestStatsUnknownUser(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &statsCommand{dataPath: dataPath, user: "ghost"}
	err := cmd.Execute(nil)
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("stats error = %v, want ErrUserNotFound", err)
	}
}

func TestStatsRequiresUser(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &statsCommand{dataPath: dataPath}
	if err := cmd.Execute(nil); err == nil {
		t.Error("stats without -user succeeded, want error")
	}
}

func TestUnknownSubcommands(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	if err := (&userCommand{dataPath: dataPath}).Execute([]string{"rename"}); err == nil {
		t.Error("unknown user subcommand succeeded")
	}
	if err := (&sessionCommand{dataPath: dataPath}).Execute([]string{"edit"}); err == nil {
		t.Error("unknown session subcommand succeeded")
	}
	if err := (&configCommand{dataPath: dataPath}).Execute([]string{"reset"}); err == nil {
		t.Error("unknown config subcommand succeeded")
	}
}

func TestDataFileSurvivesCommands(t *testing.T) {
	dataPath, _ := setupTestPaths(t)

	cmd := &userCommand{dataPath: dataPath}
	if err := cmd.Execute([]string{"add", "alex"}); err != nil {
		t.Fatalf("user add error = %v", err)
	}

	data, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	for _, key := range []string{`"users"`, `"sessions"`, `"config"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("data file missing %s", key)
		}
	}
}
