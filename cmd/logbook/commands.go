package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkling/logbook/pkg/archive"
	"github.com/mkling/logbook/pkg/config"
	"github.com/mkling/logbook/pkg/display"
	"github.com/mkling/logbook/pkg/logger"
	"github.com/mkling/logbook/pkg/stats"
	"github.com/mkling/logbook/pkg/store"
)

// appEnv bundles the loaded configuration, logger, and store that every
// command needs.
type appEnv struct {
	cfg      *config.Config
	log      logger.Logger
	store    *store.Store
	dataPath string
}

// newAppEnv loads configuration and the logbook document.
//
// dataPath overrides the configured data file when non-empty.
func newAppEnv(configPath, dataPath string) (*appEnv, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})

	if dataPath == "" {
		dataPath = cfg.Storage.DataPath
	}
	dataPath = expandHome(dataPath)

	st := store.New(store.Config{}, log)
	st.Load(dataPath)

	return &appEnv{
		cfg:      cfg,
		log:      log,
		store:    st,
		dataPath: dataPath,
	}, nil
}

// save persists the store if it has unsaved changes.
func (e *appEnv) save() error {
	if !e.store.Dirty() {
		return nil
	}
	return e.store.Save(e.dataPath)
}

// formatter builds a display formatter, preferring the command's format
// flag over the configured default.
func (e *appEnv) formatter(name string) (display.Formatter, error) {
	if name == "" {
		name = e.cfg.Display.DefaultFormat
	}

	format, err := display.ParseFormat(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, name)
	}

	return display.New(display.Config{
		Format: format,
		Width:  e.cfg.Display.Width,
	}), nil
}

// openArchive opens the deleted-records archive.
func (e *appEnv) openArchive() (archive.Archive, error) {
	arc, err := archive.New(archive.Config{
		DBPath: e.cfg.Storage.ArchivePath,
	}, e.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return arc, nil
}

// closeArchive closes the archive, logging instead of failing the command.
func (e *appEnv) closeArchive(arc archive.Archive) {
	if err := arc.Close(); err != nil {
		e.log.Error("failed to close archive", "error", err)
	}
}

// userCommand manages users.
type userCommand struct {
	configPath string
	dataPath   string
	format     string
}

// Execute runs the user command.
func (c *userCommand) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: logbook user <add|list|delete> [arguments]")
	}

	env, err := newAppEnv(c.configPath, c.dataPath)
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		return c.add(env, name)
	case "list":
		return c.list(env)
	case "delete":
		if len(args) < 2 {
			return errors.New("usage: logbook user delete <id-or-name>")
		}
		return c.delete(env, args[1])
	default:
		return fmt.Errorf("unknown user subcommand: %s", args[0])
	}
}

// add creates a user and persists the document.
func (c *userCommand) add(env *appEnv, name string) error {
	id, err := env.store.AddUser(name)
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	if err := env.save(); err != nil {
		return err
	}

	u := env.store.FindUser(id)
	fmt.Printf("Added user %s (%s)\n", u.Name, id)
	return nil
}

// list renders all users.
func (c *userCommand) list(env *appEnv) error {
	f, err := env.formatter(c.format)
	if err != nil {
		return err
	}

	return f.FormatUsers(os.Stdout, env.store.Users())
}

// delete archives a user and its sessions, then removes them.
func (c *userCommand) delete(env *appEnv, identifier string) error {
	u := env.store.FindUser(identifier)
	if u == nil {
		return fmt.Errorf("user %s: %w", identifier, store.ErrUserNotFound)
	}

	// Capture the records before they disappear from the document. The
	// cascade removes sessions matched by the user's id or by the name
	// snapshot, so the archive set must use the same criteria.
	var sessions []store.Session
	for _, sess := range env.store.Sessions("") {
		if sess.UserID == u.ID || sess.UserName == u.Name {
			sessions = append(sessions, sess)
		}
	}

	arc, err := env.openArchive()
	if err != nil {
		return err
	}
	defer env.closeArchive(arc)

	if err := arc.RecordUser(*u); err != nil {
		return fmt.Errorf("failed to archive user: %w", err)
	}
	if err := arc.RecordSessions(sessions); err != nil {
		return fmt.Errorf("failed to archive sessions: %w", err)
	}

	env.store.DeleteUser(identifier)

	if err := env.save(); err != nil {
		return err
	}

	fmt.Printf("Deleted user %s and %d session(s)\n", u.Name, len(sessions))
	return nil
}

// sessionCommand manages sessions.
type sessionCommand struct {
	configPath string
	dataPath   string
	format     string
	user       string
	minutes    string
	mood       string
	note       string
}

// Execute runs the session command.
func (c *sessionCommand) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: logbook session [flags] <add|list|delete> [arguments]")
	}

	env, err := newAppEnv(c.configPath, c.dataPath)
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		return c.add(env)
	case "list":
		return c.list(env)
	case "delete":
		if len(args) < 2 {
			return errors.New("usage: logbook session delete <id>")
		}
		return c.delete(env, args[1])
	default:
		return fmt.Errorf("unknown session subcommand: %s", args[0])
	}
}

// add records a session and persists the document.
func (c *sessionCommand) add(env *appEnv) error {
	if c.user == "" {
		return errors.New("session add requires -user")
	}

	id, err := env.store.AddSession(c.user, c.minutes, c.mood, c.note)
	if err != nil {
		return fmt.Errorf("failed to add session: %w", err)
	}

	if err := env.save(); err != nil {
		return err
	}

	sess := env.store.FindSession(id)
	fmt.Printf("Added session %s for %s (score %.3f)\n", id, sess.UserName, sess.Score)
	return nil
}

// list renders sessions, filtered to one user when -user is set.
func (c *sessionCommand) list(env *appEnv) error {
	f, err := env.formatter(c.format)
	if err != nil {
		return err
	}

	return f.FormatSessions(os.Stdout, env.store.Sessions(c.user))
}

// delete archives a session, then removes it.
func (c *sessionCommand) delete(env *appEnv, id string) error {
	sess := env.store.FindSession(id)
	if sess == nil {
		return fmt.Errorf("session %s not found", id)
	}

	arc, err := env.openArchive()
	if err != nil {
		return err
	}
	defer env.closeArchive(arc)

	if err := arc.RecordSessions([]store.Session{*sess}); err != nil {
		return fmt.Errorf("failed to archive session: %w", err)
	}

	env.store.DeleteSession(id)

	if err := env.save(); err != nil {
		return err
	}

	fmt.Printf("Deleted session %s\n", id)
	return nil
}

// statsCommand displays per-user session statistics.
type statsCommand struct {
	configPath string
	dataPath   string
	format     string
	user       string
}

// Execute runs the stats command.
func (c *statsCommand) Execute(args []string) error {
	if c.user == "" && len(args) > 0 {
		c.user = args[0]
	}
	if c.user == "" {
		return errors.New("usage: logbook stats -user <id-or-name>")
	}

	env, err := newAppEnv(c.configPath, c.dataPath)
	if err != nil {
		return err
	}

	summary, err := stats.New(env.store).ForUser(c.user)
	if err != nil {
		return fmt.Errorf("stats for %s: %w", c.user, err)
	}

	f, err := env.formatter(c.format)
	if err != nil {
		return err
	}

	return f.FormatSummary(os.Stdout, summary)
}

// archiveCommand browses deleted records.
type archiveCommand struct {
	configPath string
	format     string
}

// Execute runs the archive command.
func (c *archiveCommand) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: logbook archive <users|sessions>")
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Output: cfg.Logging.Output,
		Format: cfg.Logging.Format,
	})

	arc, err := archive.New(archive.Config{
		DBPath: cfg.Storage.ArchivePath,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() {
		if closeErr := arc.Close(); closeErr != nil {
			log.Error("failed to close archive", "error", closeErr)
		}
	}()

	name := c.format
	if name == "" {
		name = cfg.Display.DefaultFormat
	}
	format, err := display.ParseFormat(name)
	if err != nil {
		return fmt.Errorf("%w: %s", err, name)
	}
	f := display.New(display.Config{
		Format: format,
		Width:  cfg.Display.Width,
	})

	switch args[0] {
	case "users":
		users, listErr := arc.Users()
		if listErr != nil {
			return listErr
		}
		return f.FormatArchivedUsers(os.Stdout, users)
	case "sessions":
		sessions, listErr := arc.Sessions()
		if listErr != nil {
			return listErr
		}
		return f.FormatArchivedSessions(os.Stdout, sessions)
	default:
		return fmt.Errorf("unknown archive subcommand: %s", args[0])
	}
}

// expandHome expands ~ in file paths to the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	return filepath.Join(homeDir, path[2:])
}
