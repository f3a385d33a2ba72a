// Package main provides the logbook CLI application.
//
// Logbook is a personal activity tracker. It records users and their
// activity sessions, scores each session with a configurable scoring
// engine, and keeps everything in a single JSON document.
package main

import (
	"flag"
	"fmt"
	"os"
)

// version is set during build time.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the main application logic.
func run() error {
	// Define global flags.
	configPath := flag.String("config", "", "path to configuration file")
	dataPath := flag.String("data", "", "path to the logbook data file (overrides config)")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Parse()

	if *showVersion {
		fmt.Printf("logbook %s\n", version)
		return nil
	}

	args := flag.Args()
	if len(args) == 0 {
		return showUsage()
	}

	command := args[0]

	switch command {
	case "user":
		return runUserCommand(*configPath, *dataPath, args[1:])
	case "session":
		return runSessionCommand(*configPath, *dataPath, args[1:])
	case "stats":
		return runStatsCommand(*configPath, *dataPath, args[1:])
	case "config":
		return runConfigCommand(*configPath, *dataPath, args[1:])
	case "archive":
		return runArchiveCommand(*configPath, args[1:])
	case "watch":
		return runWatchCommand(*configPath, *dataPath, args[1:])
	case "help":
		return showUsage()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runUserCommand runs the user command.
func runUserCommand(configPath, dataPath string, args []string) error {
	fs := flag.NewFlagSet("user", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &userCommand{
		configPath: configPath,
		dataPath:   dataPath,
		format:     *format,
	}

	return cmd.Execute(fs.Args())
}

// runSessionCommand runs the session command.
func runSessionCommand(configPath, dataPath string, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")
	user := fs.String("user", "", "user id or name")
	minutes := fs.String("minutes", "", "session duration in minutes")
	mood := fs.String("mood", "", "session mood")
	note := fs.String("note", "", "session note")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &sessionCommand{
		configPath: configPath,
		dataPath:   dataPath,
		format:     *format,
		user:       *user,
		minutes:    *minutes,
		mood:       *mood,
		note:       *note,
	}

	return cmd.Execute(fs.Args())
}

// runStatsCommand runs the stats command.
func runStatsCommand(configPath, dataPath string, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")
	user := fs.String("user", "", "user id or name")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &statsCommand{
		configPath: configPath,
		dataPath:   dataPath,
		format:     *format,
		user:       *user,
	}

	return cmd.Execute(fs.Args())
}

// runConfigCommand runs the config command.
func runConfigCommand(configPath, dataPath string, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &configCommand{
		configPath: configPath,
		dataPath:   dataPath,
		format:     *format,
	}

	return cmd.Execute(fs.Args())
}

// runArchiveCommand runs the archive command.
func runArchiveCommand(configPath string, args []string) error {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, json, simple)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &archiveCommand{
		configPath: configPath,
		format:     *format,
	}

	return cmd.Execute(fs.Args())
}

// runWatchCommand runs the watch command.
func runWatchCommand(configPath, dataPath string, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	format := fs.String("format", "", "output format (table, simple)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := &watchCommand{
		configPath: configPath,
		dataPath:   dataPath,
		format:     *format,
	}

	return cmd.Execute()
}

// showUsage displays usage information.
func showUsage() error {
	usage := `Logbook - personal activity tracker

Usage:
  logbook [flags] <command> [command flags] [arguments]

Commands:
  user       User management (add, list, delete)
  session    Session management (add, list, delete)
  stats      Per-user session statistics
  config     Scoring settings (show, set-level, set-weird, set-cap)
  archive    Browse deleted records (users, sessions)
  watch      Watch the data file and re-render on changes
  help       Show this help message

Global Flags:
  -config    Path to configuration file
  -data      Path to the logbook data file (overrides config)
  -version   Show version information

Command Flags:
  -format    Output format (table, json, simple)
  -user      User id or name (session add/list, stats)
  -minutes   Session duration in minutes (session add)
  -mood      Session mood (session add)
  -note      Session note (session add)

Examples:
  # Add a user (empty name gets a generated one)
  logbook user add alex
  logbook user add

  # List users
  logbook user list

  # Delete a user and all their sessions (archived first)
  logbook user delete alex

  # Record a session
  logbook session -user alex -minutes 45 -mood good -note "morning run" add

  # List sessions, optionally for one user
  logbook session list
  logbook session -user alex list

  # Delete a session by id (archived first)
  logbook session delete 1712345678901-3-456

  # Per-user statistics
  logbook stats -user alex

  # Scoring settings
  logbook config show
  logbook config set-level 3
  logbook config set-weird 1
  logbook config set-cap 500

  # Browse archived deletions
  logbook archive users
  logbook archive sessions

  # Watch the data file for external changes
  logbook watch

Version: %s
`

	fmt.Printf(usage, version)
	return nil
}
