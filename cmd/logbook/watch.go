package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkling/logbook/pkg/display"
	"github.com/mkling/logbook/pkg/watcher"
)

// watchCommand re-renders the logbook whenever the data file changes on
// disk, for keeping a terminal open next to an editor or a second shell.
type watchCommand struct {
	configPath string
	dataPath   string
	format     string
}

// Execute runs the watch command.
func (c *watchCommand) Execute() error {
	env, err := newAppEnv(c.configPath, c.dataPath)
	if err != nil {
		return err
	}

	f, err := env.formatter(c.format)
	if err != nil {
		return err
	}

	w, err := watcher.New(watcher.Config{
		DebounceInterval: env.cfg.Watch.Debounce,
	}, env.log)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			env.log.Error("failed to close watcher", "error", closeErr)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Watch(ctx, env.dataPath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", env.dataPath, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	fmt.Printf("Watching %s - press Ctrl+C to stop\n", env.dataPath)
	if err := c.render(env, f); err != nil {
		return err
	}

	for {
		select {
		case <-sigChan:
			fmt.Println("\nStopping watch")
			return nil

		case watchErr, ok := <-w.Errors():
			if !ok {
				return nil
			}
			env.log.Error("watch error", "error", watchErr)

		case event, ok := <-w.Events():
			if !ok {
				return nil
			}

			env.log.Debug("data file changed", "at", event.Timestamp)
			env.store.Load(env.dataPath)

			fmt.Print("\033[2J\033[H")
			fmt.Printf("Watching %s - press Ctrl+C to stop\n", env.dataPath)
			if err := c.render(env, f); err != nil {
				return err
			}
		}
	}
}

// render prints the current users and sessions.
func (c *watchCommand) render(env *appEnv, f display.Formatter) error {
	if err := f.FormatUsers(os.Stdout, env.store.Users()); err != nil {
		return err
	}
	return f.FormatSessions(os.Stdout, env.store.Sessions(""))
}
