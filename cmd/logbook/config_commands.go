package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Fallback values applied when a setting argument does not parse.
const (
	fallbackLevel     = 2
	fallbackWeirdness = 1
	fallbackCap       = 999
)

// configCommand manages the scoring settings stored in the data document.
type configCommand struct {
	configPath string
	dataPath   string
	format     string
}

// Execute runs the config command.
func (c *configCommand) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: logbook config <show|set-level|set-weird|set-cap> [value]")
	}

	env, err := newAppEnv(c.configPath, c.dataPath)
	if err != nil {
		return err
	}

	switch args[0] {
	case "show":
		return c.show(env)
	case "set-level":
		return c.setLevel(env, valueArg(args))
	case "set-weird":
		return c.setWeirdness(env, valueArg(args))
	case "set-cap":
		return c.setCap(env, valueArg(args))
	default:
		return fmt.Errorf("unknown config subcommand: %s", args[0])
	}
}

// show renders the current settings.
func (c *configCommand) show(env *appEnv) error {
	f, err := env.formatter(c.format)
	if err != nil {
		return err
	}

	return f.FormatSettings(os.Stdout, env.store.Settings())
}

// setLevel applies a new scoring level.
//
// Unparsable input falls back to the stock level instead of failing, and
// the store clamps the value to its valid range.
func (c *configCommand) setLevel(env *appEnv, raw string) error {
	v := parseValue(raw, fallbackLevel)
	applied := env.store.SetLevel(v)

	if err := env.save(); err != nil {
		return err
	}

	fmt.Printf("Level set to %d\n", applied)
	return nil
}

// setWeirdness applies a new weirdness mode.
func (c *configCommand) setWeirdness(env *appEnv, raw string) error {
	v := parseValue(raw, fallbackWeirdness)
	applied := env.store.SetWeirdness(v)

	if err := env.save(); err != nil {
		return err
	}

	fmt.Printf("Weirdness set to %d\n", applied)
	return nil
}

// setCap applies a new minutes cap.
func (c *configCommand) setCap(env *appEnv, raw string) error {
	v := parseValue(raw, fallbackCap)
	applied := env.store.SetCap(v)

	if err := env.save(); err != nil {
		return err
	}

	fmt.Printf("Minutes cap set to %d\n", applied)
	return nil
}

// valueArg returns the value argument of a set subcommand, if present.
func valueArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}

// parseValue parses a setting value, substituting fallback for anything
// that is not an integer.
func parseValue(raw string, fallback int) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
