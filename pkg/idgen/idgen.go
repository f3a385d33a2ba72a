// Package idgen generates unique, creation-ordered identifiers for logbook
// records.
//
// An identifier combines the current time in milliseconds, an in-process
// counter, and a random suffix: "1700000000000-1-123". Uniqueness holds
// within a single process. Across restarts the counter resets, so two runs
// could in principle mint the same identifier; the timestamp and random
// suffix make that astronomically unlikely but it is not guaranteed by
// construction.
package idgen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Config contains generator configuration.
//
// Both fields are optional; zero values wire the real clock and a
// time-seeded RNG. Tests inject deterministic replacements.
type Config struct {
	// Now supplies the current time.
	Now func() time.Time

	// Rand supplies the random suffix.
	Rand *rand.Rand
}

// Generator produces unique identifiers.
type Generator struct {
	mu   sync.Mutex
	seq  uint64
	now  func() time.Time
	rand *rand.Rand
}

// New creates a generator from the given configuration.
func New(cfg Config) *Generator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	}

	return &Generator{
		now:  cfg.Now,
		rand: cfg.Rand,
	}
}

// Next returns the next identifier.
//
// Identifiers sort by creation order within a process: the millisecond
// timestamp is the leading component and the counter breaks ties within
// the same millisecond.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seq++
	return fmt.Sprintf("%d-%d-%d", g.now().UnixMilli(), g.seq, 100+g.rand.Intn(900))
}
