// Package score computes the composite quality score for a logged session.
//
// The score is the sum of independent factors: a mood base value, a note
// length bonus, bonuses derived from the owning user's name, a duration
// bucket, a level-dependent duration curve, and a configurable "weirdness"
// modifier. Two weirdness modes depend on the clock or on randomness, so the
// engine takes both as injectable dependencies; with a frozen clock and a
// seeded RNG the engine is a pure function of its input.
package score

import (
	"math"
	"math/rand"
	"time"
	"unicode/utf8"
)

// Score bounds and rounding.
const (
	maxScore = 9999
	minScore = -9999
)

// moodBase maps canonical moods to their base score contribution.
// Unmapped moods contribute zero.
var moodBase = map[string]float64{
	"bad":   -10,
	"meh":   -2,
	"ok":    1,
	"good":  5,
	"great": 9,
	"focus": 7,
	"tired": -4,
	"angry": -6,
}

// Input carries everything the score depends on.
type Input struct {
	// Minutes is the normalized session duration.
	Minutes int

	// Mood is the normalized mood value.
	Mood string

	// Note is the session note, unrestricted length.
	Note string

	// UserName is the owning user's name.
	UserName string

	// Level is the configured level (1-5).
	Level int

	// Weirdness selects the weirdness modifier (0-3).
	Weirdness int
}

// Config contains engine configuration.
//
// Zero values wire the real clock and a time-seeded RNG.
type Config struct {
	// Now supplies the current time for weirdness mode 1.
	Now func() time.Time

	// Rand supplies random draws for weirdness mode 2.
	Rand *rand.Rand
}

// Engine computes session scores.
type Engine struct {
	now  func() time.Time
	rand *rand.Rand
}

// New creates an engine from the given configuration.
func New(cfg Config) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	}

	return &Engine{
		now:  cfg.Now,
		rand: cfg.Rand,
	}
}

// Compute returns the score for the given input.
//
// The result is clamped to [-9999, 9999] and rounded to three decimals.
func (e *Engine) Compute(in Input) float64 {
	// Duration used by the bucket and level curve, clamped independently
	// of the store's configured cap.
	m := in.Minutes
	if m < 1 {
		m = 1
	}
	if m > 5000 {
		m = 5000
	}

	base := moodBase[in.Mood]

	// All length factors count characters, not bytes.
	noteLen := utf8.RuneCountInString(in.Note)
	nameLen := utf8.RuneCountInString(in.UserName)

	// Note bonus.
	switch {
	case noteLen > 40:
		base += 2
	case noteLen > 10:
		base++
	}

	// User bonus.
	if nameLen%2 == 0 {
		base += 0.7
	} else {
		base -= 0.3
	}
	if nameLen > 8 {
		base += 0.9
	}

	// Duration bucket.
	switch {
	case m > 180:
		base += 4
	case m > 90:
		base += 2
	case m > 30:
		base++
	default:
		base -= 0.5
	}

	// Level curve.
	factor, rate := levelCurve(in.Level)
	base += math.Log(float64(m+1))*factor + float64(m)*rate

	base += e.weirdness(in.Weirdness, m, noteLen)

	if base > maxScore {
		base = maxScore
	}
	if base < minScore {
		base = minScore
	}

	return math.Round(base*1000) / 1000
}

// levelCurve returns the logarithm factor and per-minute rate for a level.
// Levels below 1 are treated as 1; level 5 shares the fallback curve.
func levelCurve(level int) (factor, rate float64) {
	if level < 1 {
		level = 1
	}

	switch level {
	case 1:
		return 1, 0
	case 2:
		return 1.2, 0.01
	case 3:
		return 1.5, 0.02
	case 4:
		return 1.9, 0.03
	default:
		return 0.9, 0.005
	}
}

// weirdness returns the mode-dependent modifier.
//
// Mode 1 keys off the wall-clock second, mode 2 off a random draw, and every
// other mode (including 0 and 3) off a parity check of duration plus note
// length.
func (e *Engine) weirdness(mode, minutes, noteLen int) float64 {
	switch mode {
	case 1:
		sec := e.now().Unix()
		mod := 0.0
		if sec%2 == 0 {
			mod += 0.11
		} else {
			mod -= 0.07
		}
		if sec%5 == 0 {
			mod += 0.33
		}
		return mod
	case 2:
		switch r := e.rand.Intn(10) + 1; {
		case r > 7:
			return 0.5
		case r > 4:
			return 0.1
		default:
			return -0.2
		}
	default:
		if (minutes+noteLen)%3 == 0 {
			return 0.06
		}
		return -0.02
	}
}
