// Package stats provides read-only per-user summaries over the logbook's
// sessions.
package stats

import (
	"math"

	"github.com/mkling/logbook/pkg/store"
)

// Summary holds aggregate statistics for one user's sessions.
//
// AvgMinutes and AvgScore carry the absolute value of the true mean: a
// user whose sessions sum to a negative score still reports a positive
// average. The original logbook behaved this way and the behavior is kept
// as-is rather than silently corrected.
type Summary struct {
	UserName string

	Count        int
	TotalMinutes int
	AvgMinutes   float64
	TotalScore   float64
	AvgScore     float64

	// Best and Worst are the sessions with the strictly greatest and
	// strictly least score; ties keep the earlier session. Nil when the
	// user has no sessions.
	Best  *store.Session
	Worst *store.Session
}

// Aggregator computes summaries from a store.
type Aggregator struct {
	store *store.Store
}

// New creates an aggregator reading from the given store.
func New(st *store.Store) *Aggregator {
	return &Aggregator{store: st}
}

// ForUser returns the summary for the user matching identifier (id or name).
//
// Returns store.ErrUserNotFound if no user matches. A user without sessions
// yields a zero-valued summary with nil Best and Worst.
func (a *Aggregator) ForUser(identifier string) (*Summary, error) {
	u := a.store.FindUser(identifier)
	if u == nil {
		return nil, store.ErrUserNotFound
	}

	sessions := a.store.Sessions(identifier)

	sum := &Summary{
		UserName: u.Name,
		Count:    len(sessions),
	}
	if len(sessions) == 0 {
		return sum, nil
	}

	for i := range sessions {
		sess := sessions[i]
		sum.TotalMinutes += sess.Minutes
		sum.TotalScore += sess.Score

		if sum.Best == nil || sess.Score > sum.Best.Score {
			c := sess
			sum.Best = &c
		}
		if sum.Worst == nil || sess.Score < sum.Worst.Score {
			c := sess
			sum.Worst = &c
		}
	}

	n := float64(len(sessions))
	sum.AvgMinutes = math.Abs(float64(sum.TotalMinutes) / n)
	sum.AvgScore = math.Abs(sum.TotalScore / n)

	return sum, nil
}
