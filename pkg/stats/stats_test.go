package stats

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkling/logbook/pkg/logger"
	"github.com/mkling/logbook/pkg/store"
)

// testStore returns a deterministic store: frozen clock, seeded RNG, and
// weirdness 0 so scores depend only on session inputs.
func testStore(t *testing.T) *store.Store {
	t.Helper()
	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	s := store.New(store.Config{
		Now:  func() time.Time { return fixed },
		Rand: rand.New(rand.NewSource(1)),
	}, logger.Noop())
	s.SetWeirdness(0)
	s.SetLevel(1)
	return s
}

func TestForUserNotFound(t *testing.T) {
	agg := New(testStore(t))

	_, err := agg.ForUser("ghost")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestForUserNoSessions(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	assert.Equal(t, "alex", sum.UserName)
	assert.Zero(t, sum.Count)
	assert.Zero(t, sum.TotalMinutes)
	assert.Zero(t, sum.AvgMinutes)
	assert.Zero(t, sum.TotalScore)
	assert.Zero(t, sum.AvgScore)
	assert.Nil(t, sum.Best)
	assert.Nil(t, sum.Worst)
}

func TestForUserSingleSession(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)

	id, err := s.AddSession("alex", "30", "ok", "")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 30, sum.TotalMinutes)
	assert.Equal(t, float64(30), sum.AvgMinutes)

	require.NotNil(t, sum.Best)
	require.NotNil(t, sum.Worst)
	assert.Equal(t, id, sum.Best.ID)
	assert.Equal(t, id, sum.Worst.ID)
}

func TestForUserAggregates(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)

	// Scores rise with minutes under level 1 / weirdness 0, so the last
	// session is best and the first is worst.
	first, err := s.AddSession("alex", "10", "ok", "")
	require.NoError(t, err)
	_, err = s.AddSession("alex", "60", "ok", "")
	require.NoError(t, err)
	last, err := s.AddSession("alex", "200", "ok", "")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 270, sum.TotalMinutes)
	assert.Equal(t, float64(90), sum.AvgMinutes)

	require.NotNil(t, sum.Best)
	require.NotNil(t, sum.Worst)
	assert.Equal(t, last, sum.Best.ID)
	assert.Equal(t, first, sum.Worst.ID)

	var total float64
	for _, sess := range s.Sessions("alex") {
		total += sess.Score
	}
	assert.Equal(t, total, sum.TotalScore)
	assert.Equal(t, math.Abs(total/3), sum.AvgScore)
}

func TestForUserAbsoluteMean(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)

	// Short bad-mood sessions produce negative scores.
	_, err = s.AddSession("alex", "5", "bad", "")
	require.NoError(t, err)
	_, err = s.AddSession("alex", "5", "bad", "")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	require.Negative(t, sum.TotalScore)
	assert.Positive(t, sum.AvgScore)
	assert.Equal(t, math.Abs(sum.TotalScore/2), sum.AvgScore)
}

func TestForUserTieKeepsEarlier(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)

	// Identical inputs under weirdness 0 produce identical scores.
	first, err := s.AddSession("alex", "30", "ok", "")
	require.NoError(t, err)
	_, err = s.AddSession("alex", "30", "ok", "")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	require.NotNil(t, sum.Best)
	require.NotNil(t, sum.Worst)
	assert.Equal(t, first, sum.Best.ID)
	assert.Equal(t, first, sum.Worst.ID)
}

func TestForUserOnlyCountsOwnSessions(t *testing.T) {
	s := testStore(t)
	_, err := s.AddUser("alex")
	require.NoError(t, err)
	_, err = s.AddUser("bree")
	require.NoError(t, err)

	_, err = s.AddSession("alex", "30", "ok", "")
	require.NoError(t, err)
	_, err = s.AddSession("bree", "60", "good", "")
	require.NoError(t, err)

	sum, err := New(s).ForUser("alex")
	require.NoError(t, err)

	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 30, sum.TotalMinutes)
}
