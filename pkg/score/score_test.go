package score

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"time"
)

// fixedEngine returns an engine with a frozen clock and seeded RNG.
func fixedEngine(sec int64, seed int64) *Engine {
	return New(Config{
		Now:  func() time.Time { return time.Unix(sec, 0) },
		Rand: rand.New(rand.NewSource(seed)),
	})
}

func TestComputeBaseline(t *testing.T) {
	// 30 minutes, "ok" mood, empty note, odd-length name, level 1.
	// Non-weirdness components: 1 (mood) - 0.3 (user) - 0.5 (duration) + log(31).
	// Weirdness mode 0: (30+0)%3 == 0 -> +0.06.
	e := fixedEngine(0, 1)

	got := e.Compute(Input{
		Minutes:   30,
		Mood:      "ok",
		Note:      "",
		UserName:  "bob",
		Level:     1,
		Weirdness: 0,
	})

	want := math.Round((math.Log(31)+0.2+0.06)*1000) / 1000
	if got != want {
		t.Errorf("Compute() = %v, want %v", got, want)
	}
}

func TestComputeMoodBases(t *testing.T) {
	// Isolate the mood contribution by diffing against the "unknown" base.
	// Weirdness 0 and identical other inputs cancel everything else.
	e := fixedEngine(0, 1)

	in := Input{Minutes: 30, UserName: "bob", Level: 1, Weirdness: 0}

	moods := map[string]float64{
		"bad":   -10,
		"meh":   -2,
		"ok":    1,
		"good":  5,
		"great": 9,
		"focus": 7,
		"tired": -4,
		"angry": -6,
	}

	in.Mood = "unmapped"
	zero := e.Compute(in)

	for mood, want := range moods {
		in.Mood = mood
		got := e.Compute(in)
		if diff := math.Round((got-zero)*1000) / 1000; diff != want {
			t.Errorf("mood %q contribution = %v, want %v", mood, diff, want)
		}
	}
}

func TestComputeNoteBonus(t *testing.T) {
	e := fixedEngine(0, 1)

	in := Input{Minutes: 31, Mood: "ok", UserName: "bob", Level: 1, Weirdness: 3}

	// Note lengths chosen so that (minutes+len)%3 stays constant (all
	// multiples of 3), keeping the weirdness term fixed across cases.
	short := e.Compute(withNote(in, strings.Repeat("x", 9)))
	medium := e.Compute(withNote(in, strings.Repeat("x", 12)))
	long := e.Compute(withNote(in, strings.Repeat("x", 42)))

	if diff := math.Round((medium-short)*1000) / 1000; diff != 1 {
		t.Errorf("medium note bonus = %v, want 1", diff)
	}
	if diff := math.Round((long-short)*1000) / 1000; diff != 2 {
		t.Errorf("long note bonus = %v, want 2", diff)
	}

	// Nine multibyte characters stay below the bonus threshold even
	// though they span eighteen bytes.
	multibyte := e.Compute(withNote(in, strings.Repeat("ö", 9)))
	if multibyte != short {
		t.Errorf("multibyte note score = %v, want %v", multibyte, short)
	}
}

func withNote(in Input, note string) Input {
	in.Note = note
	return in
}

func TestComputeUserBonus(t *testing.T) {
	e := fixedEngine(0, 1)

	in := Input{Minutes: 30, Mood: "ok", Level: 1, Weirdness: 0}

	in.UserName = "anna" // even length
	even := e.Compute(in)

	in.UserName = "bob" // odd length
	odd := e.Compute(in)

	in.UserName = "maximilian" // even and > 8 characters
	longName := e.Compute(in)

	in.UserName = "rené" // four characters, five bytes
	multibyte := e.Compute(in)

	if diff := math.Round((even-odd)*1000) / 1000; diff != 1.0 {
		t.Errorf("even-odd name diff = %v, want 1.0", diff)
	}
	if multibyte != even {
		t.Errorf("multibyte name score = %v, want %v", multibyte, even)
	}
	if diff := math.Round((longName-even)*1000) / 1000; diff != 0.9 {
		t.Errorf("long name bonus = %v, want 0.9", diff)
	}
}

func TestComputeDurationBuckets(t *testing.T) {
	e := fixedEngine(0, 1)

	// Level 1 with no rate: score differences between buckets are the
	// bucket delta plus the log curve delta, which we compute exactly.
	in := Input{Mood: "ok", UserName: "bob", Level: 1, Weirdness: 3}

	cases := []struct {
		minutes int
		bucket  float64
	}{
		{30, -0.5},
		{31, 1},
		{91, 2},
		{181, 4},
	}

	for _, tt := range cases {
		in.Minutes = tt.minutes
		got := e.Compute(in)

		weird := -0.02
		if tt.minutes%3 == 0 {
			weird = 0.06
		}
		want := math.Round((1-0.3+tt.bucket+math.Log(float64(tt.minutes+1))+weird)*1000) / 1000
		if got != want {
			t.Errorf("Compute(minutes=%d) = %v, want %v", tt.minutes, got, want)
		}
	}
}

func TestComputeLevelCurves(t *testing.T) {
	tests := []struct {
		level  int
		factor float64
		rate   float64
	}{
		{1, 1, 0},
		{2, 1.2, 0.01},
		{3, 1.5, 0.02},
		{4, 1.9, 0.03},
		{5, 0.9, 0.005},
		{0, 1, 0},  // below 1 treated as level 1
		{-3, 1, 0}, // below 1 treated as level 1
	}

	for _, tt := range tests {
		factor, rate := levelCurve(tt.level)
		if factor != tt.factor || rate != tt.rate {
			t.Errorf("levelCurve(%d) = (%v, %v), want (%v, %v)",
				tt.level, factor, rate, tt.factor, tt.rate)
		}
	}
}

func TestComputeWeirdnessClock(t *testing.T) {
	in := Input{Minutes: 31, Mood: "ok", UserName: "bob", Level: 1, Weirdness: 1}

	base := math.Log(32) + 1 - 0.3 + 1 // mood + user + bucket + curve

	tests := []struct {
		sec  int64
		want float64
	}{
		{12, 0.11},         // even, not divisible by 5
		{11, -0.07},        // odd, not divisible by 5
		{10, 0.11 + 0.33},  // even and divisible by 5
		{15, -0.07 + 0.33}, // odd and divisible by 5
	}

	for _, tt := range tests {
		e := fixedEngine(tt.sec, 1)
		got := e.Compute(in)
		want := math.Round((base+tt.want)*1000) / 1000
		if got != want {
			t.Errorf("Compute(sec=%d) = %v, want %v", tt.sec, got, want)
		}
	}
}

func TestComputeWeirdnessRandom(t *testing.T) {
	in := Input{Minutes: 31, Mood: "ok", UserName: "bob", Level: 1, Weirdness: 2}

	base := math.Log(32) + 1 - 0.3 + 1

	for seed := int64(0); seed < 20; seed++ {
		// Replay the engine's draw with an identically seeded RNG.
		var want float64
		switch r := rand.New(rand.NewSource(seed)).Intn(10) + 1; {
		case r > 7:
			want = 0.5
		case r > 4:
			want = 0.1
		default:
			want = -0.2
		}
		want = math.Round((base+want)*1000) / 1000

		e := fixedEngine(0, seed)
		if got := e.Compute(in); got != want {
			t.Errorf("Compute(seed=%d) = %v, want %v", seed, got, want)
		}
	}
}

func TestComputeClamped(t *testing.T) {
	e := fixedEngine(10, 1)

	pathological := []Input{
		{Minutes: math.MaxInt32, Mood: "great", Note: strings.Repeat("n", 100000), UserName: "maximilian", Level: 4, Weirdness: 1},
		{Minutes: math.MinInt32, Mood: "bad", UserName: "x", Level: 1, Weirdness: 0},
		{Minutes: 5000, Mood: "great", Note: strings.Repeat("n", 50), UserName: "ferdinand", Level: 4, Weirdness: 2},
	}

	for i, in := range pathological {
		got := e.Compute(in)
		if got > 9999 || got < -9999 {
			t.Errorf("case %d: Compute() = %v, out of [-9999, 9999]", i, got)
		}
	}
}

func TestComputeRounding(t *testing.T) {
	e := fixedEngine(0, 1)

	got := e.Compute(Input{Minutes: 30, Mood: "ok", UserName: "bob", Level: 2, Weirdness: 0})

	if rounded := math.Round(got*1000) / 1000; got != rounded {
		t.Errorf("Compute() = %v, not rounded to three decimals", got)
	}
}
