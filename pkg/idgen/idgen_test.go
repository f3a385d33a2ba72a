package idgen

import (
	"math/rand"
	"strings"
	"testing"
	"time"
)

func TestNextIsUnique(t *testing.T) {
	gen := New(Config{})

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := gen.Next()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestNextFormat(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	gen := New(Config{
		Now:  func() time.Time { return fixed },
		Rand: rand.New(rand.NewSource(1)),
	})

	id := gen.Next()

	parts := strings.Split(id, "-")
	if len(parts) != 3 {
		t.Fatalf("Next() = %s, want three dash-separated components", id)
	}

	wantPrefix := "1704103200000"
	if parts[0] != wantPrefix {
		t.Errorf("timestamp component = %s, want %s", parts[0], wantPrefix)
	}
	if parts[1] != "1" {
		t.Errorf("counter component = %s, want 1", parts[1])
	}
	if len(parts[2]) != 3 {
		t.Errorf("random component = %s, want three digits", parts[2])
	}
}

func TestNextCounterIncrements(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	gen := New(Config{
		Now:  func() time.Time { return fixed },
		Rand: rand.New(rand.NewSource(1)),
	})

	first := gen.Next()
	second := gen.Next()

	if first == second {
		t.Errorf("ids with frozen clock must still differ: %s", first)
	}
	if strings.Split(second, "-")[1] != "2" {
		t.Errorf("second id counter = %s, want 2", strings.Split(second, "-")[1])
	}
}

func TestNextSortsByCreation(t *testing.T) {
	// Advancing clock: timestamps dominate ordering.
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	gen := New(Config{
		Now: func() time.Time {
			now = now.Add(time.Second)
			return now
		},
	})

	prev := gen.Next()
	for i := 0; i < 100; i++ {
		id := gen.Next()
		if !(prev < id) {
			t.Fatalf("ids not ordered: %s >= %s", prev, id)
		}
		prev = id
	}
}
