package main

import (
	"errors"
	"fmt"
	"testing"
)

// scriptedRand replays a fixed draw sequence
type scriptedRand struct {
	draws []int
	pos   int
}

func (s *scriptedRand) Intn(n int) (int, error) {
	if s.pos >= len(s.draws) {
		return 0, fmt.Errorf("script exhausted after %d draws", s.pos)
	}
	d := s.draws[s.pos]
	s.pos++
	return d % n, nil
}

// failingRand always reports an unavailable source
type failingRand struct{}

func (failingRand) Intn(n int) (int, error) {
	return 0, errors.New("entropy pool closed")
}

func testCatalog(n int) *Catalog {
	images := make([]ImagePath, n)
	for i := range images {
		images[i] = ImagePath{Path: fmt.Sprintf("img%02d.png", i)}
	}
	return NewCatalog(images, SortEntryOrder)
}

func TestSequentialNavigation(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		forward  int
		backward int
		want     int
	}{
		{"forward steps", 5, 3, 0, 3},
		{"forward wraps", 3, 3, 0, 0},
		{"backward wraps from zero", 4, 0, 1, 3},
		{"forward then backward", 5, 2, 1, 1},
		{"full cycle returns to start", 7, 7, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNavigator(testCatalog(tt.count), nil, nil)
			for i := 0; i < tt.forward; i++ {
				if err := nav.AdvanceForward(); err != nil {
					t.Fatalf("AdvanceForward: %v", err)
				}
			}
			for i := 0; i < tt.backward; i++ {
				if err := nav.AdvanceBackward(); err != nil {
					t.Fatalf("AdvanceBackward: %v", err)
				}
			}
			if got := nav.CurrentIndex(); got != tt.want {
				t.Errorf("CurrentIndex = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEmptyCatalogIsInert(t *testing.T) {
	nav := NewNavigator(testCatalog(0), nil, func(ImagePath, string) {
		t.Error("navigation callback fired on empty catalog")
	})

	if err := nav.AdvanceForward(); err != nil {
		t.Errorf("AdvanceForward: %v", err)
	}
	if err := nav.AdvanceBackward(); err != nil {
		t.Errorf("AdvanceBackward: %v", err)
	}
	nav.SetMode(ModeRandom)
	nav.JumpTo(0)

	if nav.Mode() != ModeSequential {
		t.Errorf("Mode = %v, want Sequential", nav.Mode())
	}
	if nav.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0", nav.CurrentIndex())
	}
}

func TestSingleImageRandomIsInert(t *testing.T) {
	nav := NewNavigator(testCatalog(1), &scriptedRand{draws: []int{0, 0, 0}}, nil)
	nav.SetMode(ModeRandom)

	if err := nav.AdvanceForward(); err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if err := nav.AdvanceBackward(); err != nil {
		t.Fatalf("AdvanceBackward: %v", err)
	}
	if nav.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex = %d, want 0", nav.CurrentIndex())
	}
}

func TestRandomNeverRepeatsCurrent(t *testing.T) {
	// The first draw returns the current index and must be resampled
	rng := &scriptedRand{draws: []int{0, 3, 3, 1, 1, 4}}
	nav := NewNavigator(testCatalog(5), rng, nil)
	nav.SetMode(ModeRandom)

	prev := nav.CurrentIndex()
	for i := 0; i < 3; i++ {
		if err := nav.AdvanceForward(); err != nil {
			t.Fatalf("AdvanceForward #%d: %v", i, err)
		}
		if nav.CurrentIndex() == prev {
			t.Errorf("advance #%d stayed on index %d", i, prev)
		}
		prev = nav.CurrentIndex()
	}
}

func TestRandomBackwardReplaysHistory(t *testing.T) {
	rng := &scriptedRand{draws: []int{3, 1, 4}}
	nav := NewNavigator(testCatalog(5), rng, nil)
	nav.SetMode(ModeRandom)

	// Visit 0 -> 3 -> 1 -> 4
	var visited []int
	for i := 0; i < 3; i++ {
		if err := nav.AdvanceForward(); err != nil {
			t.Fatalf("AdvanceForward: %v", err)
		}
		visited = append(visited, nav.CurrentIndex())
	}

	// Walk back over the same picks in reverse
	wantBack := []int{visited[1], visited[0], 0}
	for i, want := range wantBack {
		if err := nav.AdvanceBackward(); err != nil {
			t.Fatalf("AdvanceBackward: %v", err)
		}
		if got := nav.CurrentIndex(); got != want {
			t.Errorf("backward #%d: CurrentIndex = %d, want %d", i, got, want)
		}
	}

	// Backward at the oldest entry stays put
	if err := nav.AdvanceBackward(); err != nil {
		t.Fatalf("AdvanceBackward: %v", err)
	}
	if got := nav.CurrentIndex(); got != 0 {
		t.Errorf("backward past history start: CurrentIndex = %d, want 0", got)
	}
}

func TestRandomForwardRedoAfterBackward(t *testing.T) {
	rng := &scriptedRand{draws: []int{3, 1, 4}}
	nav := NewNavigator(testCatalog(5), rng, nil)
	nav.SetMode(ModeRandom)

	for i := 0; i < 3; i++ {
		if err := nav.AdvanceForward(); err != nil {
			t.Fatalf("AdvanceForward: %v", err)
		}
	}
	// At 4 now; go back twice to 3, then forward must redo 1 and 4
	// without consuming new draws.
	for i := 0; i < 2; i++ {
		if err := nav.AdvanceBackward(); err != nil {
			t.Fatalf("AdvanceBackward: %v", err)
		}
	}
	if nav.CurrentIndex() != 3 {
		t.Fatalf("after two backward: CurrentIndex = %d, want 3", nav.CurrentIndex())
	}

	for _, want := range []int{1, 4} {
		if err := nav.AdvanceForward(); err != nil {
			t.Fatalf("AdvanceForward: %v", err)
		}
		if got := nav.CurrentIndex(); got != want {
			t.Errorf("redo: CurrentIndex = %d, want %d", got, want)
		}
	}
	if rng.pos != 3 {
		t.Errorf("redo consumed new draws: %d draws used, want 3", rng.pos)
	}
}

func TestHistoryCapacity(t *testing.T) {
	// Alternate between far-apart indices so every forward is a fresh draw
	var draws []int
	for i := 0; i < 60; i++ {
		draws = append(draws, (i%2)*50+i)
	}
	nav := NewNavigator(testCatalog(100), &scriptedRand{draws: draws}, nil)
	nav.SetMode(ModeRandom)

	for i := 0; i < 40; i++ {
		if err := nav.AdvanceForward(); err != nil {
			t.Fatalf("AdvanceForward #%d: %v", i, err)
		}
		if nav.HistoryLen() > historyCapacity {
			t.Fatalf("history grew to %d entries, cap is %d", nav.HistoryLen(), historyCapacity)
		}
	}

	// The most recent picks must still replay after the trim
	cur := nav.CurrentIndex()
	if err := nav.AdvanceBackward(); err != nil {
		t.Fatalf("AdvanceBackward: %v", err)
	}
	if nav.CurrentIndex() == cur {
		t.Error("backward after trim did not move")
	}
}

func TestSetModeTransitions(t *testing.T) {
	t.Run("entering random seeds history with current", func(t *testing.T) {
		nav := NewNavigator(testCatalog(5), &scriptedRand{draws: []int{4}}, nil)
		for i := 0; i < 2; i++ {
			if err := nav.AdvanceForward(); err != nil {
				t.Fatalf("AdvanceForward: %v", err)
			}
		}
		nav.SetMode(ModeRandom)
		if nav.CurrentIndex() != 2 {
			t.Errorf("mode switch moved index to %d", nav.CurrentIndex())
		}
		if nav.HistoryLen() != 1 {
			t.Errorf("HistoryLen = %d, want 1", nav.HistoryLen())
		}

		// First backward from the seeded history stays on the seed
		if err := nav.AdvanceBackward(); err != nil {
			t.Fatalf("AdvanceBackward: %v", err)
		}
		if nav.CurrentIndex() != 2 {
			t.Errorf("backward from seeded history moved to %d", nav.CurrentIndex())
		}
	})

	t.Run("leaving random clears history and keeps index", func(t *testing.T) {
		nav := NewNavigator(testCatalog(5), &scriptedRand{draws: []int{3, 1}}, nil)
		nav.SetMode(ModeRandom)
		for i := 0; i < 2; i++ {
			if err := nav.AdvanceForward(); err != nil {
				t.Fatalf("AdvanceForward: %v", err)
			}
		}
		cur := nav.CurrentIndex()

		nav.SetMode(ModeSequential)
		if nav.HistoryLen() != 0 {
			t.Errorf("HistoryLen = %d, want 0", nav.HistoryLen())
		}
		if nav.CurrentIndex() != cur {
			t.Errorf("mode switch moved index from %d to %d", cur, nav.CurrentIndex())
		}
		if nav.Mode() != ModeSequential {
			t.Errorf("Mode = %v, want Sequential", nav.Mode())
		}
	})

	t.Run("mode switch never notifies", func(t *testing.T) {
		calls := 0
		nav := NewNavigator(testCatalog(5), nil, func(ImagePath, string) { calls++ })
		nav.SetMode(ModeRandom)
		nav.SetMode(ModeSequential)
		if calls != 0 {
			t.Errorf("mode switches fired %d notifications", calls)
		}
	})
}

func TestRandUnavailableLeavesStateUntouched(t *testing.T) {
	nav := NewNavigator(testCatalog(5), failingRand{}, nil)
	nav.SetMode(ModeRandom)

	idx := nav.CurrentIndex()
	histLen := nav.HistoryLen()

	err := nav.AdvanceForward()
	if !errors.Is(err, ErrRandUnavailable) {
		t.Fatalf("AdvanceForward error = %v, want ErrRandUnavailable", err)
	}
	if nav.CurrentIndex() != idx {
		t.Errorf("CurrentIndex changed to %d", nav.CurrentIndex())
	}
	if nav.HistoryLen() != histLen {
		t.Errorf("HistoryLen changed to %d", nav.HistoryLen())
	}
}

func TestJumpTo(t *testing.T) {
	t.Run("sequential jump", func(t *testing.T) {
		calls := 0
		nav := NewNavigator(testCatalog(10), nil, func(ImagePath, string) { calls++ })

		nav.JumpTo(7)
		if nav.CurrentIndex() != 7 {
			t.Errorf("CurrentIndex = %d, want 7", nav.CurrentIndex())
		}
		if calls != 1 {
			t.Errorf("notifications = %d, want 1", calls)
		}
		if nav.LastDirection() != NavigationJump {
			t.Errorf("LastDirection = %v, want NavigationJump", nav.LastDirection())
		}
	})

	t.Run("out of range and same index are no-ops", func(t *testing.T) {
		calls := 0
		nav := NewNavigator(testCatalog(3), nil, func(ImagePath, string) { calls++ })
		nav.JumpTo(-1)
		nav.JumpTo(3)
		nav.JumpTo(0)
		if calls != 0 {
			t.Errorf("notifications = %d, want 0", calls)
		}
	})

	t.Run("random jump joins history", func(t *testing.T) {
		nav := NewNavigator(testCatalog(10), &scriptedRand{draws: []int{5}}, nil)
		nav.SetMode(ModeRandom)
		nav.JumpTo(7)

		// Backward must return to the index we jumped from
		if err := nav.AdvanceBackward(); err != nil {
			t.Fatalf("AdvanceBackward: %v", err)
		}
		if nav.CurrentIndex() != 0 {
			t.Errorf("backward after jump: CurrentIndex = %d, want 0", nav.CurrentIndex())
		}
	})
}

func TestNotificationPerIndexChange(t *testing.T) {
	var seen []string
	nav := NewNavigator(testCatalog(3), nil, func(img ImagePath, mode string) {
		seen = append(seen, fmt.Sprintf("%s/%s", img.Path, mode))
	})

	if err := nav.AdvanceForward(); err != nil {
		t.Fatalf("AdvanceForward: %v", err)
	}
	if err := nav.AdvanceBackward(); err != nil {
		t.Fatalf("AdvanceBackward: %v", err)
	}

	want := []string{"img01.png/Sequential", "img00.png/Sequential"}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification #%d = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestModeString(t *testing.T) {
	if got := ModeSequential.String(); got != "Sequential" {
		t.Errorf("ModeSequential.String() = %q", got)
	}
	if got := ModeRandom.String(); got != "Random" {
		t.Errorf("ModeRandom.String() = %q", got)
	}
}
