package main

import (
	"errors"
	"math/rand"
)

// historyCapacity bounds the random-replay history; oldest entries are
// dropped first when the cap is exceeded.
const historyCapacity = 15

// Mode selects how the Navigator picks the next image
type Mode int

const (
	ModeSequential Mode = iota
	ModeRandom
)

func (m Mode) String() string {
	if m == ModeRandom {
		return "Random"
	}
	return "Sequential"
}

// ErrRandUnavailable is returned when the random source cannot produce a
// draw; the Navigator leaves its state untouched in that case.
var ErrRandUnavailable = errors.New("random source unavailable")

// RandSource produces uniform draws in [0, n)
type RandSource interface {
	Intn(n int) (int, error)
}

// mathRandSource backs RandSource with math/rand
type mathRandSource struct{}

func (mathRandSource) Intn(n int) (int, error) {
	return rand.Intn(n), nil
}

// NavigationState holds the playback position and the random-replay history.
// historyPos is -1 when the position is at the tail / not tracked.
type NavigationState struct {
	Mode       Mode
	Current    int
	History    []int
	HistoryPos int
}

// NavigateFunc is invoked exactly once per successful index change with the
// new image and the mode label. It is never called for suppressed or no-op
// transitions.
type NavigateFunc func(img ImagePath, modeLabel string)

// Navigator owns the playback position, mode and replay history. All
// operations are no-ops while the catalog is empty, and forward/backward are
// no-ops for a single-image catalog.
type Navigator struct {
	catalog    *Catalog
	rng        RandSource
	state      NavigationState
	lastDir    NavigationDirection
	onNavigate NavigateFunc
}

// NewNavigator creates a Navigator over the given catalog starting at index 0
// in Sequential mode.
func NewNavigator(catalog *Catalog, rng RandSource, onNavigate NavigateFunc) *Navigator {
	if rng == nil {
		rng = mathRandSource{}
	}
	return &Navigator{
		catalog:    catalog,
		rng:        rng,
		state:      NavigationState{Mode: ModeSequential, HistoryPos: -1},
		lastDir:    NavigationForward,
		onNavigate: onNavigate,
	}
}

// Mode returns the current navigation mode
func (n *Navigator) Mode() Mode {
	return n.state.Mode
}

// CurrentIndex returns the current catalog index
func (n *Navigator) CurrentIndex() int {
	return n.state.Current
}

// CurrentImage returns the ImagePath at the current index
func (n *Navigator) CurrentImage() (ImagePath, bool) {
	return n.catalog.At(n.state.Current)
}

// LastDirection reports the direction of the most recent movement, for
// preload steering.
func (n *Navigator) LastDirection() NavigationDirection {
	return n.lastDir
}

// AdvanceForward moves one step forward: the next catalog entry in
// Sequential mode, a replayed or freshly drawn index in Random mode.
func (n *Navigator) AdvanceForward() error {
	count := n.catalog.Len()
	if count == 0 {
		return nil
	}

	prev := n.state.Current

	switch n.state.Mode {
	case ModeSequential:
		n.state.Current = (n.state.Current + 1) % count

	case ModeRandom:
		if count == 1 {
			return nil
		}
		if n.state.HistoryPos >= 0 && n.state.HistoryPos < len(n.state.History)-1 {
			// Redo a previously visited pick; no new draw
			n.state.HistoryPos++
			n.state.Current = n.state.History[n.state.HistoryPos]
		} else {
			draw, err := n.drawNewIndex(count)
			if err != nil {
				return err
			}
			if last, ok := n.historyTail(); !ok || last != n.state.Current {
				n.state.History = append(n.state.History, n.state.Current)
			}
			n.state.History = append(n.state.History, draw)
			n.trimHistory()
			n.state.HistoryPos = len(n.state.History) - 1
			n.state.Current = draw
		}
	}

	n.lastDir = NavigationForward
	if n.state.Current != prev {
		n.notify()
	}
	return nil
}

// AdvanceBackward moves one step back: the previous catalog entry in
// Sequential mode, the previously visited index in Random mode.
func (n *Navigator) AdvanceBackward() error {
	count := n.catalog.Len()
	if count == 0 {
		return nil
	}

	prev := n.state.Current

	switch n.state.Mode {
	case ModeSequential:
		n.state.Current = (n.state.Current - 1 + count) % count
		// The history array is kept so re-entering Random mode can still
		// find the current index inside it; only the position is dropped.
		n.state.HistoryPos = -1

	case ModeRandom:
		if count == 1 {
			return nil
		}
		atTail := n.state.HistoryPos == -1 || n.state.HistoryPos == len(n.state.History)-1
		if atTail {
			if last, ok := n.historyTail(); !ok || last != n.state.Current {
				n.state.History = append(n.state.History, n.state.Current)
				n.trimHistory()
			}
			n.state.HistoryPos = len(n.state.History) - 1
		}
		if len(n.state.History) > 1 {
			if n.state.HistoryPos > 0 {
				n.state.HistoryPos--
			}
			n.state.Current = n.state.History[n.state.HistoryPos]
		} else {
			n.state.Current = n.state.History[0]
			n.state.HistoryPos = 0
		}
	}

	n.lastDir = NavigationBackward
	if n.state.Current != prev {
		n.notify()
	}
	return nil
}

// SetMode switches between Sequential and Random. Switching modes never
// itself changes the displayed image, so no navigation notification fires.
func (n *Navigator) SetMode(target Mode) {
	if n.catalog.Len() == 0 {
		return
	}

	if target == ModeRandom {
		if n.state.Mode == ModeSequential {
			n.state.History = []int{n.state.Current}
			n.state.HistoryPos = 0
		} else if pos := n.historyIndexOf(n.state.Current); pos >= 0 {
			n.state.HistoryPos = pos
		} else {
			n.state.History = append(n.state.History, n.state.Current)
			n.trimHistory()
			n.state.HistoryPos = len(n.state.History) - 1
		}
	} else {
		n.catalog.RebuildSorted()
		n.state.History = nil
		n.state.HistoryPos = -1
	}
	n.state.Mode = target
}

// JumpTo moves directly to the given catalog index
func (n *Navigator) JumpTo(idx int) {
	count := n.catalog.Len()
	if count == 0 || idx < 0 || idx >= count || idx == n.state.Current {
		return
	}
	n.state.Current = idx
	if n.state.Mode == ModeRandom {
		if last, ok := n.historyTail(); !ok || last != idx {
			n.state.History = append(n.state.History, idx)
			n.trimHistory()
		}
		n.state.HistoryPos = len(n.state.History) - 1
	}
	n.lastDir = NavigationJump
	n.notify()
}

// HistoryLen returns the number of entries in the replay history
func (n *Navigator) HistoryLen() int {
	return len(n.state.History)
}

func (n *Navigator) drawNewIndex(count int) (int, error) {
	for {
		draw, err := n.rng.Intn(count)
		if err != nil {
			return 0, ErrRandUnavailable
		}
		// Resample until the draw differs from the current index; count > 1
		// is guaranteed by the caller so this terminates.
		if draw != n.state.Current {
			return draw, nil
		}
	}
}

func (n *Navigator) historyTail() (int, bool) {
	if len(n.state.History) == 0 {
		return 0, false
	}
	return n.state.History[len(n.state.History)-1], true
}

func (n *Navigator) historyIndexOf(idx int) int {
	for i, h := range n.state.History {
		if h == idx {
			return i
		}
	}
	return -1
}

func (n *Navigator) trimHistory() {
	if len(n.state.History) > historyCapacity {
		drop := len(n.state.History) - historyCapacity
		n.state.History = append([]int(nil), n.state.History[drop:]...)
	}
}

func (n *Navigator) notify() {
	if n.onNavigate == nil {
		return
	}
	if img, ok := n.catalog.At(n.state.Current); ok {
		n.onNavigate(img, n.state.Mode.String())
	}
}
