package main

import (
	"time"
)

const defaultDebounceWindow = 300 * time.Millisecond

// InputChannel names a logical navigation input
type InputChannel int

const (
	ChannelForward InputChannel = iota
	ChannelBackward
)

// InputDebouncer collapses duplicate rapid-fire navigation commands (an
// auto-repeating key, a bouncing remote button) into a single logical
// advance, and serializes navigation so only one request is in flight at a
// time. The in-flight flag is the only mutual-exclusion primitive in the
// program; it serializes logically concurrent user actions, not threads.
type InputDebouncer struct {
	timer        Timer
	window       time.Duration
	lastAccepted map[InputChannel]time.Time
	inFlight     bool
	clearHandle  TimerHandle

	forward  func()
	backward func()
}

// NewInputDebouncer creates a debouncer dispatching to the given navigation
// calls. A window <= 0 falls back to the default 300ms.
func NewInputDebouncer(timer Timer, window time.Duration, forward, backward func()) *InputDebouncer {
	if window <= 0 {
		window = defaultDebounceWindow
	}
	return &InputDebouncer{
		timer:        timer,
		window:       window,
		lastAccepted: make(map[InputChannel]time.Time),
		forward:      forward,
		backward:     backward,
	}
}

// Window returns the debounce window
func (d *InputDebouncer) Window() time.Duration {
	return d.window
}

// InFlight reports whether a navigation request is currently in flight
func (d *InputDebouncer) InFlight() bool {
	return d.inFlight
}

// Handle accepts or rejects a navigation command on the given channel at the
// given time. Accepted commands invoke the channel's navigation call and hold
// the in-flight flag for one debounce window, regardless of whether the call
// changed any state.
func (d *InputDebouncer) Handle(channel InputChannel, now time.Time) bool {
	if d.inFlight {
		return false
	}
	if last, ok := d.lastAccepted[channel]; ok && now.Sub(last) < d.window {
		return false
	}

	d.inFlight = true
	d.lastAccepted[channel] = now

	switch channel {
	case ChannelForward:
		d.forward()
	case ChannelBackward:
		d.backward()
	}

	d.clearHandle = d.timer.ScheduleAfter(d.window, func() {
		d.inFlight = false
		d.clearHandle = nil
	})
	return true
}

// Reset drops the in-flight flag and all per-channel timestamps, cancelling
// the pending clear task.
func (d *InputDebouncer) Reset() {
	if d.clearHandle != nil {
		d.clearHandle.Cancel()
		d.clearHandle = nil
	}
	d.inFlight = false
	d.lastAccepted = make(map[InputChannel]time.Time)
}
