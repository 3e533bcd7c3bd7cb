package main

import (
	"time"
)

// Auto-advance period bounds
const (
	minAdvancePeriod     = 500 * time.Millisecond
	maxAdvancePeriod     = 60 * time.Second
	defaultAdvancePeriod = 3 * time.Second
	advancePeriodStep    = 500 * time.Millisecond
)

// TimerHandle identifies a scheduled callback. Cancel is a no-op if the
// callback already fired or was already cancelled.
type TimerHandle interface {
	Cancel()
}

// Timer schedules single-shot callbacks
type Timer interface {
	ScheduleAfter(d time.Duration, fn func()) TimerHandle
}

// frameTask is a pending FrameTimer callback
type frameTask struct {
	deadline time.Time
	fn       func()
	done     bool
}

func (t *frameTask) Cancel() {
	t.done = true
}

// FrameTimer is a cooperative single-shot timer pumped once per frame from
// the update loop. Everything runs on the one logical thread that calls
// Tick, so no locking is needed.
type FrameTimer struct {
	tasks []*frameTask
	now   time.Time
}

// NewFrameTimer creates a FrameTimer anchored at the given time
func NewFrameTimer(now time.Time) *FrameTimer {
	return &FrameTimer{now: now}
}

// Now returns the time of the most recent Tick
func (ft *FrameTimer) Now() time.Time {
	return ft.now
}

// ScheduleAfter registers fn to run d after the most recent Tick
func (ft *FrameTimer) ScheduleAfter(d time.Duration, fn func()) TimerHandle {
	task := &frameTask{deadline: ft.now.Add(d), fn: fn}
	ft.tasks = append(ft.tasks, task)
	return task
}

// Tick advances the timer to now and runs every due callback. Callbacks may
// schedule new tasks; those are kept for later ticks.
func (ft *FrameTimer) Tick(now time.Time) {
	ft.now = now

	var due []*frameTask
	remaining := ft.tasks[:0]
	for _, task := range ft.tasks {
		switch {
		case task.done:
		case !task.deadline.After(now):
			due = append(due, task)
		default:
			remaining = append(remaining, task)
		}
	}
	ft.tasks = remaining

	for _, task := range due {
		if !task.done {
			task.done = true
			task.fn()
		}
	}
}

// AutoAdvancer drives automatic forward advances at a configurable period.
// At most one pending callback exists at any instant: every path that changes
// the running state or the period cancels the existing handle before
// scheduling a new one.
type AutoAdvancer struct {
	timer   Timer
	period  time.Duration
	running bool
	pending TimerHandle
	advance func()
}

// NewAutoAdvancer creates a stopped AutoAdvancer calling advance on each tick
func NewAutoAdvancer(timer Timer, period time.Duration, advance func()) *AutoAdvancer {
	return &AutoAdvancer{
		timer:   timer,
		period:  clampPeriod(period),
		advance: advance,
	}
}

// Running reports whether auto-advance is active
func (a *AutoAdvancer) Running() bool {
	return a.running
}

// Period returns the current advance period
func (a *AutoAdvancer) Period() time.Duration {
	return a.period
}

// Start begins auto-advancing; it is a no-op when already running
func (a *AutoAdvancer) Start() {
	if a.running {
		return
	}
	a.running = true
	a.schedule()
}

// Stop cancels the pending tick and stops auto-advancing; idempotent
func (a *AutoAdvancer) Stop() {
	a.running = false
	a.cancelPending()
}

// SetPeriod clamps and stores the period. While running, the pending tick is
// cancelled and a full new period starts from now; the change is never
// applied retroactively to an elapsed fraction.
func (a *AutoAdvancer) SetPeriod(p time.Duration) {
	a.period = clampPeriod(p)
	if a.running {
		a.cancelPending()
		a.schedule()
	}
}

func (a *AutoAdvancer) schedule() {
	a.pending = a.timer.ScheduleAfter(a.period, a.tick)
}

func (a *AutoAdvancer) tick() {
	a.pending = nil
	if !a.running {
		return
	}
	a.advance()
	// Reschedule with the possibly updated period
	if a.running && a.pending == nil {
		a.schedule()
	}
}

func (a *AutoAdvancer) cancelPending() {
	if a.pending != nil {
		a.pending.Cancel()
		a.pending = nil
	}
}

func clampPeriod(p time.Duration) time.Duration {
	if p < minAdvancePeriod {
		return minAdvancePeriod
	}
	if p > maxAdvancePeriod {
		return maxAdvancePeriod
	}
	return p
}
