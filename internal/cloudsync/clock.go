package cloudsync

import (
	"sync"
	"time"
)

// Clock is the time source for scheduled tasks. Tests substitute a virtual clock.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	Stop() bool
}

// SystemClock uses the real time package.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// Task runs fn once after delay. Reset re-arms it from now, cancelling any pending
// run; a run that has already started is never interrupted.
type Task struct {
	clock Clock
	delay time.Duration
	fn    func()

	mu     sync.Mutex
	timer  Timer
	gen    uint64
	closed bool
}

// NewTask returns an idle task.
func NewTask(clock Clock, delay time.Duration, fn func()) *Task {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Task{clock: clock, delay: delay, fn: fn}
}

// Reset cancels the pending run, if any, and schedules a new one delay from now.
func (t *Task) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.delay, func() { t.fire(gen) })
}

// Cancel drops the pending run. It reports whether one was pending.
func (t *Task) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	return true
}

// Pending reports whether a run is scheduled and has not started.
func (t *Task) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Close cancels the pending run and makes further Resets no-ops.
func (t *Task) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Task) fire(gen uint64) {
	t.mu.Lock()
	// A timer that lost the race with Stop must not run a superseded callback.
	if t.closed || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.fn()
}
