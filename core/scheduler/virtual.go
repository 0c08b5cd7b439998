package scheduler

import (
	"sync"
	"time"
)

// Virtual is a Scheduler driven by an explicit clock.
// Actions only run inside Advance, AdvanceTo, Flush and RunAll, on the
// caller's goroutine. Panics from actions propagate to the caller.
type Virtual struct {
	mu  sync.Mutex
	now time.Time
	q   *timerQueue
}

// NewVirtual creates a virtual scheduler whose clock starts at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{
		now: start,
		q:   newTimerQueue(),
	}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// ScheduleOnce queues action to run once the clock reaches now+delay.
func (v *Virtual) ScheduleOnce(delay time.Duration, action func()) Token {
	if action == nil {
		return 0
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.q.add(v.now.Add(clampDelay(delay)), 0, action)
}

// ScheduleRepeating queues action to run every period of virtual time.
func (v *Virtual) ScheduleRepeating(period time.Duration, action func()) Token {
	if action == nil {
		return 0
	}
	period = clampPeriod(period, time.Nanosecond)
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.q.add(v.now.Add(period), period, action)
}

// Cancel revokes a pending action.
func (v *Virtual) Cancel(tok Token) {
	if tok == 0 {
		return
	}
	v.mu.Lock()
	v.q.cancel(tok)
	v.mu.Unlock()
}

// Pending returns the number of queued actions.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.q.len()
}

// Advance moves the clock forward by d, running every action that becomes due.
// It returns the number of actions executed.
func (v *Virtual) Advance(d time.Duration) int {
	return v.AdvanceTo(v.Now().Add(clampDelay(d)))
}

// AdvanceTo moves the clock to t, running due actions in order. The clock is
// set to each action's due time before it runs, so actions scheduled from
// inside an action are measured from that instant. The clock never moves
// backwards.
func (v *Virtual) AdvanceTo(t time.Time) int {
	executed := 0
	for {
		v.mu.Lock()
		action, due, ok := v.q.popDue(t)
		if !ok {
			if t.After(v.now) {
				v.now = t
			}
			v.mu.Unlock()
			return executed
		}
		if due.After(v.now) {
			v.now = due
		}
		v.mu.Unlock()

		action()
		executed++
	}
}

// Flush runs every action that is already due without moving the clock.
func (v *Virtual) Flush() int {
	return v.AdvanceTo(v.Now())
}

// RunAll advances the clock action by action until nothing is pending or
// limit actions have run. A limit <= 0 means no limit, which never returns
// while a repeating action is scheduled.
func (v *Virtual) RunAll(limit int) int {
	executed := 0
	for limit <= 0 || executed < limit {
		v.mu.Lock()
		due, ok := v.q.next()
		if !ok {
			v.mu.Unlock()
			break
		}
		action, _, _ := v.q.popDue(due)
		if due.After(v.now) {
			v.now = due
		}
		v.mu.Unlock()

		action()
		executed++
	}
	return executed
}
