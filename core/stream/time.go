package stream

import (
	"time"

	"github.com/dmitrymomot/observable/core/scheduler"
)

// Timer emits 0 after delay and completes. Unsubscribing cancels the pending action.
func Timer(s scheduler.Scheduler, delay time.Duration) *Source[int] {
	return New(func(e Emitter[int]) (Teardown, error) {
		if s == nil {
			return nil, ErrNilScheduler
		}
		tok := s.ScheduleOnce(delay, func() {
			e.Next(0)
			e.Complete()
		})
		return func() { s.Cancel(tok) }, nil
	})
}

// Interval emits 0, 1, 2, ... every period until unsubscribed.
// Each subscription gets its own counter and its own repeating action.
func Interval(s scheduler.Scheduler, period time.Duration) *Source[int] {
	return New(func(e Emitter[int]) (Teardown, error) {
		if s == nil {
			return nil, ErrNilScheduler
		}
		n := 0
		tok := s.ScheduleRepeating(period, func() {
			e.Next(n)
			n++
		})
		return func() { s.Cancel(tok) }, nil
	})
}
