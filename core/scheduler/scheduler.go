package scheduler

import "time"

// Token identifies a scheduled action. The zero Token is never issued.
type Token uint64

// Scheduler runs actions after a delay or periodically.
type Scheduler interface {
	// ScheduleOnce runs action once after delay. Negative delays count as zero.
	ScheduleOnce(delay time.Duration, action func()) Token

	// ScheduleRepeating runs action every period until cancelled.
	// The first run happens one period from now.
	ScheduleRepeating(period time.Duration, action func()) Token

	// Cancel revokes a pending action. It is safe to call more than once.
	Cancel(tok Token)

	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

var (
	_ Scheduler = (*Loop)(nil)
	_ Scheduler = (*Virtual)(nil)
)

func clampPeriod(period, minPeriod time.Duration) time.Duration {
	if period < minPeriod {
		return minPeriod
	}
	return period
}

func clampDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	return delay
}
