package scheduler

import (
	"log/slog"
	"time"
)

// LoopOption is a functional option for configuring a Loop.
type LoopOption func(*Loop)

// WithLogger configures structured logging for loop lifecycle and panics.
// Use slog.New(slog.NewTextHandler(io.Discard, nil)) to disable logging.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMinPeriod sets the smallest period a repeating action may use.
// Shorter periods are clamped to it so a zero period cannot spin the loop.
func WithMinPeriod(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.minPeriod = d
		}
	}
}

// WithShutdownTimeout configures how long Stop waits for the loop goroutine to exit.
func WithShutdownTimeout(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.shutdownTimeout = d
		}
	}
}
