package scheduler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/observable/core/logger"
)

// Loop is a real-time Scheduler that executes every action on one goroutine.
type Loop struct {
	mu   sync.Mutex
	q    *timerQueue
	wake chan struct{}

	minPeriod       time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	// State management
	cancel  context.CancelFunc
	done    chan struct{}
	running atomic.Bool

	// Observability metrics
	executed atomic.Int64
	panics   atomic.Int64
}

// LoopStats provides observability metrics for monitoring and debugging.
type LoopStats struct {
	Executed  int64 // Actions that ran to completion
	Panics    int64 // Actions that panicked
	Pending   int   // Actions waiting to run
	IsRunning bool  // Whether the loop goroutine is running
}

// NewLoop creates a loop. It does not execute anything until Start is called,
// but actions may be scheduled before that.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		q:               newTimerQueue(),
		wake:            make(chan struct{}, 1),
		minPeriod:       time.Millisecond,
		shutdownTimeout: 5 * time.Second,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// NewLoopFromConfig creates a Loop from configuration.
// Additional options can override config values.
func NewLoopFromConfig(cfg Config, opts ...LoopOption) *Loop {
	allOpts := append([]LoopOption{
		WithMinPeriod(cfg.MinPeriod),
		WithShutdownTimeout(cfg.ShutdownTimeout),
	}, opts...)

	return NewLoop(allOpts...)
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// ScheduleOnce runs action on the loop goroutine after delay.
func (l *Loop) ScheduleOnce(delay time.Duration, action func()) Token {
	if action == nil {
		return 0
	}
	l.mu.Lock()
	tok := l.q.add(time.Now().Add(clampDelay(delay)), 0, action)
	l.mu.Unlock()
	l.signal()
	return tok
}

// ScheduleRepeating runs action on the loop goroutine every period.
func (l *Loop) ScheduleRepeating(period time.Duration, action func()) Token {
	if action == nil {
		return 0
	}
	period = clampPeriod(period, l.minPeriod)
	l.mu.Lock()
	tok := l.q.add(time.Now().Add(period), period, action)
	l.mu.Unlock()
	l.signal()
	return tok
}

// Post runs action on the loop goroutine as soon as possible, after actions
// that are already due.
func (l *Loop) Post(action func()) Token {
	return l.ScheduleOnce(0, action)
}

// Cancel revokes a pending action.
func (l *Loop) Cancel(tok Token) {
	if tok == 0 {
		return
	}
	l.mu.Lock()
	l.q.cancel(tok)
	l.mu.Unlock()
}

// Start runs the loop. This is a blocking operation that runs until the
// context is cancelled or Stop is called. Use Run() for errgroup pattern or
// call this in a goroutine.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.cancel != nil {
		l.mu.Unlock()
		return ErrLoopAlreadyStarted
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done
	l.mu.Unlock()

	l.running.Store(true)
	defer func() {
		l.running.Store(false)
		l.mu.Lock()
		if l.done == done {
			l.cancel = nil
		}
		l.mu.Unlock()
		cancel()
		close(done)
	}()

	l.logger.InfoContext(ctx, "scheduler loop started",
		logger.Count("pending", l.pending()))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		l.runDue(ctx)

		var fire <-chan time.Time
		if wait, ok := l.untilNext(); ok {
			timer.Reset(wait)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			l.logger.InfoContext(context.Background(), "scheduler loop stopping",
				logger.Count("pending", l.pending()))
			return ctx.Err()
		case <-l.wake:
		case <-fire:
		}
		timer.Stop()
	}
}

// Stop gracefully shuts down the loop with a timeout.
// Actions still pending stay queued and run if the loop is started again.
func (l *Loop) Stop() error {
	l.mu.Lock()
	if l.cancel == nil {
		l.mu.Unlock()
		return ErrLoopNotStarted
	}
	cancel, done := l.cancel, l.done
	l.cancel = nil
	l.mu.Unlock()

	cancel()

	select {
	case <-done:
		l.logger.Info("scheduler loop stopped cleanly")
		return nil
	case <-time.After(l.shutdownTimeout):
		l.logger.Warn("scheduler loop shutdown timeout exceeded",
			slog.Duration("timeout", l.shutdownTimeout))
		return fmt.Errorf("%w after %s", ErrShutdownTimeout, l.shutdownTimeout)
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// Returns a function that starts the loop, monitors context cancellation,
// and performs graceful shutdown when the context is cancelled.
func (l *Loop) Run(ctx context.Context) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- l.Start(ctx)
		}()

		select {
		case <-ctx.Done():
			_ = l.Stop()
			<-errCh
			return nil
		case err := <-errCh:
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

// Stats returns current loop statistics.
func (l *Loop) Stats() LoopStats {
	return LoopStats{
		Executed:  l.executed.Load(),
		Panics:    l.panics.Load(),
		Pending:   l.pending(),
		IsRunning: l.running.Load(),
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func (l *Loop) pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.len()
}

func (l *Loop) untilNext() (time.Duration, bool) {
	l.mu.Lock()
	due, ok := l.q.next()
	l.mu.Unlock()
	if !ok {
		return 0, false
	}
	return max(time.Until(due), 0), true
}

func (l *Loop) runDue(ctx context.Context) {
	for ctx.Err() == nil {
		l.mu.Lock()
		action, _, ok := l.q.popDue(time.Now())
		l.mu.Unlock()
		if !ok {
			return
		}
		l.execute(action)
	}
}

func (l *Loop) execute(action func()) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			l.logger.Error("scheduled action panicked",
				logger.Component("scheduler"),
				logger.Panic(r))
		}
	}()

	action()
	l.executed.Add(1)
}
