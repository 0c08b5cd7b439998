package async

import (
	"context"
	"sync"
	"time"
)

// Future is the result of a computation that settles exactly once, either
// with a value or with an error. Every Await observes the same outcome.
type Future[T any] struct {
	mu        sync.Mutex
	done      chan struct{}
	value     T
	err       error
	settled   bool
	callbacks []func()
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Await blocks until the future settles and returns its outcome.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits for the future to settle for at most timeout.
// Returns ErrTimeout if the future is still pending afterwards.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports whether the future has settled, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// OnComplete registers fn to run with the outcome once the future settles.
// When post is non-nil the call is handed to post instead of running on the
// settling goroutine, e.g. a scheduler's zero-delay action, so continuations
// always run asynchronously, even when registered on a settled future.
func (f *Future[T]) OnComplete(post func(func()), fn func(T, error)) {
	run := func() { fn(f.value, f.err) }
	if post != nil {
		call := run
		run = func() { post(call) }
	}

	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, run)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()

	run()
}

// settle records the outcome. Only the first call has an effect.
func (f *Future[T]) settle(value T, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value, f.err = value, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, cb := range callbacks {
		cb()
	}
	return true
}

// Promise is the write side of a Future. It resolves at most once; later
// Resolve or Reject calls are ignored.
type Promise[T any] struct {
	future *Future[T]
}

// NewPromise returns a pending promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{future: newFuture[T]()}
}

// Resolve settles the promise with v. Returns false if it was already settled.
func (p *Promise[T]) Resolve(v T) bool {
	return p.future.settle(v, nil)
}

// Reject settles the promise with err. Returns false if it was already settled.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.future.settle(zero, err)
}

// Future returns the read side of the promise.
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

// Async runs fn on its own goroutine and returns a future for its result.
// If ctx is already canceled, fn is not called and the future settles with
// the context error.
func Async[T, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		if err := ctx.Err(); err != nil {
			var zero U
			f.settle(zero, err)
			return
		}

		f.settle(fn(ctx, param))
	}()

	return f
}

// WaitAll waits for every future and returns their values in order. It stops
// at the first error it observes.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	for i, f := range futures {
		v, err := f.Await()
		if err != nil {
			return nil, err
		}
		results[i] = v
	}
	return results, nil
}

// WaitAny waits for the first future to settle and returns its index and
// outcome.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	if len(futures) == 0 {
		var zero T
		return -1, zero, ErrNoFutures
	}

	// Buffered so losing goroutines never block once a winner is picked.
	first := make(chan int, len(futures))
	for i, f := range futures {
		go func() {
			<-f.done
			first <- i
		}()
	}

	i := <-first
	v, err := futures[i].Await()
	return i, v, err
}
