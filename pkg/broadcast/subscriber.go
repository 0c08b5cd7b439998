package broadcast

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/observable/core/stream"
)

// Message wraps one delivered value.
type Message[T any] struct {
	Data T
}

// Subscriber receives the values of one stream subscription over a channel.
type Subscriber[T any] struct {
	ch      chan Message[T]
	sub     *stream.Subscription
	dropped atomic.Uint64

	mu     sync.Mutex
	closed bool
	err    error
	stop   func() bool
}

// Subscribe subscribes to src and forwards its values to a channel holding up
// to buffer undelivered messages.
func Subscribe[T any](ctx context.Context, src *stream.Source[T], buffer int) *Subscriber[T] {
	if buffer < 0 {
		buffer = 0
	}
	s := &Subscriber[T]{ch: make(chan Message[T], buffer)}

	if err := ctx.Err(); err != nil {
		s.finish(err)
		return s
	}

	s.sub = src.Subscribe(stream.Observer[T]{
		Next:     s.deliver,
		Error:    s.finish,
		Complete: func() { s.finish(nil) },
	})

	stop := context.AfterFunc(ctx, func() {
		s.finish(ctx.Err())
		s.sub.Unsubscribe()
	})

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		stop()
		return s
	}
	s.stop = stop
	s.mu.Unlock()

	return s
}

// Receive returns the message channel. It is closed on termination.
func (s *Subscriber[T]) Receive() <-chan Message[T] {
	return s.ch
}

// Err returns the reason the channel was closed, or nil while it is open.
func (s *Subscriber[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Dropped returns the number of values lost to a full buffer.
func (s *Subscriber[T]) Dropped() uint64 {
	return s.dropped.Load()
}

// Close releases the stream subscription and closes the channel. Messages
// already buffered stay readable.
func (s *Subscriber[T]) Close() {
	s.finish(nil)
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
}

func (s *Subscriber[T]) deliver(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case s.ch <- Message[T]{Data: v}:
	default:
		s.dropped.Add(1)
	}
}

// finish closes the channel once and drops the context registration.
func (s *Subscriber[T]) finish(err error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.err = err
	close(s.ch)
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
}
