package stream

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is a live connection between one producer execution and one
// observer. It is active until it is unsubscribed or receives a terminal
// notification, whichever comes first. Its teardown runs at most once.
//
// Unsubscribe may be called any number of times, from any goroutine, and from
// inside the subscription's own callbacks.
type Subscription struct {
	id     uuid.UUID
	active atomic.Bool
	done   chan struct{}
	hook   ErrorHook

	mu       sync.Mutex
	teardown Teardown
	released bool
}

func newSubscription(hook ErrorHook) *Subscription {
	s := &Subscription{
		id:   uuid.New(),
		done: make(chan struct{}),
		hook: hook,
	}
	s.active.Store(true)
	return s
}

// ID returns the subscription's identity.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Active reports whether notifications can still reach the observer.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Done is closed when the subscription becomes inactive.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Unsubscribe deactivates the subscription and runs its teardown.
// No notification reaches the observer after Unsubscribe starts.
func (s *Subscription) Unsubscribe() {
	if s.deactivate() {
		s.release()
	}
}

func (s *Subscription) deactivate() bool {
	if !s.active.CompareAndSwap(true, false) {
		return false
	}
	close(s.done)
	return true
}

// release runs the stored teardown. A teardown attached after release runs
// immediately, which covers producers that terminate synchronously before
// returning their teardown.
func (s *Subscription) release() {
	s.mu.Lock()
	td := s.teardown
	s.teardown = nil
	s.released = true
	s.mu.Unlock()

	s.runTeardown(td)
}

func (s *Subscription) attach(td Teardown) {
	if td == nil {
		return
	}

	s.mu.Lock()
	if !s.released {
		s.teardown = td
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.runTeardown(td)
}

func (s *Subscription) runTeardown(td Teardown) {
	if td == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.report(fmt.Errorf("%w: subscription %s: %v", ErrTeardownPanicked, s.id, r))
		}
	}()
	td()
}

func (s *Subscription) report(err error) {
	if s.hook != nil {
		s.hook(err)
		return
	}
	processErrorHook()(err)
}
