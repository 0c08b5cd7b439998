package stream

import (
	"fmt"

	"github.com/google/uuid"
)

// Emitter is the producer's handle on one subscription. Calls after the
// subscription became inactive are no-ops. Producers may call it synchronously
// while subscribing or later from scheduled callbacks, but never concurrently.
type Emitter[T any] interface {
	// Next delivers a value.
	Next(v T)
	// Error delivers a terminal error and releases the subscription.
	Error(err error)
	// Complete delivers successful termination and releases the subscription.
	Complete()
	// Active reports whether the subscription still accepts notifications.
	Active() bool
	// ID returns the identity of the subscription being fed.
	ID() uuid.UUID
}

// subscriber binds an observer to its subscription.
type subscriber[T any] struct {
	sub *Subscription
	obs Observer[T]
}

var _ Emitter[any] = (*subscriber[any])(nil)

func (s *subscriber[T]) ID() uuid.UUID {
	return s.sub.id
}

func (s *subscriber[T]) Active() bool {
	return s.sub.Active()
}

func (s *subscriber[T]) Next(v T) {
	if !s.sub.Active() || s.obs.Next == nil {
		return
	}
	if err := s.call(KindValue, func() { s.obs.Next(v) }); err != nil {
		s.sub.Unsubscribe()
		s.sub.report(err)
	}
}

func (s *subscriber[T]) Error(err error) {
	if !s.sub.deactivate() {
		return
	}
	if err == nil {
		err = ErrNilError
	}

	if s.obs.Error == nil {
		s.sub.report(fmt.Errorf("%w: subscription %s: %w", ErrUnhandled, s.sub.id, err))
	} else if herr := s.call(KindError, func() { s.obs.Error(err) }); herr != nil {
		s.sub.report(herr)
	}

	s.sub.release()
}

func (s *subscriber[T]) Complete() {
	if !s.sub.deactivate() {
		return
	}

	if s.obs.Complete != nil {
		if herr := s.call(KindComplete, s.obs.Complete); herr != nil {
			s.sub.report(herr)
		}
	}

	s.sub.release()
}

// start hands the subscription to the observer's Start callback.
func (s *subscriber[T]) start() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: subscription %s on start: %v", ErrHandlerPanicked, s.sub.id, r)
		}
	}()
	s.obs.Start(s.sub)
	return nil
}

// call runs an observer callback and converts a panic into ErrHandlerPanicked.
func (s *subscriber[T]) call(kind Kind, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: subscription %s on %s: %v", ErrHandlerPanicked, s.sub.id, kind, r)
		}
	}()
	fn()
	return nil
}
