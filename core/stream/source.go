package stream

import "fmt"

// Teardown releases whatever a producer set up for one subscription, such as a
// scheduled timer. The stream core runs it at most once.
type Teardown func()

// Producer describes how to produce notifications for one subscription.
// It runs synchronously inside Subscribe. A returned error is delivered to the
// subscriber as its terminal error; a nil Teardown means nothing to release.
type Producer[T any] func(Emitter[T]) (Teardown, error)

// Source is an immutable, reusable description of a sequence. The producer
// runs once per Subscribe call and never before it, so every subscription gets
// its own execution with its own side effects.
type Source[T any] struct {
	produce Producer[T]
	hook    ErrorHook
}

// New creates a Source from a producer function.
func New[T any](produce Producer[T], opts ...Option) *Source[T] {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Source[T]{
		produce: produce,
		hook:    o.hook,
	}
}

// Subscribe starts a new execution of the producer bound to obs and returns
// its subscription. The producer may already have delivered notifications,
// including a terminal one, by the time Subscribe returns. If obs.Start
// unsubscribes, the producer is not run.
func (s *Source[T]) Subscribe(obs Observer[T]) *Subscription {
	sub := newSubscription(s.hook)
	e := &subscriber[T]{sub: sub, obs: obs}

	if obs.Start != nil {
		if err := e.start(); err != nil {
			sub.Unsubscribe()
			sub.report(err)
		}
		if !sub.Active() {
			return sub
		}
	}

	td, err := s.run(e)
	if err != nil {
		if sub.Active() {
			e.Error(err)
		} else {
			sub.report(fmt.Errorf("subscription %s: producer failed after termination: %w", sub.id, err))
		}
	}
	sub.attach(td)

	return sub
}

// SubscribeFunc subscribes with a value callback only.
// Errors reach the error hook as ErrUnhandled.
func (s *Source[T]) SubscribeFunc(next func(T)) *Subscription {
	return s.Subscribe(Observer[T]{Next: next})
}

// SubscribeNotify subscribes with a single notification handler.
func (s *Source[T]) SubscribeNotify(fn func(Notification[T])) *Subscription {
	return s.Subscribe(NotifyObserver(fn))
}

func (s *Source[T]) run(e Emitter[T]) (td Teardown, err error) {
	defer func() {
		if r := recover(); r != nil {
			td = nil
			err = fmt.Errorf("%w: %v", ErrProducerPanicked, r)
		}
	}()

	if s.produce == nil {
		return nil, ErrNilProducer
	}
	return s.produce(e)
}
