package stream_test

import (
	"sync"

	"github.com/dmitrymomot/observable/core/stream"
)

// errorSink collects errors sent to a source's error hook.
type errorSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *errorSink) hook(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *errorSink) option() stream.Option {
	return stream.WithErrorHook(s.hook)
}

func (s *errorSink) errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// recorder stores every notification it observes.
type recorder[T any] struct {
	got []stream.Notification[T]
}

func (r *recorder[T]) observer() stream.Observer[T] {
	return stream.NotifyObserver(func(n stream.Notification[T]) {
		r.got = append(r.got, n)
	})
}

func (r *recorder[T]) values() []T {
	var out []T
	for _, n := range r.got {
		if n.Kind == stream.KindValue {
			out = append(out, n.Value)
		}
	}
	return out
}
