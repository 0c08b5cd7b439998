package async

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/observable/core/stream"
)

// FirstValue subscribes to src and settles with its first value, after which
// the subscription is released. It settles with the stream's error, with
// ErrNoValue if the stream completes empty, or with the context error if ctx
// ends first.
func FirstValue[T any](ctx context.Context, src *stream.Source[T]) *Future[T] {
	p := NewPromise[T]()

	return bridge(ctx, src, p, stream.Observer[T]{
		Next:     func(v T) { p.Resolve(v) },
		Error:    func(err error) { p.Reject(err) },
		Complete: func() { p.Reject(ErrNoValue) },
	})
}

// LastValue subscribes to src and settles with the last value emitted before
// completion. It settles with ErrNoValue if the stream completes empty.
func LastValue[T any](ctx context.Context, src *stream.Source[T]) *Future[T] {
	p := NewPromise[T]()

	var (
		mu   sync.Mutex
		last T
		seen bool
	)

	return bridge(ctx, src, p, stream.Observer[T]{
		Next: func(v T) {
			mu.Lock()
			last, seen = v, true
			mu.Unlock()
		},
		Error: func(err error) { p.Reject(err) },
		Complete: func() {
			mu.Lock()
			v, ok := last, seen
			mu.Unlock()
			if !ok {
				p.Reject(ErrNoValue)
				return
			}
			p.Resolve(v)
		},
	})
}

// bridge subscribes obs to src and releases the subscription as soon as p
// settles or ctx ends.
func bridge[T any](ctx context.Context, src *stream.Source[T], p *Promise[T], obs stream.Observer[T]) *Future[T] {
	f := p.Future()
	if err := ctx.Err(); err != nil {
		p.Reject(err)
		return f
	}

	var sub atomic.Pointer[stream.Subscription]
	release := func() {
		if s := sub.Load(); s != nil {
			s.Unsubscribe()
		}
	}

	sub.Store(src.Subscribe(obs))

	stop := context.AfterFunc(ctx, func() {
		if p.Reject(ctx.Err()) {
			release()
		}
	})
	f.OnComplete(nil, func(T, error) {
		stop()
		release()
	})

	return f
}
