package stream_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/observable/core/stream"
)

func TestSource_Laziness(t *testing.T) {
	t.Parallel()

	calls := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		calls++
		e.Next(calls)
		return nil, nil
	})

	assert.Equal(t, 0, calls, "producer must not run before subscribe")

	sub := src.SubscribeFunc(func(int) {})
	defer sub.Unsubscribe()

	assert.Equal(t, 1, calls)
}

func TestSource_IndependentReplays(t *testing.T) {
	t.Parallel()

	calls := 0
	src := stream.New(func(e stream.Emitter[string]) (stream.Teardown, error) {
		calls++
		e.Next(fmt.Sprintf("A%d", calls))
		return nil, nil
	})

	var first, second []string
	src.SubscribeFunc(func(v string) { first = append(first, v) })
	src.SubscribeFunc(func(v string) { second = append(second, v) })

	assert.Equal(t, []string{"A1"}, first)
	assert.Equal(t, []string{"A2"}, second)
	assert.Equal(t, 2, calls)
}

func TestSource_SynchronousFirstEmission(t *testing.T) {
	t.Parallel()

	var got []int
	sub := stream.Of(1, 2, 3).SubscribeFunc(func(v int) { got = append(got, v) })

	assert.Equal(t, []int{1, 2, 3}, got, "values arrive before Subscribe returns")
	assert.False(t, sub.Active(), "completed synchronously")
	select {
	case <-sub.Done():
	default:
		t.Fatal("done channel must be closed")
	}
}

func TestSource_TerminalIsFinal(t *testing.T) {
	t.Parallel()

	sink := &errorSink{}
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		e.Next(1)
		e.Complete()
		e.Next(2)
		e.Error(errors.New("late"))
		e.Complete()
		return nil, nil
	}, sink.option())

	rec := &recorder[int]{}
	src.Subscribe(rec.observer())

	require.Len(t, rec.got, 2)
	assert.Equal(t, stream.ValueOf(1), rec.got[0])
	assert.Equal(t, stream.CompleteOf[int](), rec.got[1])
	assert.Empty(t, sink.errors(), "emitting after completion is a no-op, not a fault")
}

func TestSource_ErrorAndCompleteAreExclusive(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		e.Error(boom)
		e.Complete()
		return nil, nil
	})

	rec := &recorder[int]{}
	src.Subscribe(rec.observer())

	require.Len(t, rec.got, 1)
	assert.Equal(t, stream.KindError, rec.got[0].Kind)
	assert.ErrorIs(t, rec.got[0].Err, boom)
}

func TestSource_ProducerError(t *testing.T) {
	t.Parallel()

	t.Run("returned error becomes error notification", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("setup failed")
		rec := &recorder[int]{}
		sub := stream.Fail[int](boom).Subscribe(rec.observer())

		require.Len(t, rec.got, 1)
		assert.ErrorIs(t, rec.got[0].Err, boom)
		assert.False(t, sub.Active())
	})

	t.Run("panic becomes error notification", func(t *testing.T) {
		t.Parallel()

		src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
			e.Next(1)
			panic("producer exploded")
		})

		rec := &recorder[int]{}
		src.Subscribe(rec.observer())

		require.Len(t, rec.got, 2)
		assert.Equal(t, 1, rec.got[0].Value)
		assert.ErrorIs(t, rec.got[1].Err, stream.ErrProducerPanicked)
		assert.Contains(t, rec.got[1].Err.Error(), "producer exploded")
	})

	t.Run("nil producer", func(t *testing.T) {
		t.Parallel()

		rec := &recorder[int]{}
		stream.New[int](nil).Subscribe(rec.observer())

		require.Len(t, rec.got, 1)
		assert.ErrorIs(t, rec.got[0].Err, stream.ErrNilProducer)
	})

	t.Run("error after termination reaches hook", func(t *testing.T) {
		t.Parallel()

		late := errors.New("late failure")
		sink := &errorSink{}
		src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
			e.Complete()
			return nil, late
		}, sink.option())

		rec := &recorder[int]{}
		src.Subscribe(rec.observer())

		require.Len(t, rec.got, 1)
		assert.Equal(t, stream.KindComplete, rec.got[0].Kind)
		require.Len(t, sink.errors(), 1)
		assert.ErrorIs(t, sink.errors()[0], late)
	})
}

func TestSource_UnhandledError(t *testing.T) {
	t.Parallel()

	boom := errors.New("nobody listens")
	sink := &errorSink{}
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		e.Error(boom)
		return nil, nil
	}, sink.option())

	sub := src.SubscribeFunc(func(int) {})

	assert.False(t, sub.Active())
	require.Len(t, sink.errors(), 1)
	assert.ErrorIs(t, sink.errors()[0], stream.ErrUnhandled)
	assert.ErrorIs(t, sink.errors()[0], boom)
}

func TestSource_NilErrorIsReplaced(t *testing.T) {
	t.Parallel()

	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		e.Error(nil)
		return nil, nil
	})

	rec := &recorder[int]{}
	src.Subscribe(rec.observer())

	require.Len(t, rec.got, 1)
	assert.ErrorIs(t, rec.got[0].Err, stream.ErrNilError)
}

func TestSource_HandlerPanic(t *testing.T) {
	t.Parallel()

	sink := &errorSink{}
	var emitters []stream.Emitter[int]
	torn := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		emitters = append(emitters, e)
		return func() { torn++ }, nil
	}, sink.option())

	faulty := src.SubscribeFunc(func(v int) {
		if v == 2 {
			panic("handler exploded")
		}
	})
	var healthy []int
	ok := src.SubscribeFunc(func(v int) { healthy = append(healthy, v) })

	for i := 1; i <= 3; i++ {
		for _, e := range emitters {
			e.Next(i)
		}
	}

	assert.False(t, faulty.Active(), "faulting subscription is detached")
	assert.True(t, ok.Active())
	assert.Equal(t, []int{1, 2, 3}, healthy)
	assert.Equal(t, 1, torn)

	require.Len(t, sink.errors(), 1)
	assert.ErrorIs(t, sink.errors()[0], stream.ErrHandlerPanicked)
	assert.Contains(t, sink.errors()[0].Error(), faulty.ID().String())

	ok.Unsubscribe()
	assert.Equal(t, 2, torn)
}

func TestSource_TerminalHandlerPanicStillReleases(t *testing.T) {
	t.Parallel()

	sink := &errorSink{}
	torn := 0
	var emitter stream.Emitter[int]
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		emitter = e
		return func() { torn++ }, nil
	}, sink.option())

	sub := src.Subscribe(stream.Observer[int]{
		Complete: func() { panic("complete exploded") },
	})
	emitter.Complete()

	assert.False(t, sub.Active())
	assert.Equal(t, 1, torn)
	require.Len(t, sink.errors(), 1)
	assert.ErrorIs(t, sink.errors()[0], stream.ErrHandlerPanicked)
}

func TestSource_SubscribeNotifyNil(t *testing.T) {
	t.Parallel()

	sink := &errorSink{}
	sub := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		e.Next(1)
		e.Complete()
		return nil, nil
	}, sink.option()).SubscribeNotify(nil)

	assert.False(t, sub.Active())
	assert.Empty(t, sink.errors())
}

func TestSource_StartReceivesSubscription(t *testing.T) {
	t.Parallel()

	emitted := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		for e.Active() && emitted < 100 {
			e.Next(emitted)
			emitted++
		}
		return nil, nil
	})

	var started *stream.Subscription
	var got []int
	sub := src.Subscribe(stream.Observer[int]{
		Start: func(s *stream.Subscription) { started = s },
		Next: func(v int) {
			got = append(got, v)
			if v == 1 {
				started.Unsubscribe()
			}
		},
	})

	assert.Same(t, sub, started)
	assert.Equal(t, []int{0, 1}, got)
	assert.Equal(t, 2, emitted, "synchronous producer stops once the observer unsubscribes")
	assert.False(t, sub.Active())
}

func TestSource_UnsubscribeInStartSkipsProducer(t *testing.T) {
	t.Parallel()

	runs := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		runs++
		return nil, nil
	})

	sub := src.Subscribe(stream.Observer[int]{
		Start: func(s *stream.Subscription) { s.Unsubscribe() },
	})

	assert.Equal(t, 0, runs)
	assert.False(t, sub.Active())
}

func TestSource_StartPanic(t *testing.T) {
	t.Parallel()

	sink := &errorSink{}
	runs := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		runs++
		return nil, nil
	}, sink.option())

	sub := src.Subscribe(stream.Observer[int]{
		Start: func(*stream.Subscription) { panic("start exploded") },
	})

	assert.False(t, sub.Active())
	assert.Equal(t, 0, runs)
	require.Len(t, sink.errors(), 1)
	assert.ErrorIs(t, sink.errors()[0], stream.ErrHandlerPanicked)
}
