package stream

// Of emits values synchronously in order, then completes.
func Of[T any](values ...T) *Source[T] {
	return New(func(e Emitter[T]) (Teardown, error) {
		for _, v := range values {
			if !e.Active() {
				return nil, nil
			}
			e.Next(v)
		}
		e.Complete()
		return nil, nil
	})
}

// Empty completes immediately.
func Empty[T any]() *Source[T] {
	return New(func(e Emitter[T]) (Teardown, error) {
		e.Complete()
		return nil, nil
	})
}

// Fail terminates every subscription with err.
func Fail[T any](err error) *Source[T] {
	return New(func(Emitter[T]) (Teardown, error) {
		if err == nil {
			return nil, ErrNilError
		}
		return nil, err
	})
}

// Never produces nothing and never terminates.
func Never[T any]() *Source[T] {
	return New(func(Emitter[T]) (Teardown, error) {
		return nil, nil
	})
}
