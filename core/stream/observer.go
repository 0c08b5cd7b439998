package stream

// Observer consumes a subscription through split callbacks. Any callback may
// be nil. An error delivered to an Observer without an Error callback is
// reported to the error hook as ErrUnhandled.
//
// Start receives the subscription before the producer runs, so the observer
// can unsubscribe while values are still being emitted synchronously.
type Observer[T any] struct {
	Start    func(*Subscription)
	Next     func(T)
	Error    func(error)
	Complete func()
}

// NotifyObserver adapts a single notification handler to an Observer.
// The resulting observer handles the error channel.
func NotifyObserver[T any](fn func(Notification[T])) Observer[T] {
	if fn == nil {
		return Observer[T]{}
	}
	return Observer[T]{
		Next:     func(v T) { fn(ValueOf(v)) },
		Error:    func(err error) { fn(ErrorOf[T](err)) },
		Complete: func() { fn(CompleteOf[T]()) },
	}
}
