// Package stream implements lazy, cancelable push streams.
//
// A Source describes how to produce a sequence of notifications. Describing a
// Source does nothing; each call to Subscribe runs the producer function again,
// in a fresh execution context, and returns a Subscription for it. Two
// subscriptions to the same Source never share state or side effects. Sharing
// one execution between many observers is the job of the multicast package.
//
// # Producers
//
// A producer receives an Emitter bound to one subscription and may return a
// Teardown that releases whatever it set up:
//
//	ticks := stream.New(func(e stream.Emitter[string]) (stream.Teardown, error) {
//		e.Next("now")
//		tok := sched.ScheduleOnce(time.Second, func() {
//			e.Next("later")
//			e.Complete()
//		})
//		return func() { sched.Cancel(tok) }, nil
//	})
//
// The producer runs synchronously inside Subscribe, so values emitted before it
// returns are delivered before Subscribe returns. Producers must route delayed
// work through a scheduler.Scheduler so tests can drive them with a virtual
// clock.
//
// # Subscriptions
//
//	sub := ticks.Subscribe(stream.Observer[string]{
//		Next:     func(v string) { fmt.Println(v) },
//		Error:    func(err error) { fmt.Println("failed:", err) },
//		Complete: func() { fmt.Println("done") },
//	})
//	defer sub.Unsubscribe()
//
// A subscription stays active until Unsubscribe is called or a terminal
// notification (Error or Complete) is delivered. After that every Emitter call
// is a no-op. The teardown runs exactly once, whichever way the subscription
// ended, and also when the producer returns it after terminating
// synchronously.
//
// # Errors
//
// Errors never disappear silently:
//
//   - A producer that returns an error or panics delivers it as the
//     subscription's Error notification (panics wrapped in ErrProducerPanicked).
//   - A panicking observer callback is recovered, its subscription is
//     unsubscribed, and ErrHandlerPanicked is sent to the error hook. Other
//     subscriptions are not affected.
//   - An Error delivered to an Observer without an Error callback ends the
//     subscription and reaches the error hook as ErrUnhandled.
//
// The error hook is process-wide (SetErrorHook) unless a Source is created
// with WithErrorHook. The default hook logs through slog.Default().
//
// # Concurrency
//
// The package assumes a single-threaded, event-loop style execution model:
// producers, emissions and observer callbacks for one subscription run on one
// logical thread, such as a scheduler.Loop. Subscription state is still safe to
// read and Unsubscribe is safe to call from other goroutines.
package stream
