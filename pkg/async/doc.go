// Package async provides single-shot futures and bridges from streams to them.
//
// A Future settles exactly once. Unlike a stream.Source, the work behind it is
// eager: it starts when the future is created, not when someone waits for it,
// and every waiter observes the same outcome.
//
//	f := async.Async(ctx, userID, fetchUser)
//	user, err := f.Await()
//
// A Promise is the write side of a Future. Only the first Resolve or Reject
// has an effect:
//
//	p := async.NewPromise[string]()
//	p.Resolve("first")
//	p.Resolve("second") // ignored
//
// OnComplete registers a continuation. Passing a post function, for example
// one that schedules a zero-delay action, makes the continuation asynchronous:
//
//	f.OnComplete(func(fn func()) { sched.ScheduleOnce(0, fn) }, func(v string, err error) {
//		log.Println(v, err)
//	})
//
// # Streams
//
// FirstValue and LastValue subscribe to a stream.Source and settle with its
// first or last value. The subscription is released as soon as the future
// settles or the context ends.
//
// # Coordination
//
// WaitAll collects the results of several futures; WaitAny returns the first
// one to settle. AwaitWithTimeout returns ErrTimeout if the future is still
// pending when the timeout elapses.
package async
