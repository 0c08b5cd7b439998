// Package multicast turns a cold stream.Source into a shared one.
//
// Every subscription to a plain Source re-runs its producer. A Multicast
// subscribes to the wrapped Source once, when the first downstream subscriber
// attaches, and fans every upstream notification out to all attached
// subscribers in attach order:
//
//	shared := multicast.Share(src)
//	a := shared.SubscribeFunc(handleA)
//	b := shared.SubscribeFunc(handleB) // no second producer run
//
// # Replay
//
// With a replay count, the last N values are buffered and delivered to a
// late subscriber synchronously during its Subscribe call, before any live
// value:
//
//	latest := multicast.ShareReplay(src, 1)
//
// # Lifecycle policies
//
// By default, when the last subscriber detaches or upstream completes or
// errors, the upstream subscription is torn down and the buffer cleared. The
// next subscriber starts a fresh upstream subscription.
//
// WithRetainBuffer keeps the buffer across teardown, so the next subscriber
// first sees the previously buffered values and then live values from the
// fresh upstream subscription.
//
// WithCloseOnTerminate makes upstream termination final: later subscribers
// receive the buffered values followed by the terminal notification, and the
// wrapped Source is never subscribed again.
//
// # Handler faults
//
// A downstream handler that panics is detached and its error reported through
// the error hook; the remaining subscribers keep receiving notifications.
package multicast
