package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the duration elapses first.
	ErrTimeout = errors.New("async: operation timed out")
	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures provided")
	// ErrNoValue settles a future fed by a stream that completed without a value.
	ErrNoValue = errors.New("async: stream completed without a value")
)
