package scheduler

import "errors"

var (
	// ErrLoopAlreadyStarted is returned when Start is called on a running loop.
	ErrLoopAlreadyStarted = errors.New("scheduler loop already started")

	// ErrLoopNotStarted is returned when Stop is called on a loop that is not running.
	ErrLoopNotStarted = errors.New("scheduler loop not started")

	// ErrShutdownTimeout is returned when the loop does not exit within the shutdown timeout.
	ErrShutdownTimeout = errors.New("scheduler loop shutdown timeout exceeded")
)
