package stream

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/observable/core/logger"
)

var (
	// ErrNilProducer is delivered when a Source has no producer function.
	ErrNilProducer = errors.New("stream: nil producer")

	// ErrNilScheduler is delivered by time-based sources created without a scheduler.
	ErrNilScheduler = errors.New("stream: nil scheduler")

	// ErrNilError replaces a nil error passed to Emitter.Error.
	ErrNilError = errors.New("stream: nil error emitted")

	// ErrProducerPanicked wraps a panic raised by a producer function.
	ErrProducerPanicked = errors.New("stream: producer panicked")

	// ErrHandlerPanicked wraps a panic raised by an observer callback.
	ErrHandlerPanicked = errors.New("stream: handler panicked")

	// ErrTeardownPanicked wraps a panic raised by a teardown action.
	ErrTeardownPanicked = errors.New("stream: teardown panicked")

	// ErrUnhandled wraps an error delivered to an observer without an Error callback.
	ErrUnhandled = errors.New("stream: unhandled error")
)

// ErrorHook receives errors that have no subscriber left to deliver them to:
// handler panics, teardown panics, unhandled error notifications and producer
// errors raised after the subscription already terminated.
type ErrorHook func(error)

var errorHook atomic.Pointer[ErrorHook]

// SetErrorHook replaces the process-wide error hook and returns the previous
// one. A nil hook restores the default, which logs through slog.Default().
// Sources created with WithErrorHook bypass the process-wide hook.
func SetErrorHook(h ErrorHook) ErrorHook {
	if h == nil {
		h = defaultErrorHook
	}
	prev := errorHook.Swap(&h)
	if prev == nil {
		return defaultErrorHook
	}
	return *prev
}

func processErrorHook() ErrorHook {
	if h := errorHook.Load(); h != nil {
		return *h
	}
	return defaultErrorHook
}

func defaultErrorHook(err error) {
	slog.Default().Error("stream error",
		logger.Component("stream"),
		logger.Error(err))
}
