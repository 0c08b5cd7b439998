package multicast

import (
	"log/slog"

	"github.com/dmitrymomot/observable/core/stream"
)

// Option configures a Multicast.
type Option func(*options)

type options struct {
	replay           int
	retainBuffer     bool
	closeOnTerminate bool
	hook             stream.ErrorHook
	logger           *slog.Logger
}

// WithReplay keeps the last n values and delivers them to every new
// subscriber before any live value. Zero disables replay.
func WithReplay(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.replay = n
		}
	}
}

// WithRetainBuffer keeps the replay buffer when the upstream subscription is
// torn down, so a later subscriber first receives the buffered values and then
// live values from a fresh upstream subscription.
func WithRetainBuffer() Option {
	return func(o *options) {
		o.retainBuffer = true
	}
}

// WithCloseOnTerminate makes upstream completion or error final. Later
// subscribers receive the buffered values and the terminal notification, and
// upstream is never subscribed again.
func WithCloseOnTerminate() Option {
	return func(o *options) {
		o.closeOnTerminate = true
	}
}

// WithErrorHook routes unhandled errors of downstream subscriptions to h.
func WithErrorHook(h stream.ErrorHook) Option {
	return func(o *options) {
		if h != nil {
			o.hook = h
		}
	}
}

// WithLogger configures debug logging of upstream connect and disconnect.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
