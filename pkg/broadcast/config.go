package broadcast

import (
	"context"

	"github.com/dmitrymomot/observable/core/stream"
)

// Config holds subscriber defaults.
type Config struct {
	BufferSize int `env:"BROADCAST_BUFFER_SIZE" envDefault:"64"`
}

// DefaultConfig returns the default subscriber configuration.
func DefaultConfig() Config {
	return Config{BufferSize: 64}
}

// NewFromConfig subscribes to src with the configured buffer size.
func NewFromConfig[T any](ctx context.Context, cfg Config, src *stream.Source[T]) (*Subscriber[T], error) {
	if cfg.BufferSize < 0 {
		return nil, ErrInvalidBuffer
	}
	return Subscribe(ctx, src, cfg.BufferSize), nil
}
