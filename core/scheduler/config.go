package scheduler

import "time"

// Config holds the configuration for the scheduler loop.
// Designed for environment-based configuration using popular env parsing libraries.
type Config struct {
	MinPeriod       time.Duration `env:"SCHEDULER_MIN_PERIOD" envDefault:"1ms"`
	ShutdownTimeout time.Duration `env:"SCHEDULER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig() Config {
	return Config{
		MinPeriod:       time.Millisecond,
		ShutdownTimeout: 5 * time.Second,
	}
}
