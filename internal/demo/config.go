package demo

import "time"

// Config controls scenario timing. Empty Scenarios runs every scenario.
type Config struct {
	SecondEmitDelay time.Duration `env:"DEMO_SECOND_EMIT_DELAY" envDefault:"1s"`
	Interval        time.Duration `env:"DEMO_INTERVAL" envDefault:"250ms"`
	CancelAfter     time.Duration `env:"DEMO_CANCEL_AFTER" envDefault:"1s"`
	Scenarios       []string      `env:"DEMO_SCENARIOS" envSeparator:","`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		SecondEmitDelay: time.Second,
		Interval:        250 * time.Millisecond,
		CancelAfter:     time.Second,
	}
}
