// Package config loads environment-driven configuration structs with caching,
// using Go generics. Each configuration type is parsed once and served from
// cache on later calls.
//
// The first Load reads a .env file from the working directory if present, then
// fields are parsed with caarlos0/env tags.
//
// Basic usage:
//
//	import (
//		"github.com/dmitrymomot/observable/core/config"
//		"github.com/dmitrymomot/observable/core/scheduler"
//	)
//
//	var cfg scheduler.Config // SCHEDULER_MIN_PERIOD, SCHEDULER_SHUTDOWN_TIMEOUT
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	loop := scheduler.NewLoopFromConfig(cfg)
//
// Component configs compose into one application config. A prefix keeps the
// scheduler variables apart from the rest:
//
//	type Config struct {
//		Scheduler scheduler.Config `envPrefix:"STREAM_"` // STREAM_SCHEDULER_MIN_PERIOD, ...
//		Demo      demo.Config      // DEMO_SECOND_EMIT_DELAY, DEMO_INTERVAL, ...
//
//		RunFor time.Duration `env:"DEMO_RUN_FOR" envDefault:"3s"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg) // panics on failure, for startup code
//
// # Caching Behavior
//
// The cache is keyed by type, so loading the same type again returns the first
// result even if the environment changed in between:
//
//	var a, b broadcast.Config
//	config.Load(&a) // parses BROADCAST_BUFFER_SIZE
//	config.Load(&b) // served from cache, a == b
//
// Parse failures wrap ErrParse; a nil pointer returns ErrNilConfig.
package config
