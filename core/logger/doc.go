// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers a small logger factory with environment presets and a set of
// pre-built attributes for the scheduler, stream and multicast components.
//
// # Features
//
//   - Built on Go's standard slog for compatibility and performance
//   - Environment-specific configurations (development, production)
//   - Support for both JSON and text output formats
//   - Attribute helpers with nil safety (empty Attr for nil inputs)
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/observable/core/logger"
//
//	// Create a development logger
//	log := logger.New(
//		logger.WithDevelopment("streamdemo"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	// Create a production logger
//	log := logger.New(
//		logger.WithProduction("streamdemo"),
//		logger.WithOutput(os.Stderr),
//	)
//
// Components in this module take a *slog.Logger through a WithLogger option
// and default to a logger that discards everything, see Discard.
//
// # Attribute Helpers
//
//	// Error handling
//	log.Error("teardown panicked",
//		logger.Error(err),
//		logger.SubscriptionID(sub.ID()),
//		logger.Component("stream"),
//	)
//
//	// Multiple errors
//	log.Error("Multiple failures", logger.Errors(err1, err2, err3))
//
//	// Scheduler activity
//	log.Debug("action scheduled",
//		logger.Token(uint64(tok)),
//		logger.Duration(delay),
//	)
//
//	// Multicast fan-out
//	log.Debug("upstream connected",
//		logger.Component("multicast"),
//		logger.Count("downstreams", n),
//	)
//
// # Nil Safety
//
// Helpers return an empty slog.Attr for nil or zero inputs, which slog drops:
//
//	log.Info("done", logger.Error(nil)) // no "error" key
package logger
