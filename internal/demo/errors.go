package demo

import "errors"

// ErrUnknownScenario is returned when a scenario name is not registered.
var ErrUnknownScenario = errors.New("demo: unknown scenario")
