// Package domain holds the constants and sentinel errors shared by every
// app3 package.
package domain

import "errors"

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Routing errors
	ErrNotFound         = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")

	// Operational errors
	ErrUnavailable = errors.New("service temporarily unavailable")
	ErrListen      = errors.New("bind listener")

	// Configuration errors
	ErrConfigRequired = errors.New("required configuration key missing")
	ErrConfigInvalid  = errors.New("invalid configuration value")
)

// IsStartupError returns true if the error prevents the service from starting.
// Startup errors are fatal and never retried.
func IsStartupError(err error) bool {
	return errors.Is(err, ErrListen) ||
		errors.Is(err, ErrConfigRequired) ||
		errors.Is(err, ErrConfigInvalid)
}
