/*
errors.go - Centralized error types for the dashboard engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain presets, stores and the API layer wrap these errors with
  additional context.

ERROR CATEGORIES:
  1. Registry errors - Unknown domain / session lookups
  2. Config errors - Malformed domain definitions
  3. Source/store errors - Loader and snapshot persistence failures

USAGE:
  Callers can test with errors.Is:

    if errors.Is(err, engine.ErrDomainNotFound) {
        http.NotFound(w, r)
    }

SEE ALSO:
  - store.go: Uses these errors
  - rules.go: Classify assumes a validated DomainConfig
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrDomainNotFound is returned when a referenced domain is not registered.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrSessionNotFound is returned when a selection session does not exist.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSnapshotNotFound is returned when no snapshot has been stored for a domain.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrSourceUnavailable is returned when a data source cannot be read.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrInvalidConfig is returned when a domain definition fails validation.
	ErrInvalidConfig = errors.New("invalid domain config")

	// ErrInvalidSelection is returned when a selection field or value is malformed.
	ErrInvalidSelection = errors.New("invalid selection")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigError describes why a domain definition was rejected.
type ConfigError struct {
	Domain string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid domain config %q: %s", e.Domain, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// SourceError describes a failure reading rows for a domain.
type SourceError struct {
	Domain string
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s for domain %q: %v", e.Source, e.Domain, e.Err)
}

func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDomainNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrSnapshotNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidSelection) ||
		errors.Is(err, ErrInvalidConfig)
}
