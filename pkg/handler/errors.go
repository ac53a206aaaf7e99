package handler

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("handler: invalid configuration")

// ConfigurationError reports a malformed or incomplete dispatcher
// configuration. No dispatcher is produced when it is returned.
type ConfigurationError struct {
	Key    string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("handler: configuration: %s", e.Reason)
	}
	return fmt.Sprintf("handler: configuration %q: %s", e.Key, e.Reason)
}

// Unwrap exposes ErrConfiguration for errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// PhaseError wraps a listener failure with the phase it aborted.
type PhaseError struct {
	Phase string
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("handler: phase %s: %v", e.Phase, e.Err)
}

// Unwrap returns the listener error.
func (e *PhaseError) Unwrap() error {
	return e.Err
}
