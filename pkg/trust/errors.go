// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package trust

import (
	"errors"
	"fmt"
)

var (
	// ErrUntrusted is matched by every *Error so callers can test for any
	// trust rejection with errors.Is.
	ErrUntrusted = errors.New("trust: server certificate rejected")

	// ErrInvalidConfig indicates the validator configuration is invalid.
	ErrInvalidConfig = errors.New("trust: invalid configuration")
)

// Error is the rejection produced by the validator for a single handshake.
// It is returned from the TLS VerifyConnection hook, so the failure reaches
// the caller through the call's own error chain.
type Error struct {
	// Kind is the rejecting decision.
	Kind Kind

	// Hostname is the host the handshake was validated for.
	Hostname string

	// Message is the human-readable failure message.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error returns a formatted message including the decision kind and host.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("trust: %s for %s: %s: %v", e.Kind, e.Hostname, e.Message, e.Err)
	}
	return fmt.Sprintf("trust: %s for %s: %s", e.Kind, e.Hostname, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrUntrusted.
func (e *Error) Is(target error) bool {
	return target == ErrUntrusted
}
