// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"errors"
	"fmt"
	"net/url"
)

var (
	// ErrInvalidConfig indicates the client options are invalid or missing.
	ErrInvalidConfig = errors.New("pinclient: invalid configuration")

	// ErrCancelled is matched by every *CancelledError. A call is cancelled
	// when the server's certificate is not trusted.
	ErrCancelled = errors.New("pinclient: request cancelled")

	// ErrNetwork is matched by every *NetworkError.
	ErrNetwork = errors.New("pinclient: network error")

	// ErrCaptiveNetwork is matched by every *CaptiveNetworkError.
	ErrCaptiveNetwork = errors.New("pinclient: captive network detected")

	// ErrOperationCanceled indicates the caller canceled the request.
	ErrOperationCanceled = errors.New("pinclient: operation canceled")

	// ErrTranslation is matched by every *TranslationError.
	ErrTranslation = errors.New("pinclient: request translation failed")

	// ErrInvalidClientCertificate indicates the client key material could not
	// be decoded or loaded.
	ErrInvalidClientCertificate = errors.New("pinclient: invalid client certificate")
)

// CancelledError reports a call rejected because the server failed trust
// validation. Message is the trust failure message.
type CancelledError struct {
	Message string
	Err     error
}

// Error returns the trust failure message.
func (e *CancelledError) Error() string {
	return "pinclient: request cancelled: " + e.Message
}

// Unwrap returns the underlying engine or trust error.
func (e *CancelledError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCancelled.
func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// NetworkError reports a transport failure.
type NetworkError struct {
	Message string
	Err     error
}

// Error returns the transport failure message.
func (e *NetworkError) Error() string {
	return "pinclient: network error: " + e.Message
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// CaptiveNetworkError reports that the final response came from a different
// host than the one requested, typically a hotspot login portal.
type CaptiveNetworkError struct {
	OriginalURL *url.URL
	FinalURL    *url.URL
}

// Error names both hosts.
func (e *CaptiveNetworkError) Error() string {
	return fmt.Sprintf("pinclient: captive network detected: requested %s, answered by %s",
		e.OriginalURL.Host, e.FinalURL.Host)
}

// Is reports whether target is ErrCaptiveNetwork.
func (e *CaptiveNetworkError) Is(target error) bool {
	return target == ErrCaptiveNetwork
}

// TranslationError reports a request that could not be converted into an
// engine request.
type TranslationError struct {
	// Field names the part of the request that failed (e.g., "body").
	Field string
	Err   error
}

// Error returns the failing field and cause.
func (e *TranslationError) Error() string {
	return fmt.Sprintf("pinclient: request translation failed: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TranslationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTranslation.
func (e *TranslationError) Is(target error) bool {
	return target == ErrTranslation
}
