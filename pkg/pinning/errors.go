// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

// Package pinning provides SHA-256 public-key pin computation and a per-host
// pin store. Pins use the "sha256/<base64>" format, where the payload is the
// SHA-256 digest of a certificate's DER-encoded SubjectPublicKeyInfo.
package pinning

import "errors"

var (
	// ErrPinMismatch is returned when no certificate in the chain matches any
	// pin configured for the host.
	ErrPinMismatch = errors.New("pinning: certificate pin mismatch")

	// ErrNoCertificates is returned when a pin check is asked to verify an empty chain.
	ErrNoCertificates = errors.New("pinning: no certificates presented")

	// ErrInvalidPinFormat is returned when a sha256/ pin does not carry a
	// base64-encoded 32-byte digest.
	ErrInvalidPinFormat = errors.New("pinning: invalid pin format")

	// ErrInvalidHostname is returned when a pin entry has an empty hostname.
	ErrInvalidHostname = errors.New("pinning: invalid hostname")
)
