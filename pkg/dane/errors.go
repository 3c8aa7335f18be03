// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

// Package dane turns RFC 6698 TLSA records published in DNS into public-key
// pins. Records are looked up over UDP or DNS-over-TLS with the DNSSEC
// Authenticated Data flag required by default.
package dane

import "errors"

var (
	// ErrNoTLSARecords indicates no TLSA records were found for the queried name.
	ErrNoTLSARecords = errors.New("dane: no TLSA records found")

	// ErrDNSLookupFailed indicates the DNS query for TLSA records failed.
	ErrDNSLookupFailed = errors.New("dane: DNS lookup failed")

	// ErrDNSSECRequired indicates the AD flag was not set in the response.
	ErrDNSSECRequired = errors.New("dane: DNSSEC validation required but AD flag not set")

	// ErrNoUsableRecords indicates none of the records can be expressed as a
	// SHA-256 SPKI pin.
	ErrNoUsableRecords = errors.New("dane: no TLSA record convertible to a pin")

	// ErrUnsupportedSelector indicates the TLSA selector is not supported.
	ErrUnsupportedSelector = errors.New("dane: unsupported TLSA selector")

	// ErrUnsupportedMatching indicates the TLSA matching type is not supported.
	ErrUnsupportedMatching = errors.New("dane: unsupported TLSA matching type")

	// ErrInvalidCertificate indicates a nil or malformed certificate.
	ErrInvalidCertificate = errors.New("dane: invalid certificate")

	// ErrInvalidHostname indicates an empty or malformed hostname.
	ErrInvalidHostname = errors.New("dane: invalid hostname")

	// ErrInvalidPort indicates port number zero.
	ErrInvalidPort = errors.New("dane: invalid port")

	// ErrResolverConfig indicates the resolver configuration is invalid.
	ErrResolverConfig = errors.New("dane: invalid resolver configuration")
)
