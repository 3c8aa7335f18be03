// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package dane

import (
	"log/slog"
	"time"
)

// Certificate Usage values (RFC 6698 Section 2.1.1). Every usage names a
// certificate somewhere in the presented chain, so all of them become pins.
const (
	UsageCAConstraint uint8 = 0
	UsageServiceCert  uint8 = 1
	UsageDANETA       uint8 = 2
	UsageDANEEE       uint8 = 3
)

// Selector values (RFC 6698 Section 2.1.2).
const (
	// SelectorFullCert selects the full DER-encoded certificate.
	SelectorFullCert uint8 = 0

	// SelectorSPKI selects the DER-encoded SubjectPublicKeyInfo.
	SelectorSPKI uint8 = 1
)

// Matching Type values (RFC 6698 Section 2.1.3).
const (
	MatchingExact  uint8 = 0
	MatchingSHA256 uint8 = 1
	MatchingSHA512 uint8 = 2
)

// TLSARecord is a parsed TLSA resource record.
type TLSARecord struct {
	Usage        uint8
	Selector     uint8
	MatchingType uint8

	// CertData is the Certificate Association Data: a digest or the raw
	// certificate or SPKI bytes, depending on MatchingType.
	CertData []byte
}

// ResolverConfig configures the DNS resolver used for TLSA lookups.
type ResolverConfig struct {
	// Server is the DNS resolver address (e.g., "8.8.8.8:53"). When empty,
	// the first nameserver from /etc/resolv.conf is used.
	Server string

	// UseTLS enables DNS-over-TLS on port 853.
	UseTLS bool

	// TLSServerName is the SNI value for DNS-over-TLS connections.
	TLSServerName string

	// RequireAD requires the Authenticated Data flag in DNS responses.
	RequireAD bool

	// Timeout is the maximum duration for a DNS query. Default: 5 seconds.
	Timeout time.Duration

	// Logger for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// ZoneRecord is a TLSA record rendered for a DNS zone file.
type ZoneRecord struct {
	// Name is the owner name (e.g., "_443._tcp.api.example.com.").
	Name string

	Usage        uint8
	Selector     uint8
	MatchingType uint8

	// HexData is the hex-encoded Certificate Association Data.
	HexData string

	// ZoneLine is the full line, e.g. "_443._tcp.api.example.com. IN TLSA 3 1 1 ab12...".
	ZoneLine string
}
