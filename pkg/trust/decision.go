// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

// Package trust validates the certificate chain a TLS peer presents during a
// handshake: it builds and verifies the chain, matches the requested hostname
// against the end-entity certificate's CN and SAN entries, and enforces
// per-host public-key pins. Exactly one Decision is produced per handshake.
package trust

// Kind identifies a trust decision.
type Kind int

const (
	// Trusted accepts the connection.
	Trusted Kind = iota

	// NoCertificate rejects a handshake that presented no certificates.
	NoCertificate

	// NoRoot rejects a single-certificate chain; there is no way to validate
	// a chain of trust without an issuer.
	NoRoot

	// ChainBuildFailure rejects a chain that does not build to an anchor.
	ChainBuildFailure

	// HostnameMismatch rejects a certificate whose CN and SAN entries do not
	// cover the requested hostname.
	HostnameMismatch

	// NoPinsForHost reports that pinning is configured for other hosts but
	// not for this one.
	NoPinsForHost

	// PinMismatch rejects a chain where no certificate matches the host's pins.
	PinMismatch
)

// Failure messages attached to rejecting decisions.
const (
	MessageNoCertificate     = "no certificate presented by the server"
	MessageNoRoot            = "certificate chain has no root, the chain of trust cannot be validated"
	MessageChainBuildFailure = "certificate chain could not be built"
	MessageHostnameMismatch  = "certificate subject name does not match the hostname"
	MessageNoPinsForHost     = "no pins provided for host"
	MessagePinMismatch       = "certificate pin mismatch"
)

var kindNames = map[Kind]string{
	Trusted:           "trusted",
	NoCertificate:     "no certificate",
	NoRoot:            "no root",
	ChainBuildFailure: "chain build failure",
	HostnameMismatch:  "hostname mismatch",
	NoPinsForHost:     "no pins for host",
	PinMismatch:       "pin mismatch",
}

// String returns the decision kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Decision is the verdict for one handshake.
type Decision struct {
	Kind    Kind
	Message string

	// Cause is the underlying error for ChainBuildFailure and PinMismatch.
	Cause error
}

// Trusted reports whether the decision accepts the connection.
func (d Decision) Trusted() bool {
	return d.Kind == Trusted
}

// Err returns the decision as an *Error for the given host, or nil when the
// decision is Trusted.
func (d Decision) Err(hostname string) error {
	if d.Trusted() {
		return nil
	}
	return &Error{Kind: d.Kind, Hostname: hostname, Message: d.Message, Err: d.Cause}
}

func trusted() Decision {
	return Decision{Kind: Trusted}
}

func reject(kind Kind, message string, cause error) Decision {
	return Decision{Kind: kind, Message: message, Cause: cause}
}
