// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package trust

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"time"

	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

// Config configures the trust validator.
type Config struct {
	// AcceptUntrusted skips every check and trusts any peer, including one
	// that presents no certificate. Intended for test environments only.
	AcceptUntrusted bool

	// Pins holds the per-host public-key pins. Nil disables pinning.
	Pins *pinning.Store

	// RequirePins rejects hosts without pins once pinning is configured for
	// any host. When false such hosts are only logged.
	RequirePins bool

	// Roots is the anchor pool for chain building. Nil uses the system pool.
	Roots *x509.CertPool

	// AllowUnknownAuthority accepts self-signed certificates presented in
	// the chain as anchors.
	AllowUnknownAuthority bool

	// Now returns the verification time. Defaults to time.Now.
	Now func() time.Time

	// Logger for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Validator orchestrates chain building, hostname matching, and pin checks
// into one decision per handshake. A Validator is immutable after
// construction and safe for concurrent use.
type Validator struct {
	acceptUntrusted bool
	requirePins     bool
	pins            *pinning.Store
	chains          *ChainBuilder
	logger          *slog.Logger
}

// NewValidator creates a new trust validator.
func NewValidator(cfg *Config) (*Validator, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Validator{
		acceptUntrusted: cfg.AcceptUntrusted,
		requirePins:     cfg.RequirePins,
		pins:            cfg.Pins,
		chains:          NewChainBuilder(cfg.Roots, cfg.AllowUnknownAuthority, cfg.Now),
		logger:          logger.With("component", "trust_validator"),
	}, nil
}

// Validate runs the decision pipeline for the chain presented by hostname.
// Each stage is only reached if the previous one passed.
func (v *Validator) Validate(hostname string, rawCerts [][]byte) Decision {
	if v.acceptUntrusted {
		return trusted()
	}

	chain, d := v.chains.Build(rawCerts)
	if !d.Trusted() {
		return v.rejected(hostname, d)
	}

	return v.validateChain(hostname, chain)
}

// ValidateParsed is Validate for certificates already parsed by the TLS stack.
func (v *Validator) ValidateParsed(hostname string, certs []*x509.Certificate) Decision {
	if v.acceptUntrusted {
		return trusted()
	}

	chain, d := v.chains.BuildParsed(certs)
	if !d.Trusted() {
		return v.rejected(hostname, d)
	}

	return v.validateChain(hostname, chain)
}

func (v *Validator) validateChain(hostname string, chain []*x509.Certificate) Decision {
	if !MatchHostname(hostname, chain[0]) {
		return v.rejected(hostname, reject(HostnameMismatch, MessageHostnameMismatch, nil))
	}

	if v.pins.Active() && !v.pins.HasPins(hostname) {
		d := reject(NoPinsForHost, MessageNoPinsForHost+" "+hostname, nil)
		if v.requirePins {
			return v.rejected(hostname, d)
		}
		v.logger.Debug("no pins configured for host", "hostname", hostname)
	}

	if err := v.pins.Check(hostname, chain); err != nil {
		return v.rejected(hostname, reject(PinMismatch, MessagePinMismatch, err))
	}

	return trusted()
}

func (v *Validator) rejected(hostname string, d Decision) Decision {
	v.logger.Warn("server certificate rejected",
		"hostname", hostname, "decision", d.Kind.String(), "reason", d.Message)
	return d
}

// VerifyConnection is a tls.Config.VerifyConnection hook that rejects the
// handshake with an *Error when the validator does not trust the peer.
func (v *Validator) VerifyConnection(cs tls.ConnectionState) error {
	d := v.ValidateParsed(cs.ServerName, cs.PeerCertificates)
	return d.Err(cs.ServerName)
}

// TLSConfig returns a client TLS configuration gated by this validator. The
// platform verifier is bypassed; every handshake is decided by Validate.
// clientCerts are presented when the server requests a client certificate.
func (v *Validator) TLSConfig(clientCerts []tls.Certificate) *tls.Config {
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: true, //nolint:gosec // Verification is performed by VerifyConnection
		VerifyConnection:   v.VerifyConnection,
		Certificates:       clientCerts,
	}
}
