// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package trust

import (
	"bytes"
	"crypto/x509"
	"fmt"
	"time"
)

// ChainBuilder builds and verifies a certificate chain from the certificates
// presented by a peer. The first certificate is the end-entity certificate;
// every following certificate is offered as an intermediate. Revocation is
// never consulted.
type ChainBuilder struct {
	roots                 *x509.CertPool
	allowUnknownAuthority bool
	now                   func() time.Time
}

// NewChainBuilder creates a ChainBuilder. A nil roots pool verifies against
// the system trust store. When allowUnknownAuthority is set, self-signed
// certificates presented in the chain are accepted as anchors.
func NewChainBuilder(roots *x509.CertPool, allowUnknownAuthority bool, now func() time.Time) *ChainBuilder {
	if now == nil {
		now = time.Now
	}
	return &ChainBuilder{
		roots:                 roots,
		allowUnknownAuthority: allowUnknownAuthority,
		now:                   now,
	}
}

// Build parses and verifies the raw DER chain. On success it returns the
// verified chain (leaf first, anchor last) and a Trusted decision.
func (b *ChainBuilder) Build(rawCerts [][]byte) ([]*x509.Certificate, Decision) {
	switch len(rawCerts) {
	case 0:
		return nil, reject(NoCertificate, MessageNoCertificate, nil)
	case 1:
		return nil, reject(NoRoot, MessageNoRoot, nil)
	}

	certs := make([]*x509.Certificate, 0, len(rawCerts))
	for i, raw := range rawCerts {
		cert, err := x509.ParseCertificate(raw)
		if err != nil {
			return nil, reject(ChainBuildFailure, MessageChainBuildFailure,
				fmt.Errorf("parse certificate %d: %w", i, err))
		}
		certs = append(certs, cert)
	}

	return b.BuildParsed(certs)
}

// BuildParsed verifies an already parsed chain.
func (b *ChainBuilder) BuildParsed(certs []*x509.Certificate) ([]*x509.Certificate, Decision) {
	switch len(certs) {
	case 0:
		return nil, reject(NoCertificate, MessageNoCertificate, nil)
	case 1:
		return nil, reject(NoRoot, MessageNoRoot, nil)
	}

	leaf := certs[0]
	intermediates := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediates.AddCert(cert)
	}

	chains, err := leaf.Verify(x509.VerifyOptions{
		Roots:         b.anchors(certs[1:]),
		Intermediates: intermediates,
		CurrentTime:   b.now(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	})
	if err != nil {
		return nil, reject(ChainBuildFailure, MessageChainBuildFailure, err)
	}

	return chains[0], trusted()
}

// anchors returns the root pool for verification. Without
// allowUnknownAuthority the configured pool is used as-is (nil selects the
// system pool inside x509).
func (b *ChainBuilder) anchors(presented []*x509.Certificate) *x509.CertPool {
	if !b.allowUnknownAuthority {
		return b.roots
	}

	var pool *x509.CertPool
	if b.roots != nil {
		pool = b.roots.Clone()
	} else {
		sys, err := x509.SystemCertPool()
		if err != nil {
			sys = x509.NewCertPool()
		}
		pool = sys
	}

	for _, cert := range presented {
		if isSelfSigned(cert) {
			pool.AddCert(cert)
		}
	}
	return pool
}

func isSelfSigned(cert *x509.Certificate) bool {
	if !bytes.Equal(cert.RawIssuer, cert.RawSubject) {
		return false
	}
	return cert.CheckSignatureFrom(cert) == nil
}
