// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinning

import (
	"crypto/sha256"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
)

// SHA256Prefix is the algorithm prefix that activates pinning for a host.
const SHA256Prefix = "sha256/"

// ComputePin returns the "sha256/<base64>" pin of a certificate's
// SubjectPublicKeyInfo.
func ComputePin(cert *x509.Certificate) string {
	digest := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
	return SHA256Prefix + base64.StdEncoding.EncodeToString(digest[:])
}

// IsSHA256Pin reports whether the pin carries the sha256/ algorithm prefix.
func IsSHA256Pin(pin string) bool {
	return strings.HasPrefix(pin, SHA256Prefix)
}

// ParsePin decodes a "sha256/<base64>" pin into its raw digest.
func ParsePin(pin string) ([]byte, error) {
	if !IsSHA256Pin(pin) {
		return nil, fmt.Errorf("%w: missing %q prefix in %q", ErrInvalidPinFormat, SHA256Prefix, pin)
	}
	digest, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(pin, SHA256Prefix))
	if err != nil || len(digest) != sha256.Size {
		return nil, fmt.Errorf("%w: expected base64 SHA-256 digest, got %q", ErrInvalidPinFormat, pin)
	}
	return digest, nil
}

// VerifyPins verifies that at least one certificate in the chain matches at
// least one of the expected digests. Returns nil on match, ErrPinMismatch
// otherwise.
func VerifyPins(certs []*x509.Certificate, digests [][]byte) error {
	if len(certs) == 0 {
		return ErrNoCertificates
	}
	for _, cert := range certs {
		if cert == nil {
			continue
		}
		actual := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
		for _, expected := range digests {
			if subtle.ConstantTimeCompare(actual[:], expected) == 1 {
				return nil
			}
		}
	}
	return ErrPinMismatch
}
