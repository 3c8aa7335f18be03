// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinning

import (
	"crypto/x509"
	"fmt"
	"strings"
)

// Pin is the configured set of public-key pins for one hostname.
type Pin struct {
	// Hostname is the host the pins apply to (e.g., "api.example.com").
	Hostname string `mapstructure:"hostname" yaml:"hostname"`

	// PublicKeys holds "sha256/<base64>" SPKI digests. Entries without the
	// sha256/ prefix are ignored and do not activate pinning for the host.
	PublicKeys []string `mapstructure:"public_keys" yaml:"public_keys"`
}

// Store holds, per hostname, the set of expected public-key pins. A Store is
// immutable after NewStore and safe for concurrent use.
type Store struct {
	pins    map[string][]string
	digests map[string][][]byte
}

// NewStore builds a Store from the configured pins. Hostnames are matched
// case-insensitively. Pin entries for the same hostname are merged.
func NewStore(pins []Pin) (*Store, error) {
	s := &Store{
		pins:    make(map[string][]string),
		digests: make(map[string][][]byte),
	}
	for _, p := range pins {
		host := normalizeHost(p.Hostname)
		if host == "" {
			return nil, ErrInvalidHostname
		}
		for _, key := range p.PublicKeys {
			if !IsSHA256Pin(key) {
				continue
			}
			digest, err := ParsePin(key)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", host, err)
			}
			s.pins[host] = append(s.pins[host], key)
			s.digests[host] = append(s.digests[host], digest)
		}
	}
	return s, nil
}

// Active reports whether pinning is configured for at least one host.
func (s *Store) Active() bool {
	return s != nil && len(s.pins) > 0
}

// HasPins reports whether pinning is active for the host.
func (s *Store) HasPins(hostname string) bool {
	if s == nil {
		return false
	}
	return len(s.pins[normalizeHost(hostname)]) > 0
}

// Pins returns a copy of the pins configured for the host.
func (s *Store) Pins(hostname string) []string {
	if s == nil {
		return nil
	}
	pins := s.pins[normalizeHost(hostname)]
	if len(pins) == 0 {
		return nil
	}
	return append([]string(nil), pins...)
}

// Hostnames returns the pinned hostnames.
func (s *Store) Hostnames() []string {
	if s == nil {
		return nil
	}
	hosts := make([]string, 0, len(s.pins))
	for host := range s.pins {
		hosts = append(hosts, host)
	}
	return hosts
}

// Check verifies the chain against the pins configured for the host. A host
// without pins always passes.
func (s *Store) Check(hostname string, chain []*x509.Certificate) error {
	if !s.HasPins(hostname) {
		return nil
	}
	return VerifyPins(chain, s.digests[normalizeHost(hostname)])
}

func normalizeHost(hostname string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")
}
