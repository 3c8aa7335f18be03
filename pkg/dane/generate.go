// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package dane

import (
	"crypto/x509"
	"encoding/hex"
	"fmt"
)

// GenerateTLSARecord renders the DANE-EE SPKI SHA-256 record (3 1 1) for
// cert, the form PinsFromTLSA maps one-to-one onto a pin.
func GenerateTLSARecord(cert *x509.Certificate, hostname string, port uint16) (*ZoneRecord, error) {
	return GenerateTLSARecordFull(cert, hostname, port, UsageDANEEE, SelectorSPKI, MatchingSHA256)
}

// GenerateTLSARecordFull renders a TLSA record with explicit parameters.
func GenerateTLSARecordFull(cert *x509.Certificate, hostname string, port uint16, usage, selector, matchingType uint8) (*ZoneRecord, error) {
	if cert == nil {
		return nil, ErrInvalidCertificate
	}
	if err := validateHostname(hostname); err != nil {
		return nil, err
	}
	if port == 0 {
		return nil, ErrInvalidPort
	}

	data, err := AssociationData(cert, selector, matchingType)
	if err != nil {
		return nil, err
	}

	name := TLSAName(hostname, port)
	hexData := hex.EncodeToString(data)

	return &ZoneRecord{
		Name:         name,
		Usage:        usage,
		Selector:     selector,
		MatchingType: matchingType,
		HexData:      hexData,
		ZoneLine:     fmt.Sprintf("%s IN TLSA %d %d %d %s", name, usage, selector, matchingType, hexData),
	}, nil
}
