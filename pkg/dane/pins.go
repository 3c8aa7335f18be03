// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package dane

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"

	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

// PinsFromTLSA converts TLSA records into a pin entry for hostname. A record
// is usable when it identifies a public key by SHA-256 of its SPKI, carries
// the SPKI itself, or carries a full certificate. Records matched by a
// full-certificate digest or by SHA-512 cannot be turned into SPKI pins and
// are skipped. Duplicate pins are collapsed.
func PinsFromTLSA(hostname string, records []*TLSARecord) (pinning.Pin, error) {
	if err := validateHostname(hostname); err != nil {
		return pinning.Pin{}, err
	}

	pin := pinning.Pin{Hostname: hostname}
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		digest, ok := spkiDigest(record)
		if !ok {
			continue
		}
		encoded := pinning.SHA256Prefix + base64.StdEncoding.EncodeToString(digest)
		if _, dup := seen[encoded]; dup {
			continue
		}
		seen[encoded] = struct{}{}
		pin.PublicKeys = append(pin.PublicKeys, encoded)
	}

	if len(pin.PublicKeys) == 0 {
		return pinning.Pin{}, ErrNoUsableRecords
	}
	return pin, nil
}

func spkiDigest(record *TLSARecord) ([]byte, bool) {
	if record == nil {
		return nil, false
	}

	switch {
	case record.Selector == SelectorSPKI && record.MatchingType == MatchingSHA256:
		if len(record.CertData) != sha256.Size {
			return nil, false
		}
		return record.CertData, true

	case record.Selector == SelectorSPKI && record.MatchingType == MatchingExact:
		sum := sha256.Sum256(record.CertData)
		return sum[:], true

	case record.Selector == SelectorFullCert && record.MatchingType == MatchingExact:
		cert, err := x509.ParseCertificate(record.CertData)
		if err != nil {
			return nil, false
		}
		sum := sha256.Sum256(cert.RawSubjectPublicKeyInfo)
		return sum[:], true
	}

	return nil, false
}

// AssociationData computes the Certificate Association Data for cert using
// the given selector and matching type.
func AssociationData(cert *x509.Certificate, selector, matchingType uint8) ([]byte, error) {
	if cert == nil {
		return nil, ErrInvalidCertificate
	}

	var selected []byte
	switch selector {
	case SelectorFullCert:
		selected = cert.Raw
	case SelectorSPKI:
		selected = cert.RawSubjectPublicKeyInfo
	default:
		return nil, ErrUnsupportedSelector
	}

	switch matchingType {
	case MatchingExact:
		return selected, nil
	case MatchingSHA256:
		sum := sha256.Sum256(selected)
		return sum[:], nil
	case MatchingSHA512:
		sum := sha512.Sum512(selected)
		return sum[:], nil
	default:
		return nil, ErrUnsupportedMatching
	}
}
