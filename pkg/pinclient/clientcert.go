// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"crypto/tls"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

// ClientCertificate is a base64-encoded PKCS#12 archive holding the client
// certificate and private key presented when a server requests one.
type ClientCertificate struct {
	RawData    string `mapstructure:"raw_data" yaml:"raw_data"`
	Passphrase string `mapstructure:"passphrase" yaml:"passphrase"`
}

// KeyMaterialLoader turns PKCS#12 data into TLS key material.
type KeyMaterialLoader interface {
	LoadKeyMaterial(pkcs12Data []byte, passphrase string) (tls.Certificate, error)
}

// PKCS12Loader loads key material with golang.org/x/crypto/pkcs12. It
// supports archives holding a single certificate and key.
type PKCS12Loader struct{}

// LoadKeyMaterial decodes data with passphrase into a TLS certificate.
func (PKCS12Loader) LoadKeyMaterial(data []byte, passphrase string) (tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(data, passphrase)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrInvalidClientCertificate, err)
	}

	var pemData []byte
	for _, b := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(b)...)
	}

	cert, err := tls.X509KeyPair(pemData, pemData)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", ErrInvalidClientCertificate, err)
	}
	return cert, nil
}

func loadClientCertificate(loader KeyMaterialLoader, cc *ClientCertificate) (tls.Certificate, error) {
	data, err := base64.StdEncoding.DecodeString(cc.RawData)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: raw data is not base64: %w", ErrInvalidClientCertificate, err)
	}
	if len(data) == 0 {
		return tls.Certificate{}, fmt.Errorf("%w: raw data is empty", ErrInvalidClientCertificate)
	}
	return loader.LoadKeyMaterial(data, cc.Passphrase)
}
