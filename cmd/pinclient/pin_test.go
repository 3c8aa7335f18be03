// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinShow_MissingCertFile(t *testing.T) {
	resetFlags(t, pinShowCmd)

	err := runPinShow(pinShowCmd, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPinShow_Success(t *testing.T) {
	resetFlags(t, pinShowCmd)
	require.NoError(t, pinShowCmd.Flags().Set("cert-file", createTestCertFile(t)))

	assert.NoError(t, runPinShow(pinShowCmd, nil))
}

func TestPinShow_WithTLSAHost(t *testing.T) {
	resetFlags(t, pinShowCmd)
	require.NoError(t, pinShowCmd.Flags().Set("cert-file", createTestCertFile(t)))
	require.NoError(t, pinShowCmd.Flags().Set("tlsa-host", "api.example.com"))
	require.NoError(t, pinShowCmd.Flags().Set("port", "8443"))

	assert.NoError(t, runPinShow(pinShowCmd, nil))
}

func TestPinShow_InvalidPort(t *testing.T) {
	resetFlags(t, pinShowCmd)
	require.NoError(t, pinShowCmd.Flags().Set("cert-file", createTestCertFile(t)))
	require.NoError(t, pinShowCmd.Flags().Set("port", "0"))

	err := runPinShow(pinShowCmd, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPinShow_NonexistentFile(t *testing.T) {
	resetFlags(t, pinShowCmd)
	require.NoError(t, pinShowCmd.Flags().Set("cert-file", filepath.Join(t.TempDir(), "missing.pem")))

	err := runPinShow(pinShowCmd, nil)
	assert.ErrorIs(t, err, ErrFileOperation)
}

func TestLoadCertFromPEMFile_NotPEM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a certificate"), 0644))

	_, err := loadCertFromPEMFile(path)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPinDANE_MissingHostname(t *testing.T) {
	resetFlags(t, pinDANECmd)

	err := runPinDANE(pinDANECmd, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPinDANE_InvalidPort(t *testing.T) {
	resetFlags(t, pinDANECmd)
	require.NoError(t, pinDANECmd.Flags().Set("hostname", "example.com"))
	require.NoError(t, pinDANECmd.Flags().Set("port", "70000"))

	err := runPinDANE(pinDANECmd, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPinDANE_Success(t *testing.T) {
	ca := newTestCA(t)
	addr := startTLSADNS(t, ca.cert, true)

	resetFlags(t, pinDANECmd)
	require.NoError(t, pinDANECmd.Flags().Set("hostname", "api.example.com"))
	require.NoError(t, pinDANECmd.Flags().Set("dns-server", addr))

	assert.NoError(t, runPinDANE(pinDANECmd, nil))
}

func TestPinDANE_RequiresAuthenticatedData(t *testing.T) {
	ca := newTestCA(t)
	addr := startTLSADNS(t, ca.cert, false)

	resetFlags(t, pinDANECmd)
	require.NoError(t, pinDANECmd.Flags().Set("hostname", "api.example.com"))
	require.NoError(t, pinDANECmd.Flags().Set("dns-server", addr))

	err := runPinDANE(pinDANECmd, nil)
	assert.ErrorIs(t, err, ErrLookupFailed)

	require.NoError(t, pinDANECmd.Flags().Set("insecure-dns", "true"))
	assert.NoError(t, runPinDANE(pinDANECmd, nil))
}

func TestTLSANames(t *testing.T) {
	assert.Equal(t, "DANE-EE", tlsaUsageName(3))
	assert.Equal(t, "SPKI", tlsaSelectorName(1))
	assert.Equal(t, "SHA2-256", tlsaMatchingName(1))
	assert.Equal(t, "Unknown(9)", tlsaUsageName(9))
	assert.Equal(t, "Unknown(9)", tlsaSelectorName(9))
	assert.Equal(t, "Unknown(9)", tlsaMatchingName(9))
}
