// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-pinclient/pkg/dane"
	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

// pinCmd is the parent command for pin operations.
var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Public-key pin operations",
	Long: `Tools for computing "sha256/<base64>" public-key pins.

Subcommands:
  show - Compute the pin of a PEM certificate file
  dane - Resolve pins from a host's TLSA records`,
}

// pinShowCmd computes the pin of a PEM certificate file.
var pinShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the public-key pin of a PEM certificate file",
	Long: `Compute the SHA-256 digest of the SubjectPublicKeyInfo of a PEM
certificate and print it as a pin usable with 'pinclient get --pin'.

With --tlsa-host the matching DANE-EE TLSA record (3 1 1) is printed too.`,
	RunE: runPinShow,
}

// pinDANECmd resolves pins from DNSSEC-signed TLSA records.
var pinDANECmd = &cobra.Command{
	Use:   "dane",
	Short: "Resolve pins from TLSA records",
	Long: `Look up the TLSA records for a host and port and print the pins
derived from them. The DNS response must carry the DNSSEC Authenticated
Data flag unless --insecure-dns is set.`,
	RunE: runPinDANE,
}

func init() {
	pinCmd.AddCommand(pinShowCmd)
	pinCmd.AddCommand(pinDANECmd)

	pinShowCmd.Flags().String("cert-file", "", "path to PEM certificate file (required)")
	pinShowCmd.Flags().String("tlsa-host", "", "also print the TLSA record for this hostname")
	pinShowCmd.Flags().Int("port", defaultHTTPSPort, "port for the TLSA record")

	pinDANECmd.Flags().String("hostname", "", "hostname to look up (required)")
	pinDANECmd.Flags().Int("port", defaultHTTPSPort, "service port")
	pinDANECmd.Flags().String("dns-server", "", "DNS server address (default: /etc/resolv.conf)")
	pinDANECmd.Flags().Bool("dot", false, "use DNS-over-TLS")
	pinDANECmd.Flags().Bool("insecure-dns", false, "accept responses without the DNSSEC AD flag")
}

// runPinShow prints the pin of the certificate in --cert-file.
func runPinShow(cmd *cobra.Command, args []string) error {
	certFile, _ := cmd.Flags().GetString("cert-file")
	tlsaHost, _ := cmd.Flags().GetString("tlsa-host")
	port, _ := cmd.Flags().GetInt("port")

	if certFile == "" {
		return fmt.Errorf("%w: --cert-file is required", ErrInvalidInput)
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%w: --port must be between 1 and 65535", ErrInvalidInput)
	}

	cert, err := loadCertFromPEMFile(certFile)
	if err != nil {
		return err
	}

	fmt.Printf("Pin:     %s\n", pinning.ComputePin(cert))
	fmt.Printf("Subject: %s\n", cert.Subject.String())
	fmt.Printf("Issuer:  %s\n", cert.Issuer.String())

	if tlsaHost != "" {
		record, err := dane.GenerateTLSARecord(cert, tlsaHost, uint16(port))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		fmt.Printf("TLSA:    %s\n", record.ZoneLine)
	}

	return nil
}

// runPinDANE looks up the TLSA records for --hostname and prints the pins
// they yield.
func runPinDANE(cmd *cobra.Command, args []string) error {
	hostname, _ := cmd.Flags().GetString("hostname")
	port, _ := cmd.Flags().GetInt("port")
	dnsServer, _ := cmd.Flags().GetString("dns-server")
	useTLS, _ := cmd.Flags().GetBool("dot")
	insecureDNS, _ := cmd.Flags().GetBool("insecure-dns")

	if hostname == "" {
		return fmt.Errorf("%w: --hostname is required", ErrInvalidInput)
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%w: --port must be between 1 and 65535", ErrInvalidInput)
	}

	resolver, err := dane.NewResolver(&dane.ResolverConfig{
		Server:    dnsServer,
		UseTLS:    useTLS,
		RequireAD: !insecureDNS,
		Logger:    slog.Default(),
	})
	if err != nil {
		return fmt.Errorf("%w: resolver: %w", ErrInvalidInput, err)
	}

	sigCtx, sigStop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer sigStop()

	ctx, cancel := context.WithTimeout(sigCtx, defaultDANELookupTimeout)
	defer cancel()

	slog.Debug("resolving TLSA records", "hostname", hostname, "port", port, "dns_server", resolver.Server())

	records, err := resolver.LookupTLSA(ctx, hostname, uint16(port))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	fmt.Printf("TLSA records for %s:\n", dane.TLSAName(hostname, uint16(port)))
	for i, rec := range records {
		fmt.Printf("  [%d] %s %s %s %s\n", i+1,
			tlsaUsageName(rec.Usage), tlsaSelectorName(rec.Selector),
			tlsaMatchingName(rec.MatchingType), hex.EncodeToString(rec.CertData))
	}

	pin, err := dane.PinsFromTLSA(hostname, records)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	fmt.Println()
	fmt.Printf("Pins for %s:\n", pin.Hostname)
	for _, key := range pin.PublicKeys {
		fmt.Printf("  %s\n", key)
	}
	return nil
}

// loadCertFromPEMFile reads the first certificate from a PEM file.
func loadCertFromPEMFile(certFile string) (*x509.Certificate, error) {
	data, err := os.ReadFile(certFile)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFileOperation, certFile, err)
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM data found in %s", ErrInvalidInput, certFile)
	}

	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing certificate: %w", ErrInvalidInput, err)
	}

	return cert, nil
}

var usageNames = map[uint8]string{
	dane.UsageCAConstraint: "PKIX-TA",
	dane.UsageServiceCert:  "PKIX-EE",
	dane.UsageDANETA:       "DANE-TA",
	dane.UsageDANEEE:       "DANE-EE",
}

var selectorNames = map[uint8]string{
	dane.SelectorFullCert: "Cert",
	dane.SelectorSPKI:     "SPKI",
}

var matchingNames = map[uint8]string{
	dane.MatchingExact:  "Full",
	dane.MatchingSHA256: "SHA2-256",
	dane.MatchingSHA512: "SHA2-512",
}

func tlsaUsageName(usage uint8) string {
	if name, ok := usageNames[usage]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", usage)
}

func tlsaSelectorName(selector uint8) string {
	if name, ok := selectorNames[selector]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", selector)
}

func tlsaMatchingName(matchingType uint8) string {
	if name, ok := matchingNames[matchingType]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", matchingType)
}
