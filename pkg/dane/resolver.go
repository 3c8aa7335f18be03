// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package dane

import (
	"context"
	"crypto/tls"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

const (
	defaultTimeout = 5 * time.Second
	defaultDNSPort = "53"
	defaultDoTPort = "853"
	resolvConfPath = "/etc/resolv.conf"
	maxHostnameLen = 253
)

// Resolver looks up TLSA records with optional DNS-over-TLS. A Resolver is
// safe for concurrent use.
type Resolver struct {
	client    *dns.Client
	server    string
	requireAD bool
	logger    *slog.Logger
}

// NewResolver creates a resolver from cfg. A zero Timeout defaults to five
// seconds; a server given without a port gets 53, or 853 with UseTLS.
func NewResolver(cfg *ResolverConfig) (*Resolver, error) {
	if cfg == nil {
		return nil, ErrResolverConfig
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &dns.Client{Net: "udp", Timeout: timeout}
	port := defaultDNSPort
	if cfg.UseTLS {
		client.Net = "tcp-tls"
		client.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: cfg.TLSServerName,
		}
		port = defaultDoTPort
	}

	server, err := resolveServer(cfg.Server, port)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		client:    client,
		server:    server,
		requireAD: cfg.RequireAD,
		logger:    logger.With("component", "dane_resolver"),
	}, nil
}

func resolveServer(server, port string) (string, error) {
	if server != "" {
		if _, _, err := net.SplitHostPort(server); err != nil {
			return net.JoinHostPort(server, port), nil
		}
		return server, nil
	}

	systemCfg, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolverConfig, err)
	}
	if len(systemCfg.Servers) == 0 {
		return "", fmt.Errorf("%w: no nameservers in %s", ErrResolverConfig, resolvConfPath)
	}
	if systemCfg.Port != "" {
		port = systemCfg.Port
	}
	return net.JoinHostPort(systemCfg.Servers[0], port), nil
}

// Server returns the resolver address queries are sent to.
func (r *Resolver) Server() string {
	return r.server
}

// LookupTLSA queries "_<port>._tcp.<hostname>." for TLSA records. Records
// whose association data is not valid hex are skipped.
func (r *Resolver) LookupTLSA(ctx context.Context, hostname string, port uint16) ([]*TLSARecord, error) {
	if err := validateHostname(hostname); err != nil {
		return nil, err
	}
	if port == 0 {
		return nil, ErrInvalidPort
	}

	qname := TLSAName(hostname, port)
	msg := new(dns.Msg)
	msg.SetQuestion(qname, dns.TypeTLSA)
	msg.SetEdns0(4096, true)
	msg.RecursionDesired = true

	r.logger.Debug("querying TLSA records", "name", qname, "server", r.server)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.server)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDNSLookupFailed, err)
	}
	if resp == nil {
		return nil, ErrDNSLookupFailed
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: rcode %s", ErrDNSLookupFailed, dns.RcodeToString[resp.Rcode])
	}
	if r.requireAD && !resp.AuthenticatedData {
		return nil, ErrDNSSECRequired
	}

	records := r.tlsaRecords(qname, resp.Answer)
	if len(records) == 0 {
		return nil, ErrNoTLSARecords
	}

	return records, nil
}

// tlsaRecords converts the TLSA answers, skipping other record types and
// records without usable association data.
func (r *Resolver) tlsaRecords(qname string, answer []dns.RR) []*TLSARecord {
	records := make([]*TLSARecord, 0, len(answer))
	for _, rr := range answer {
		tlsa, ok := rr.(*dns.TLSA)
		if !ok {
			continue
		}
		data, err := hex.DecodeString(tlsa.Certificate)
		if err != nil || len(data) == 0 {
			r.logger.Debug("skipping TLSA record with malformed data", "name", qname)
			continue
		}
		records = append(records, &TLSARecord{
			Usage:        tlsa.Usage,
			Selector:     tlsa.Selector,
			MatchingType: tlsa.MatchingType,
			CertData:     data,
		})
	}
	return records
}

// ResolvePins looks up the TLSA records for hostname:port and converts them
// into a pin entry for hostname.
func (r *Resolver) ResolvePins(ctx context.Context, hostname string, port uint16) (pinning.Pin, error) {
	records, err := r.LookupTLSA(ctx, hostname, port)
	if err != nil {
		return pinning.Pin{}, err
	}

	pin, err := PinsFromTLSA(hostname, records)
	if err != nil {
		return pinning.Pin{}, err
	}

	r.logger.Info("resolved pins from DNS",
		"hostname", hostname, "records", len(records), "pins", len(pin.PublicKeys))

	return pin, nil
}

// TLSAName returns the absolute owner name "_<port>._tcp.<hostname>.".
func TLSAName(hostname string, port uint16) string {
	return fmt.Sprintf("_%d._tcp.%s", port, dns.Fqdn(hostname))
}

func validateHostname(hostname string) error {
	if hostname == "" || len(hostname) > maxHostnameLen || strings.ContainsRune(hostname, 0) {
		return ErrInvalidHostname
	}
	return nil
}
