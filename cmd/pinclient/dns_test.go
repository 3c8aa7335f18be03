// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import (
	"crypto/x509"
	"encoding/hex"
	"net"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-pinclient/pkg/dane"
)

// startTLSADNS serves a DANE-EE SPKI SHA-256 record for cert on every TLSA
// query and returns the server address.
func startTLSADNS(t *testing.T, cert *x509.Certificate, setAD bool) string {
	t.Helper()

	data, err := dane.AssociationData(cert, dane.SelectorSPKI, dane.MatchingSHA256)
	require.NoError(t, err)

	handler := dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)
		m.SetReply(r)
		m.AuthenticatedData = setAD

		for _, q := range r.Question {
			if q.Qtype != dns.TypeTLSA {
				continue
			}
			m.Answer = append(m.Answer, &dns.TLSA{
				Hdr:          dns.RR_Header{Name: q.Name, Rrtype: dns.TypeTLSA, Class: dns.ClassINET, Ttl: 300},
				Usage:        dane.UsageDANEEE,
				Selector:     dane.SelectorSPKI,
				MatchingType: dane.MatchingSHA256,
				Certificate:  hex.EncodeToString(data),
			})
		}
		_ = w.WriteMsg(m)
	})

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &dns.Server{PacketConn: pc, Handler: handler}
	started := make(chan struct{})
	server.NotifyStartedFunc = func() { close(started) }

	go func() {
		_ = server.ActivateAndServe()
	}()

	<-started
	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	return pc.LocalAddr().String()
}
