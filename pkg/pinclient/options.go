// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"crypto/x509"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

// Options configures a Client.
type Options struct {
	// AcceptUntrustedCertificates trusts every server certificate and
	// disables pinning. Intended for test environments only.
	AcceptUntrustedCertificates bool

	// Pins holds the per-host public-key pins.
	Pins []pinning.Pin

	// RequirePins rejects hosts without pins once any host is pinned.
	RequirePins bool

	// RootCAs is the anchor pool for chain validation. Nil uses the system pool.
	RootCAs *x509.CertPool

	// AllowUnknownAuthority trusts self-signed certificates presented in
	// the server chain as anchors.
	AllowUnknownAuthority bool

	// ClientCertificate is presented when the server requests one.
	ClientCertificate *ClientCertificate

	// KeyLoader decodes ClientCertificate. Defaults to PKCS12Loader.
	KeyLoader KeyMaterialLoader

	// CookieStore supplies cookies for requests and stores response cookies.
	CookieStore http.CookieJar

	// Proxy routes requests through an HTTP proxy.
	Proxy *Proxy

	// ThrowOnCaptiveNetwork fails a request whose response came from a
	// different host than requested.
	ThrowOnCaptiveNetwork bool

	// DisableCaching sends every request with Cache-Control: no-cache.
	DisableCaching bool

	// Timeout bounds the connect, write and read phases of a call
	// individually. Zero means no per-phase timeout.
	Timeout time.Duration

	// HeaderSeparators overrides or extends the per-header join separators.
	HeaderSeparators map[string]string

	// Engine performs the network exchange. Defaults to an HTTPEngine owned
	// by the client.
	Engine Engine

	// Logger for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Proxy is the address of an HTTP proxy.
type Proxy struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// Address returns the proxy as "host:port".
func (p *Proxy) Address() (string, error) {
	if p.Host == "" {
		return "", fmt.Errorf("%w: proxy host is required", ErrInvalidConfig)
	}
	if p.Port <= 0 || p.Port > 65535 {
		return "", fmt.Errorf("%w: proxy port %d out of range", ErrInvalidConfig, p.Port)
	}
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port)), nil
}
