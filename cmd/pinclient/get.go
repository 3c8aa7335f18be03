// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/net/publicsuffix"

	"github.com/jeremyhahn/go-pinclient/pkg/dane"
	"github.com/jeremyhahn/go-pinclient/pkg/pinclient"
	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
)

const (
	// defaultGetTimeout bounds each phase of a request.
	defaultGetTimeout = 30 * time.Second

	// defaultDANELookupTimeout bounds the TLSA lookup made by --dane.
	defaultDANELookupTimeout = 10 * time.Second

	defaultHTTPSPort = 443
)

// getCmd sends one request through the pinned client.
var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "Send a request through the pinned client",
	Long: `Send an HTTP request whose server certificate must pass chain
validation, hostname matching and, when configured, public-key pinning.
The response body is written to --output or stdout.

Pins are given as host=sha256/<base64> and may be repeated:

  pinclient get https://api.example.com/ \
    --pin api.example.com=sha256/AAAA... \
    --pin api.example.com=sha256/BBBB...

With --dane the pins for the URL host are also resolved from its
DNSSEC-signed TLSA records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	f := getCmd.Flags()
	f.StringArray("pin", nil, "public-key pin as host=sha256/<base64> (repeatable)")
	f.Bool("require-pins", false, "reject hosts without pins once any host is pinned")
	f.Bool("insecure", false, "accept any server certificate (testing only)")
	f.Bool("allow-unknown-authority", false, "trust self-signed certificates in the server chain")
	f.String("ca-file", "", "PEM file with trusted root certificates (default: system roots)")
	f.Bool("captive", false, "fail when the response is served by a different host")
	f.Bool("no-cache", false, "send Cache-Control: no-cache")
	f.Duration("timeout", defaultGetTimeout, "connect, write and read timeout")
	f.String("proxy", "", "HTTP proxy as host:port")
	f.String("client-cert", "", "PKCS#12 client certificate file")
	f.String("passphrase", "", "passphrase for --client-cert")
	f.StringArrayP("header", "H", nil, "request header as 'Name: value' (repeatable)")
	f.StringP("method", "X", "GET", "request method")
	f.String("data", "", "request body")
	f.String("content-type", "", "content type of --data")
	f.Bool("dane", false, "add pins resolved from the host's TLSA records")
	f.String("dns-server", "", "DNS server for --dane (default: /etc/resolv.conf)")
	f.Bool("progress", false, "show a download progress bar")
	f.String("config", "", "YAML config file")
}

// runGet builds a client from the config file and flags, sends the request
// and writes the body out.
func runGet(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: exactly one URL is required", ErrInvalidInput)
	}

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	opts, err := clientOptions(cmd, cfg)
	if err != nil {
		return err
	}

	req, err := buildRequest(cmd, args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	useDANE := cfg.DANE.Enabled
	if cmd.Flags().Changed("dane") {
		useDANE, _ = cmd.Flags().GetBool("dane")
	}
	if useDANE && !opts.AcceptUntrustedCertificates {
		dnsServer := cfg.DANE.DNSServer
		if cmd.Flags().Changed("dns-server") {
			dnsServer, _ = cmd.Flags().GetString("dns-server")
		}
		pin, err := resolveDANEPins(ctx, req.URL, dnsServer)
		if err != nil {
			return err
		}
		opts.Pins = append(opts.Pins, pin)
	}

	client, err := pinclient.NewClient(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	defer client.Close()

	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress && !quiet {
		ctx = pinclient.WithProgress(ctx, progressBar())
	}

	slog.Debug("sending request", "method", req.Method, "url", req.URL.String())

	resp, err := client.Send(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading body: %w", ErrRequestFailed, err)
	}

	slog.Info("response received",
		"status", resp.StatusCode,
		"reason", resp.Reason,
		"url", resp.URL,
		"size", humanize.Bytes(uint64(len(body))))

	return writeOutput(body)
}

// clientOptions merges the config file with the command line flags.
func clientOptions(cmd *cobra.Command, cfg *fileConfig) (*pinclient.Options, error) {
	flags := cmd.Flags()

	opts := &pinclient.Options{
		AcceptUntrustedCertificates: cfg.Insecure,
		Pins:                        cfg.Pins,
		RequirePins:                 cfg.RequirePins,
		AllowUnknownAuthority:       cfg.AllowUnknownAuthority,
		ClientCertificate:           cfg.ClientCertificate,
		Proxy:                       cfg.Proxy,
		ThrowOnCaptiveNetwork:       cfg.ThrowOnCaptiveNetwork,
		DisableCaching:              cfg.DisableCaching,
		Timeout:                     cfg.Timeout,
		HeaderSeparators:            cfg.HeaderSeparators,
		Logger:                      slog.Default(),
	}

	overrideBool(cmd, "insecure", &opts.AcceptUntrustedCertificates)
	overrideBool(cmd, "require-pins", &opts.RequirePins)
	overrideBool(cmd, "allow-unknown-authority", &opts.AllowUnknownAuthority)
	overrideBool(cmd, "captive", &opts.ThrowOnCaptiveNetwork)
	overrideBool(cmd, "no-cache", &opts.DisableCaching)

	if flags.Changed("timeout") || opts.Timeout == 0 {
		opts.Timeout, _ = flags.GetDuration("timeout")
	}

	pinValues, _ := flags.GetStringArray("pin")
	pins, err := parsePins(pinValues)
	if err != nil {
		return nil, err
	}
	opts.Pins = append(opts.Pins, pins...)

	caFile := cfg.CAFile
	if flags.Changed("ca-file") {
		caFile, _ = flags.GetString("ca-file")
	}
	if caFile != "" {
		pool, err := loadCertPool(caFile)
		if err != nil {
			return nil, err
		}
		opts.RootCAs = pool
	}

	if proxyAddr, _ := flags.GetString("proxy"); proxyAddr != "" {
		proxy, err := parseProxy(proxyAddr)
		if err != nil {
			return nil, err
		}
		opts.Proxy = proxy
	}

	if certFile, _ := flags.GetString("client-cert"); certFile != "" {
		data, err := os.ReadFile(certFile)
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrFileOperation, certFile, err)
		}
		opts.ClientCertificate = &pinclient.ClientCertificate{
			RawData: base64.StdEncoding.EncodeToString(data),
		}
	}
	if flags.Changed("passphrase") && opts.ClientCertificate != nil {
		cc := *opts.ClientCertificate
		cc.Passphrase, _ = flags.GetString("passphrase")
		opts.ClientCertificate = &cc
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("%w: cookie jar: %w", ErrInvalidInput, err)
	}
	opts.CookieStore = jar

	return opts, nil
}

func overrideBool(cmd *cobra.Command, name string, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst, _ = cmd.Flags().GetBool(name)
	}
}

// buildRequest assembles the request from the URL argument and the
// method, header and data flags.
func buildRequest(cmd *cobra.Command, rawURL string) (*pinclient.Request, error) {
	flags := cmd.Flags()
	method, _ := flags.GetString("method")
	data, _ := flags.GetString("data")
	contentType, _ := flags.GetString("content-type")

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid URL %q", ErrInvalidInput, rawURL)
	}

	var content *pinclient.Content
	if flags.Changed("data") {
		content = pinclient.NewBytesContent([]byte(data), contentType)
	}

	req, err := pinclient.NewRequest(strings.ToUpper(method), rawURL, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	headers, _ := flags.GetStringArray("header")
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: header %q is not 'Name: value'", ErrInvalidInput, h)
		}
		req.Header.Add(name, strings.TrimSpace(value))
	}

	return req, nil
}

// parsePins groups host=sha256/<base64> values by host in first-seen order.
func parsePins(values []string) ([]pinning.Pin, error) {
	var pins []pinning.Pin
	index := make(map[string]int)

	for _, v := range values {
		host, key, ok := strings.Cut(v, "=")
		host = strings.ToLower(strings.TrimSpace(host))
		key = strings.TrimSpace(key)
		if !ok || host == "" {
			return nil, fmt.Errorf("%w: pin %q is not host=sha256/<base64>", ErrInvalidInput, v)
		}
		if _, err := pinning.ParsePin(key); err != nil {
			return nil, fmt.Errorf("%w: pin for %s: %w", ErrInvalidInput, host, err)
		}

		i, seen := index[host]
		if !seen {
			i = len(pins)
			index[host] = i
			pins = append(pins, pinning.Pin{Hostname: host})
		}
		pins[i].PublicKeys = append(pins[i].PublicKeys, key)
	}

	return pins, nil
}

func parseProxy(addr string) (*pinclient.Proxy, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: proxy %q: %w", ErrInvalidInput, addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("%w: proxy port %q: %w", ErrInvalidInput, portStr, err)
	}
	return &pinclient.Proxy{Host: host, Port: port}, nil
}

func loadCertPool(path string) (*x509.CertPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrFileOperation, path, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(data) {
		return nil, fmt.Errorf("%w: no certificates found in %s", ErrInvalidInput, path)
	}
	return pool, nil
}

// resolveDANEPins resolves the TLSA pins for the host and port of u.
func resolveDANEPins(ctx context.Context, u *url.URL, dnsServer string) (pinning.Pin, error) {
	port := uint16(defaultHTTPSPort)
	if p := u.Port(); p != "" {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return pinning.Pin{}, fmt.Errorf("%w: port %q: %w", ErrInvalidInput, p, err)
		}
		port = uint16(n)
	}

	resolver, err := dane.NewResolver(&dane.ResolverConfig{
		Server:    dnsServer,
		RequireAD: true,
		Logger:    slog.Default(),
	})
	if err != nil {
		return pinning.Pin{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultDANELookupTimeout)
	defer cancel()

	pin, err := resolver.ResolvePins(ctx, u.Hostname(), port)
	if err != nil {
		return pinning.Pin{}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}
	return pin, nil
}

// progressBar renders download progress on stderr. The bar is created on
// the first callback, once the expected length is known.
func progressBar() pinclient.ProgressFunc {
	var bar *progressbar.ProgressBar
	return func(transferred, expected int64) {
		if bar == nil {
			bar = progressbar.DefaultBytes(expected, "downloading")
		}
		_ = bar.Set64(transferred)
	}
}
