// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxTransports is the number of distinct call configurations whose
// connection pools the HTTPEngine keeps alive.
const DefaultMaxTransports = 16

// HTTPEngineConfig configures the net/http backed engine.
type HTTPEngineConfig struct {
	// MaxTransports bounds the transport cache. Defaults to DefaultMaxTransports.
	MaxTransports int

	// Logger for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// HTTPEngine is an Engine on net/http. It speaks HTTP/1.1 only, follows
// redirects, and keeps one transport (connection pool) per distinct
// CallConfig. Evicted transports have their idle connections closed.
type HTTPEngine struct {
	mu         sync.Mutex
	transports *lru.Cache[CallConfig, *http.Transport]
	logger     *slog.Logger
}

// NewHTTPEngine creates a new net/http engine. A nil config uses defaults.
func NewHTTPEngine(cfg *HTTPEngineConfig) (*HTTPEngine, error) {
	if cfg == nil {
		cfg = &HTTPEngineConfig{}
	}

	size := cfg.MaxTransports
	if size <= 0 {
		size = DefaultMaxTransports
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transports, err := lru.NewWithEvict(size, func(_ CallConfig, t *http.Transport) {
		t.CloseIdleConnections()
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &HTTPEngine{
		transports: transports,
		logger:     logger.With("component", "http_engine"),
	}, nil
}

// NewCall creates a call for req. The call does not start until Enqueue.
func (e *HTTPEngine) NewCall(req *EngineRequest, cfg CallConfig) Call {
	ctx, cancel := context.WithCancel(context.Background())
	return &httpCall{
		engine: e,
		req:    req,
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Close drops every cached transport and closes its idle connections.
func (e *HTTPEngine) Close() error {
	e.transports.Purge()
	return nil
}

func (e *HTTPEngine) transport(cfg CallConfig) (*http.Transport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if t, ok := e.transports.Get(cfg); ok {
		return t, nil
	}

	t, err := newTransport(cfg)
	if err != nil {
		return nil, err
	}
	e.transports.Add(cfg, t)
	e.logger.Debug("created transport",
		"proxy", cfg.Proxy,
		"connect_timeout", cfg.ConnectTimeout,
		"cached", e.transports.Len())

	return t, nil
}

func newTransport(cfg CallConfig) (*http.Transport, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.TLSConfig != nil {
		tlsConfig = cfg.TLSConfig.Clone()
	}

	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	dial := func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &timeoutConn{Conn: conn, readTimeout: cfg.ReadTimeout, writeTimeout: cfg.WriteTimeout}, nil
	}

	t := &http.Transport{
		DialContext:         dial,
		DialTLSContext:      dialTLS(dial, tlsConfig, cfg.ConnectTimeout),
		TLSClientConfig:     tlsConfig,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     5 * time.Minute,
	}

	if cfg.Proxy != "" {
		proxyURL, err := url.Parse("http://" + cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("%w: proxy: %w", ErrInvalidConfig, err)
		}
		t.Proxy = http.ProxyURL(proxyURL)
	}

	return t, nil
}

type dialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// dialTLS returns a TLS dialer for direct connections. The dialed host is
// handed to VerifyConnection when the handshake carries no server name,
// which is the case for IP literals.
func dialTLS(dial dialFunc, base *tls.Config, handshakeTimeout time.Duration) dialFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}

		cfg := base.Clone()
		if cfg.ServerName == "" {
			cfg.ServerName = host
		}
		if verify := cfg.VerifyConnection; verify != nil {
			serverName := cfg.ServerName
			cfg.VerifyConnection = func(cs tls.ConnectionState) error {
				if cs.ServerName == "" {
					cs.ServerName = serverName
				}
				return verify(cs)
			}
		}

		if handshakeTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, handshakeTimeout)
			defer cancel()
		}

		conn, err := dial(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		tlsConn := tls.Client(conn, cfg)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return tlsConn, nil
	}
}

// timeoutConn applies per-operation read and write deadlines. A write also
// moves the read deadline, since a pooled connection's reader is already
// blocked in Read when the next request goes out.
type timeoutConn struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func (c *timeoutConn) Read(b []byte) (int, error) {
	if c.readTimeout > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(b)
}

func (c *timeoutConn) Write(b []byte) (int, error) {
	if c.writeTimeout > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return 0, err
		}
	}
	n, err := c.Conn.Write(b)
	if c.readTimeout > 0 {
		if dlErr := c.Conn.SetReadDeadline(time.Now().Add(c.readTimeout)); dlErr != nil && err == nil {
			err = dlErr
		}
	}
	return n, err
}

type httpCall struct {
	engine *HTTPEngine
	req    *EngineRequest
	cfg    CallConfig

	ctx       context.Context
	cancel    context.CancelFunc
	delivered atomic.Bool
}

func (c *httpCall) Request() *EngineRequest {
	return c.req
}

func (c *httpCall) Enqueue(cb Callback) {
	go c.execute(cb)
}

// Cancel aborts the exchange. Once a response has been delivered the body
// belongs to the caller and Cancel has no effect.
func (c *httpCall) Cancel() {
	if c.delivered.Load() {
		return
	}
	c.cancel()
}

func (c *httpCall) execute(cb Callback) {
	resp, err := c.do()
	if err != nil {
		c.cancel()
		cb.OnFailure(c, err)
		return
	}

	c.delivered.Store(true)
	cb.OnResponse(c, c.engineResponse(resp))
}

func (c *httpCall) do() (*http.Response, error) {
	t, err := c.engine.transport(c.cfg)
	if err != nil {
		return nil, err
	}

	req, err := c.httpRequest()
	if err != nil {
		return nil, err
	}

	c.engine.logger.Debug("executing call", "method", req.Method, "url", req.URL.Redacted())

	client := &http.Client{Transport: t}
	return client.Do(req)
}

func (c *httpCall) httpRequest() (*http.Request, error) {
	var body io.Reader
	if c.req.Body != nil {
		body = bytes.NewReader(c.req.Body)
	}

	req, err := http.NewRequestWithContext(c.ctx, c.req.Method, c.req.URL.String(), body)
	if err != nil {
		return nil, err
	}

	// Names are kept as given; net/http would canonicalize them on Add.
	for _, f := range c.req.Header {
		if strings.EqualFold(f.Name, "Host") {
			if len(f.Values) > 0 {
				req.Host = f.Values[0]
			}
			continue
		}
		req.Header[f.Name] = append(req.Header[f.Name], f.Values...)
	}

	if c.req.Body != nil && c.req.ContentType != "" && !hasHeaderFold(req.Header, "Content-Type") {
		req.Header.Set("Content-Type", c.req.ContentType)
	}

	if c.req.NoCache {
		deleteHeaderFold(req.Header, "Cache-Control")
		req.Header.Set("Cache-Control", "no-cache")
	}

	return req, nil
}

func (c *httpCall) engineResponse(resp *http.Response) *EngineResponse {
	out := &EngineResponse{
		StatusCode:    resp.StatusCode,
		Message:       statusMessage(resp),
		Header:        orderedHeader(resp.Header),
		ContentLength: resp.ContentLength,
		URL:           resp.Request.URL,
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		c.cancel()
		out.ContentLength = 0
		return out
	}

	out.Body = &callBody{ReadCloser: resp.Body, cancel: c.cancel}
	return out
}

// callBody releases the call's resources when the caller closes the body.
type callBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *callBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

// statusMessage returns the reason phrase from the status line, which
// net/http stores as "<code> <reason>".
func statusMessage(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

// orderedHeader converts h into a Header sorted by name.
func orderedHeader(h http.Header) Header {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(Header, 0, len(names))
	for _, name := range names {
		out = append(out, HeaderField{Name: name, Values: append([]string(nil), h[name]...)})
	}
	return out
}

func hasHeaderFold(h http.Header, name string) bool {
	for k := range h {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func deleteHeaderFold(h http.Header, name string) {
	for k := range h {
		if strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
}
