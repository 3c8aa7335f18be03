// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

// Package pinclient issues HTTP(S) requests through a callback-driven engine
// while enforcing server trust: certificate pinning, CN/SAN hostname checks
// and captive-network detection. Requests and responses use a
// transport-independent model; cancellation follows the context passed to
// Send.
package pinclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/jeremyhahn/go-pinclient/pkg/pinning"
	"github.com/jeremyhahn/go-pinclient/pkg/trust"
)

// Client sends requests through an Engine. A Client is safe for concurrent
// use; its trust configuration is fixed at construction.
type Client struct {
	engine     Engine
	ownsEngine bool
	validator  *trust.Validator
	tlsConfig  *tls.Config
	proxy      string
	timeout    time.Duration
	cookies    http.CookieJar
	separators map[string]string
	progress   *ProgressRegistry

	throwOnCaptiveNetwork bool
	disableCaching        bool

	logger *slog.Logger
}

// NewClient creates a client from opts.
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		return nil, ErrInvalidConfig
	}
	if opts.Timeout < 0 {
		return nil, fmt.Errorf("%w: negative timeout", ErrInvalidConfig)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var pins *pinning.Store
	if !opts.AcceptUntrustedCertificates {
		store, err := pinning.NewStore(opts.Pins)
		if err != nil {
			return nil, fmt.Errorf("%w: pins: %w", ErrInvalidConfig, err)
		}
		pins = store
	}

	validator, err := trust.NewValidator(&trust.Config{
		AcceptUntrusted:       opts.AcceptUntrustedCertificates,
		Pins:                  pins,
		RequirePins:           opts.RequirePins,
		Roots:                 opts.RootCAs,
		AllowUnknownAuthority: opts.AllowUnknownAuthority,
		Logger:                logger,
	})
	if err != nil {
		return nil, err
	}

	var clientCerts []tls.Certificate
	if opts.ClientCertificate != nil {
		loader := opts.KeyLoader
		if loader == nil {
			loader = PKCS12Loader{}
		}
		cert, err := loadClientCertificate(loader, opts.ClientCertificate)
		if err != nil {
			return nil, err
		}
		clientCerts = append(clientCerts, cert)
	}

	var proxy string
	if opts.Proxy != nil {
		if proxy, err = opts.Proxy.Address(); err != nil {
			return nil, err
		}
	}

	separators := DefaultHeaderSeparators()
	maps.Copy(separators, opts.HeaderSeparators)

	engine, ownsEngine := opts.Engine, false
	if engine == nil {
		if engine, err = NewHTTPEngine(&HTTPEngineConfig{Logger: logger}); err != nil {
			return nil, err
		}
		ownsEngine = true
	}

	return &Client{
		engine:                engine,
		ownsEngine:            ownsEngine,
		validator:             validator,
		tlsConfig:             validator.TLSConfig(clientCerts),
		proxy:                 proxy,
		timeout:               opts.Timeout,
		cookies:               opts.CookieStore,
		separators:            separators,
		progress:              NewProgressRegistry(),
		throwOnCaptiveNetwork: opts.ThrowOnCaptiveNetwork,
		disableCaching:        opts.DisableCaching,
		logger:                logger.With("component", "pinclient"),
	}, nil
}

// Send performs req and returns its response. The response body is
// streamed; the caller must close it. Cancelling ctx before the response
// arrives aborts the call with ErrOperationCanceled.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, &TranslationError{Field: "request", Err: errors.New("request is nil")}
	}

	progress := c.takeProgress(ctx, req)

	if ctx.Err() != nil {
		return nil, ErrOperationCanceled
	}

	engineReq, err := c.translateRequest(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("sending request", "id", req.ID, "method", engineReq.Method, "url", engineReq.URL.Redacted())

	bridge := newCallBridge(c.engine.NewCall(engineReq, c.callConfig()))
	engineResp, err := bridge.await(ctx)
	if err != nil {
		mapped := mapFailure(ctx, engineReq, err)
		c.logger.Debug("request failed", "id", req.ID, "error", mapped)
		return nil, mapped
	}

	if ctx.Err() != nil {
		closeEngineBody(engineResp)
		return nil, ErrOperationCanceled
	}

	if c.throwOnCaptiveNetwork {
		if err := detectCaptiveNetwork(req.URL, engineResp.URL); err != nil {
			closeEngineBody(engineResp)
			c.logger.Warn("captive network detected", "requested", req.URL.Host, "final", engineResp.URL.Host)
			return nil, err
		}
	}

	storeCookies(c.cookies, engineResp.URL, engineResp.Header)

	return c.translateResponse(req, engineResp, progress), nil
}

// RegisterForProgress sets the progress callback for the response body of
// req's next Send. A nil fn removes the registration.
func (c *Client) RegisterForProgress(req *Request, fn ProgressFunc) {
	c.progress.Register(req, fn)
}

// Close releases the engine the client created. Engines passed in Options
// are left to their owner.
func (c *Client) Close() error {
	if !c.ownsEngine {
		return nil
	}
	if closer, ok := c.engine.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// callConfig builds the immutable per-call engine configuration.
func (c *Client) callConfig() CallConfig {
	return CallConfig{
		ConnectTimeout: c.timeout,
		WriteTimeout:   c.timeout,
		ReadTimeout:    c.timeout,
		TLSConfig:      c.tlsConfig,
		Proxy:          c.proxy,
	}
}

// takeProgress consumes the registry entry for req. A callback carried by
// ctx takes precedence.
func (c *Client) takeProgress(ctx context.Context, req *Request) ProgressFunc {
	registered := c.progress.Take(req)
	if fn := progressFromContext(ctx); fn != nil {
		return fn
	}
	return registered
}

func closeEngineBody(resp *EngineResponse) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
