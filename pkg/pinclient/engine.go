// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

//go:generate $MOCKGEN -source=engine.go -destination=mocks/engine_mock.go

import (
	"crypto/tls"
	"io"
	"net/url"
	"time"
)

// Engine creates calls that perform the network exchange for one request.
// Connection pooling, socket I/O, the TLS record layer and redirect following
// live behind it.
type Engine interface {
	NewCall(req *EngineRequest, cfg CallConfig) Call
}

// Call is a single engine exchange.
type Call interface {
	// Request returns the request the call was created for.
	Request() *EngineRequest

	// Enqueue starts the call asynchronously. Exactly one callback method
	// is invoked when it completes.
	Enqueue(cb Callback)

	// Cancel aborts the call if it has not delivered a response yet.
	Cancel()
}

// Callback receives the outcome of a Call.
type Callback interface {
	OnFailure(call Call, err error)
	OnResponse(call Call, resp *EngineResponse)
}

// EngineRequest is a request translated for an engine. Each header field
// carries exactly one, already joined, value.
type EngineRequest struct {
	Method string
	URL    *url.URL
	Header Header

	// Body is nil when the request has no content.
	Body []byte

	// ContentType is the media type of Body.
	ContentType string

	// NoCache asks the engine to bypass response caches.
	NoCache bool
}

// EngineResponse is the engine's view of a response.
type EngineResponse struct {
	StatusCode int

	// Message is the reason phrase received on the status line, if any.
	Message string

	Header Header

	// Body is nil when the response has no body.
	Body io.ReadCloser

	// ContentLength is -1 when unknown.
	ContentLength int64

	// URL is the URL of the final response after redirects.
	URL *url.URL
}

// CallConfig is the immutable per-call engine configuration. It is a
// comparable value so engines can key cached transports on it.
type CallConfig struct {
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration

	// TLSConfig gates every handshake. It is shared and must not be mutated.
	TLSConfig *tls.Config

	// Proxy is the "host:port" of an HTTP proxy, or "".
	Proxy string
}
