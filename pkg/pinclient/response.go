// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"io"
	"net/http"
	"net/url"
)

// UnassignedReason is the reason phrase for a status code the engine gave no
// phrase for and that has no registered meaning.
const UnassignedReason = "Unassigned"

// Response is a transport-independent HTTP response.
type Response struct {
	StatusCode int

	// Reason is the status reason phrase. It is never empty.
	Reason string

	// Header and ContentHeader both carry every response header as received.
	Header        Header
	ContentHeader Header

	// Body streams the response payload and must be closed by the caller.
	// It is empty, never nil, when the server sent no body.
	Body io.ReadCloser

	// ContentLength is the declared body length, or -1 when unknown.
	ContentLength int64

	// URL is the URL the response was served from after redirects.
	URL *url.URL

	// Request is the request that produced this response.
	Request *Request
}

// reasonPhrase prefers the phrase the engine received, then the registered
// phrase for code.
func reasonPhrase(code int, message string) string {
	if message != "" {
		return message
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return UnassignedReason
}
