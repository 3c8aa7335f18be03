// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"bytes"
	"io"
	"net/url"

	"github.com/google/uuid"
)

// Request is a transport-independent HTTP request. A Request must not be
// modified while Send is in progress.
type Request struct {
	// ID identifies the request for progress registration.
	ID uuid.UUID

	Method string
	URL    *url.URL

	// Header holds the request headers in order.
	Header Header

	// Content is the optional body with its content headers.
	Content *Content
}

// Content is a request body together with its content headers
// (Content-Type, Content-Language, ...).
type Content struct {
	Header Header
	Body   io.Reader
}

// NewRequest creates a request for method and rawURL with a fresh ID.
// content may be nil.
func NewRequest(method, rawURL string, content *Content) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &TranslationError{Field: "url", Err: err}
	}
	return &Request{
		ID:      uuid.New(),
		Method:  method,
		URL:     u,
		Content: content,
	}, nil
}

// NewBytesContent returns content reading data, with contentType as its
// Content-Type header when non-empty.
func NewBytesContent(data []byte, contentType string) *Content {
	c := &Content{Body: bytes.NewReader(data)}
	if contentType != "" {
		c.Header.Add("Content-Type", contentType)
	}
	return c
}
