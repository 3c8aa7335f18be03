// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"strings"
)

// DefaultContentType is the body media type when the content declares none.
const DefaultContentType = "text/plain"

// translateRequest converts req into an engine request. Request headers come
// first, then content headers, with multiple values joined by the per-name
// separator. Cookie values are merged with the cookie store into a single
// Cookie header placed last.
func (c *Client) translateRequest(req *Request) (*EngineRequest, error) {
	if req.URL == nil {
		return nil, &TranslationError{Field: "url", Err: errors.New("url is nil")}
	}

	out := &EngineRequest{
		Method:  strings.ToUpper(req.Method),
		URL:     req.URL,
		NoCache: c.disableCaching,
	}

	var contentHeader Header
	if req.Content != nil {
		contentHeader = req.Content.Header

		body, err := readBody(req.Content.Body)
		if err != nil {
			return nil, &TranslationError{Field: "body", Err: err}
		}
		out.Body = body

		contentType := DefaultContentType
		if values := contentHeader.valuesFold("Content-Type"); len(values) > 0 {
			contentType = values[0]
		}
		if _, _, err := mime.ParseMediaType(contentType); err != nil {
			return nil, &TranslationError{Field: "content type", Err: err}
		}
		out.ContentType = contentType
	}

	var cookies []string
	for _, fields := range []Header{req.Header, contentHeader} {
		for _, f := range fields {
			if strings.EqualFold(f.Name, cookieHeader) {
				cookies = append(cookies, f.Values...)
				continue
			}
			out.Header = append(out.Header, HeaderField{
				Name:   f.Name,
				Values: []string{joinHeaderValues(c.separators, f.Name, f.Values)},
			})
		}
	}

	if cookie := buildCookieHeader(c.cookies, req.URL, cookies); cookie != "" {
		out.Header = append(out.Header, HeaderField{Name: cookieHeader, Values: []string{cookie}})
	}

	return out, nil
}

func readBody(r io.Reader) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}

	buf := bufferPool.Get()
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	body := bytes.Clone(buf.Bytes())
	if body == nil {
		body = []byte{}
	}
	return body, nil
}

// translateResponse converts an engine response. Every header is passed
// through to both Header and ContentHeader unvalidated. The body is wrapped
// with progress reporting when a callback is set.
func (c *Client) translateResponse(req *Request, resp *EngineResponse, progress ProgressFunc) *Response {
	out := &Response{
		StatusCode:    resp.StatusCode,
		Reason:        reasonPhrase(resp.StatusCode, resp.Message),
		Header:        resp.Header.Clone(),
		ContentHeader: resp.Header.Clone(),
		ContentLength: resp.ContentLength,
		URL:           resp.URL,
		Request:       req,
	}

	if resp.Body == nil {
		out.Body = io.NopCloser(bytes.NewReader(nil))
		out.ContentLength = 0
		return out
	}

	out.Body = resp.Body
	if progress != nil {
		out.Body = &progressBody{ReadCloser: resp.Body, fn: progress, expected: resp.ContentLength}
	}
	return out
}
