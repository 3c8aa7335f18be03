// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
)

// ProgressFunc reports body bytes read so far and the expected total, which
// is -1 when the server did not declare a length.
type ProgressFunc func(transferred, expected int64)

// ProgressRegistry maps requests to the progress callback for their
// response body. Each registration is consumed by the first Send of its
// request.
type ProgressRegistry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]ProgressFunc
}

// NewProgressRegistry creates an empty registry.
func NewProgressRegistry() *ProgressRegistry {
	return &ProgressRegistry{entries: make(map[uuid.UUID]ProgressFunc)}
}

// Register sets fn for req. A nil fn removes any existing registration.
// A nil req is ignored.
func (r *ProgressRegistry) Register(req *Request, fn ProgressFunc) {
	if req == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if fn == nil {
		delete(r.entries, req.ID)
		return
	}
	r.entries[req.ID] = fn
}

// Take removes and returns the callback registered for req, or nil.
func (r *ProgressRegistry) Take(req *Request) ProgressFunc {
	if req == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	fn, ok := r.entries[req.ID]
	if !ok {
		return nil
	}
	delete(r.entries, req.ID)
	return fn
}

// Len returns the number of pending registrations.
func (r *ProgressRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

type progressKey struct{}

// WithProgress returns a context that carries fn as the progress callback
// for the response body of a Send made with it. It takes precedence over a
// registry entry.
func WithProgress(ctx context.Context, fn ProgressFunc) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFromContext(ctx context.Context) ProgressFunc {
	fn, _ := ctx.Value(progressKey{}).(ProgressFunc)
	return fn
}

// progressBody reports every successful read to fn.
type progressBody struct {
	io.ReadCloser
	fn          ProgressFunc
	expected    int64
	transferred int64
}

func (b *progressBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if n > 0 {
		b.transferred += int64(n)
		b.fn(b.transferred, b.expected)
	}
	return n, err
}
