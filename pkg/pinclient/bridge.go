// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/jeremyhahn/go-pinclient/pkg/trust"
)

type callResult struct {
	resp *EngineResponse
	err  error
}

// callBridge turns a callback-driven Call into a blocking call. The first
// callback fills the result slot; later ones are dropped.
type callBridge struct {
	call   Call
	once   sync.Once
	result chan callResult
}

func newCallBridge(call Call) *callBridge {
	return &callBridge{
		call:   call,
		result: make(chan callResult, 1),
	}
}

func (b *callBridge) OnFailure(_ Call, err error) {
	b.complete(callResult{err: err})
}

func (b *callBridge) OnResponse(_ Call, resp *EngineResponse) {
	b.complete(callResult{resp: resp})
}

func (b *callBridge) complete(r callResult) {
	b.once.Do(func() {
		b.result <- r
	})
}

// await enqueues the call and blocks until it completes. Cancellation of ctx
// is forwarded to Call.Cancel until the call has completed.
func (b *callBridge) await(ctx context.Context) (*EngineResponse, error) {
	stop := context.AfterFunc(ctx, b.call.Cancel)
	defer stop()

	b.call.Enqueue(b)
	r := <-b.result
	return r.resp, r.err
}

// mapFailure classifies an engine failure. Trust rejections become
// *CancelledError, caller cancellation ErrOperationCanceled, and everything
// else *NetworkError.
func mapFailure(ctx context.Context, req *EngineRequest, err error) error {
	if ctx.Err() != nil {
		return ErrOperationCanceled
	}

	var trustErr *trust.Error
	if errors.As(err, &trustErr) {
		msg := trustErr.Message
		if trustErr.Kind == trust.PinMismatch {
			msg = trust.MessagePinMismatch
		}
		return &CancelledError{Message: msg, Err: err}
	}

	msg := err.Error()
	if req != nil && req.URL != nil && strings.Contains(msg, "Hostname "+req.URL.Hostname()+" not verified") {
		return &CancelledError{Message: msg, Err: err}
	}
	if strings.Contains(msg, "Certificate pinning failure") {
		return &CancelledError{Message: trust.MessagePinMismatch, Err: err}
	}
	if errors.Is(err, context.Canceled) || strings.Contains(strings.ToLower(msg), "canceled") {
		return ErrOperationCanceled
	}

	return &NetworkError{Message: msg, Err: err}
}
