// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient

import (
	"sync/atomic"
)

// fakeEngine answers every call with respond, asynchronously.
type fakeEngine struct {
	respond func(req *EngineRequest) (*EngineResponse, error)

	lastReq *EngineRequest
	lastCfg CallConfig
}

func (e *fakeEngine) NewCall(req *EngineRequest, cfg CallConfig) Call {
	e.lastReq = req
	e.lastCfg = cfg
	return &fakeCall{engine: e, req: req}
}

type fakeCall struct {
	engine    *fakeEngine
	req       *EngineRequest
	cancelled atomic.Bool
}

func (c *fakeCall) Request() *EngineRequest {
	return c.req
}

func (c *fakeCall) Enqueue(cb Callback) {
	go func() {
		resp, err := c.engine.respond(c.req)
		if err != nil {
			cb.OnFailure(c, err)
			return
		}
		cb.OnResponse(c, resp)
	}()
}

func (c *fakeCall) Cancel() {
	c.cancelled.Store(true)
}

// closeTracker records whether Close was called.
type closeTracker struct {
	closed atomic.Bool
}

func (b *closeTracker) Read([]byte) (int, error) {
	return 0, nil
}

func (b *closeTracker) Close() error {
	b.closed.Store(true)
	return nil
}
