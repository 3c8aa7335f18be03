// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package pinclient_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jeremyhahn/go-pinclient/pkg/pinclient"
	mock_pinclient "github.com/jeremyhahn/go-pinclient/pkg/pinclient/mocks"
	"github.com/jeremyhahn/go-pinclient/pkg/trust"
)

func newMockedClient(t *testing.T, opts *pinclient.Options) (*pinclient.Client, *mock_pinclient.MockEngine, *mock_pinclient.MockCall) {
	t.Helper()

	ctrl := gomock.NewController(t)
	engine := mock_pinclient.NewMockEngine(ctrl)
	call := mock_pinclient.NewMockCall(ctrl)

	opts.Engine = engine
	client, err := pinclient.NewClient(opts)
	require.NoError(t, err)

	return client, engine, call
}

func TestSend_DeliversEngineResponse(t *testing.T) {
	client, engine, call := newMockedClient(t, &pinclient.Options{Timeout: 5 * time.Second})

	final, err := url.Parse("https://api.example.com/final")
	require.NoError(t, err)

	var cfg pinclient.CallConfig
	engine.EXPECT().
		NewCall(gomock.Any(), gomock.Any()).
		DoAndReturn(func(req *pinclient.EngineRequest, c pinclient.CallConfig) pinclient.Call {
			cfg = c
			assert.Equal(t, "GET", req.Method)
			return call
		})
	call.EXPECT().
		Enqueue(gomock.Any()).
		Do(func(cb pinclient.Callback) {
			go cb.OnResponse(call, &pinclient.EngineResponse{
				StatusCode:    299,
				Header:        pinclient.Header{{Name: "X-A", Values: []string{"1"}}},
				Body:          io.NopCloser(strings.NewReader("body")),
				ContentLength: 4,
				URL:           final,
			})
		})

	req, err := pinclient.NewRequest("get", "https://api.example.com/start", nil)
	require.NoError(t, err)

	resp, err := client.Send(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 299, resp.StatusCode)
	assert.Equal(t, pinclient.UnassignedReason, resp.Reason)
	assert.Equal(t, "1", resp.Header.Get("X-A"))
	assert.Equal(t, "1", resp.ContentHeader.Get("X-A"))
	assert.Equal(t, final, resp.URL)
	assert.Same(t, req, resp.Request)

	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
	require.NotNil(t, cfg.TLSConfig)
	assert.True(t, cfg.TLSConfig.InsecureSkipVerify)
	assert.NotNil(t, cfg.TLSConfig.VerifyConnection)
}

func TestSend_CancellationReachesEngine(t *testing.T) {
	client, engine, call := newMockedClient(t, &pinclient.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var enqueued pinclient.Callback
	engine.EXPECT().NewCall(gomock.Any(), gomock.Any()).Return(call)
	call.EXPECT().
		Enqueue(gomock.Any()).
		Do(func(cb pinclient.Callback) {
			enqueued = cb
			cancel()
		})
	call.EXPECT().
		Cancel().
		Do(func() {
			enqueued.OnFailure(call, errors.New("Canceled"))
		})

	req, err := pinclient.NewRequest(http.MethodGet, "https://api.example.com/", nil)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := client.Send(ctx, req)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, pinclient.ErrOperationCanceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Send did not return after cancellation")
	}
}

func TestSend_FailureMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"trust rejection", &trust.Error{Kind: trust.NoRoot, Hostname: "a.example", Message: trust.MessageNoRoot}, pinclient.ErrCancelled},
		{"hostname not verified", errors.New("Hostname a.example not verified:\n certificate: sha256/AAAA"), pinclient.ErrCancelled},
		{"pinning failure", errors.New("Certificate pinning failure!"), pinclient.ErrCancelled},
		{"transport", errors.New("connection reset by peer"), pinclient.ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, engine, call := newMockedClient(t, &pinclient.Options{})
			engine.EXPECT().NewCall(gomock.Any(), gomock.Any()).Return(call)
			call.EXPECT().
				Enqueue(gomock.Any()).
				Do(func(cb pinclient.Callback) {
					go cb.OnFailure(call, tt.err)
				})

			req, err := pinclient.NewRequest(http.MethodGet, "https://a.example/", nil)
			require.NoError(t, err)

			_, err = client.Send(context.Background(), req)
			assert.ErrorIs(t, err, tt.target)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSend_TranslationFailureSkipsEngine(t *testing.T) {
	client, _, _ := newMockedClient(t, &pinclient.Options{})

	req, err := pinclient.NewRequest(http.MethodPost, "https://a.example/", pinclient.NewBytesContent([]byte("x"), "bad/type/extra"))
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req)
	assert.ErrorIs(t, err, pinclient.ErrTranslation)
}
