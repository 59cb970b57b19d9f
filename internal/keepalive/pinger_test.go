// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package keepalive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNew_TargetsLivenessPath(t *testing.T) {
	p := New("https://example.com")
	if p.url != "https://example.com/get" {
		t.Errorf("url = %s, want https://example.com/get", p.url)
	}
}

func TestPing(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/get" {
			t.Errorf("ping path = %s, want /get", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := New(srv.URL)
	if err := p.ping(context.Background()); err != nil {
		t.Errorf("ping() error = %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("server hit %d times, want 1", hits.Load())
	}
}

func TestPing_Non200IsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := New(srv.URL)
	if err := p.ping(context.Background()); err == nil {
		t.Error("ping() succeeded on 503 response, want error")
	}
}

func TestPing_UnreachableTarget(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	p := New(url)
	if err := p.ping(context.Background()); err == nil {
		t.Error("ping() succeeded against closed server, want error")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	p := New("http://127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	cancel()
	<-done
}
