// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package keepalive periodically pings the server's own liveness endpoint
// so that free-tier hosting platforms do not idle the process out.
package keepalive

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/JeevanJoshi01/server/internal/logging"
	"github.com/JeevanJoshi01/server/internal/metrics"
)

const (
	pingInterval   = 30 * time.Second
	requestTimeout = 10 * time.Second
)

// Pinger issues a GET against the configured self URL at a fixed interval.
type Pinger struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

// New creates a Pinger targeting baseURL. The liveness path is appended
// automatically.
func New(baseURL string) *Pinger {
	return &Pinger{
		url: baseURL + "/get",
		client: &http.Client{
			Timeout: requestTimeout,
		},
		log: logging.With().Str("component", "keepalive").Logger(),
	}
}

// Run pings until ctx is cancelled. Failures are logged and counted but
// never abort the loop.
func (p *Pinger) Run(ctx context.Context) {
	p.log.Info().Str("url", p.url).Dur("interval", pingInterval).Msg("Keepalive pinger started")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("Keepalive pinger stopped")
			return
		case <-ticker.C:
			if err := p.ping(ctx); err != nil {
				metrics.RecordKeepalivePing(false)
				p.log.Warn().Err(err).Msg("Keepalive ping failed")
			} else {
				metrics.RecordKeepalivePing(true)
			}
		}
	}
}

func (p *Pinger) ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build ping request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ping request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}
