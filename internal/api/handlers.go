// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package api provides the HTTP handlers and routing for the telemetry
// server.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_auth.go: registration and token issuance
//   - handlers_telemetry.go: device-facing ingestion endpoints
//   - handlers_query.go: authenticated read endpoints and liveness probe
//   - helpers.go: shared JSON response helpers
package api

import (
	"github.com/JeevanJoshi01/server/internal/auth"
	"github.com/JeevanJoshi01/server/internal/config"
	"github.com/JeevanJoshi01/server/internal/ingest"
	"github.com/JeevanJoshi01/server/internal/store"
)

// Handler carries the dependencies shared by all API handlers. Everything
// is injected at construction; handlers hold no mutable state of their own.
type Handler struct {
	db         *store.DB
	ingest     *ingest.Service
	jwtManager *auth.JWTManager
	config     *config.Config
}

// NewHandler creates the API handler with its dependencies.
func NewHandler(db *store.DB, ingestSvc *ingest.Service, jwtManager *auth.JWTManager, cfg *config.Config) *Handler {
	return &Handler{
		db:         db,
		ingest:     ingestSvc,
		jwtManager: jwtManager,
		config:     cfg,
	}
}
