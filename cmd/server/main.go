// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package main is the entry point for the telemetry server.
//
// The server ingests location fixes, call logs, and SMS messages pushed by
// provisioned devices, persists them in an embedded BadgerDB document store,
// and serves them back over an authenticated REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Open the BadgerDB document store
//  3. Authentication: JWT manager for user tokens, provisioning secret for registration
//  4. Ingest service: batch deduplication against per-device watermarks
//  5. HTTP server: REST API with Prometheus metrics
//  6. Keepalive pinger (optional): periodic self-ping to defeat idle timeouts
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Required settings:
//   - JWT_SECRET: 32+ character secret for token signing
//   - PROVISIONING_SECRET: shared secret devices present at registration
//
// Common optional settings:
//   - PORT: HTTP listen port (default 5000)
//   - DB_PATH: BadgerDB directory (default /data/telemetry)
//   - SELF_URL: public base URL; when set, a 30s self-ping loop keeps
//     free-tier hosting from idling the process
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the database
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JeevanJoshi01/server/internal/api"
	"github.com/JeevanJoshi01/server/internal/auth"
	"github.com/JeevanJoshi01/server/internal/config"
	"github.com/JeevanJoshi01/server/internal/ingest"
	"github.com/JeevanJoshi01/server/internal/keepalive"
	"github.com/JeevanJoshi01/server/internal/logging"
	"github.com/JeevanJoshi01/server/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	db, err := store.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	ingestSvc := ingest.NewService(db)
	handler := api.NewHandler(db, ingestSvc, jwtManager, cfg)
	authMW := auth.NewMiddleware(jwtManager)
	router := api.NewRouter(handler, authMW, cfg.Security.CORSOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Self-ping loop only runs when a public URL is configured
	if cfg.Keepalive.SelfURL != "" {
		go keepalive.New(cfg.Keepalive.SelfURL).Run(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		serverErr <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}
