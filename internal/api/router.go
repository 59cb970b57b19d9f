// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JeevanJoshi01/server/internal/auth"
	"github.com/JeevanJoshi01/server/internal/middleware"
)

// maxBodyBytes caps request bodies at 50 MB; batch syncs from devices with
// a long history can be large.
const maxBodyBytes = 50 << 20

// Router wires handlers to routes.
type Router struct {
	handler     *Handler
	authMW      *auth.Middleware
	corsOrigins []string
}

// NewRouter creates the router with its handler and middleware.
func NewRouter(handler *Handler, authMW *auth.Middleware, corsOrigins []string) *Router {
	return &Router{
		handler:     handler,
		authMW:      authMW,
		corsOrigins: corsOrigins,
	}
}

// Setup configures all HTTP routes using the chi router.
//
// Route groups mirror the access model: device-facing ingestion and auth
// endpoints are public (devices hold no tokens), dashboard read endpoints
// require a bearer token, and /get stays public as the liveness probe.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.corsOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))
	r.Use(bodyLimit(maxBodyBytes))
	r.Use(middleware.PrometheusMetrics)

	// Liveness probe; also the keep-alive ping target.
	r.Get("/get", rt.handler.Hello)

	// Prometheus scrape endpoint.
	r.Handle("/metrics", promhttp.Handler())

	// Device-facing endpoints: registration, token issuance, ingestion.
	r.Route("/api", func(r chi.Router) {
		r.Post("/register", rt.handler.Register)
		r.Get("/access-token", rt.handler.AccessToken)
		r.Post("/push", rt.handler.Push)
		r.Post("/post-data", rt.handler.PostData)
	})

	// Dashboard read endpoints, bearer token required.
	r.Group(func(r chi.Router) {
		r.Use(rt.authMW.Authenticate)

		r.Get("/get-location", rt.handler.GetLocation)
		r.Get("/get-call-logs", rt.handler.GetCallLogs)
		r.Get("/get-sms", rt.handler.GetSms)
		r.Get("/get-single-logs", rt.handler.GetSingleLogs)
		r.Get("/get-single-sms", rt.handler.GetSingleSms)
	})

	return r
}

// bodyLimit caps request body size; oversized bodies fail the JSON decode
// with a clear error instead of exhausting memory.
func bodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
