// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package metrics provides Prometheus instrumentation for the HTTP API and
// the record store. Collectors are registered with the default registry and
// exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Record store metrics
	RecordsInsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_inserted_total",
			Help: "Total number of records appended to the store",
		},
		[]string{"collection"},
	)

	// Ingestion metrics
	RecordsFilteredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_filtered_total",
			Help: "Total number of batch entries dropped by the watermark filter",
		},
		[]string{"collection"},
	)

	// Keepalive metrics
	KeepalivePingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keepalive_pings_total",
			Help: "Total number of self-ping attempts",
		},
		[]string{"result"}, // "ok" or "error"
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the active-request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordInsert counts one appended record for a collection.
func RecordInsert(collection string) {
	RecordsInsertedTotal.WithLabelValues(collection).Inc()
}

// RecordFiltered counts batch entries dropped by the watermark filter.
func RecordFiltered(collection string, n int) {
	if n > 0 {
		RecordsFilteredTotal.WithLabelValues(collection).Add(float64(n))
	}
}

// RecordKeepalivePing counts one self-ping attempt.
func RecordKeepalivePing(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	KeepalivePingsTotal.WithLabelValues(result).Inc()
}
