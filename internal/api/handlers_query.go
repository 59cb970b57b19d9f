// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package api

import (
	"net/http"

	"github.com/JeevanJoshi01/server/internal/models"
)

// The read endpoints return bare JSON arrays, not an envelope; that is the
// wire contract the dashboard consumes. Any valid token grants access to
// every device's data: read scoping per caller is a known open question,
// preserved as-is.

// GetLocation handles GET /get-location.
func (h *Handler) GetLocation(w http.ResponseWriter, r *http.Request) {
	records, err := h.db.Locations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetCallLogs handles GET /get-call-logs.
func (h *Handler) GetCallLogs(w http.ResponseWriter, r *http.Request) {
	records, err := h.db.CallLogs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetSms handles GET /get-sms.
func (h *Handler) GetSms(w http.ResponseWriter, r *http.Request) {
	records, err := h.db.Messages(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetSingleLogs handles GET /get-single-logs?number=, filtering call logs
// by exact number match.
func (h *Handler) GetSingleLogs(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	if number == "" {
		respondError(w, http.StatusBadRequest, "number is required", nil)
		return
	}

	records, err := h.db.CallLogsByNumber(r.Context(), number)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetSingleSms handles GET /get-single-sms?address=, filtering SMS records
// by exact address match.
func (h *Handler) GetSingleSms(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondError(w, http.StatusBadRequest, "address is required", nil)
		return
	}

	records, err := h.db.SmsByAddress(r.Context(), address)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Hello handles GET /get, the liveness probe the keep-alive pinger targets.
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "hello"})
}
