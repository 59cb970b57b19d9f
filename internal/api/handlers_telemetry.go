// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package api

import (
	"errors"
	"net/http"

	"github.com/JeevanJoshi01/server/internal/ingest"
	"github.com/JeevanJoshi01/server/internal/models"
)

// Push handles POST /api/push, the original single-fix endpoint. The later
// /api/post-data contract supersedes it for batch sync, but devices in the
// field still call it.
func (h *Handler) Push(w http.ResponseWriter, r *http.Request) {
	var req models.PushRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.ingest.SubmitLocation(r.Context(), req.Long, req.Lat, req.Device)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingCoordinates) {
			respondError(w, http.StatusBadRequest, "Invalid long/lat values", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	respondJSON(w, http.StatusOK, models.PushResponse{
		Message: "Location saved",
		Data:    rec,
	})
}

// PostData handles POST /api/post-data, the batch sync endpoint. Call logs
// and messages are deduplicated against the device watermark; the response
// reports how many records each kind actually inserted.
func (h *Handler) PostData(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.ingest.SubmitBatch(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ingest.ErrMissingDevice) {
			respondError(w, http.StatusBadRequest, "device is required", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	respondJSON(w, http.StatusOK, models.BatchResponse{
		Message:  "Data synced",
		Inserted: *result,
	})
}
