// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package ingest validates and appends incoming device telemetry, applying
// an incremental-sync watermark per device so that already-seen call log
// and SMS entries are not re-inserted.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/JeevanJoshi01/server/internal/logging"
	"github.com/JeevanJoshi01/server/internal/metrics"
	"github.com/JeevanJoshi01/server/internal/models"
	"github.com/JeevanJoshi01/server/internal/store"
)

// Validation errors surfaced to the HTTP layer as 400 responses.
var (
	ErrMissingCoordinates = errors.New("invalid long/lat values")
	ErrMissingDevice      = errors.New("device is required")
)

// Service is the ingestion service. It is constructed once at startup with
// its store dependency; it holds no other state.
type Service struct {
	db  *store.DB
	log zerolog.Logger
}

// NewService creates the ingestion service.
func NewService(db *store.DB) *Service {
	return &Service{
		db:  db,
		log: logging.With().Str("component", "ingest").Logger(),
	}
}

// SubmitLocation handles a single location fix from POST /api/push. Both
// coordinates must be present; device is optional in this legacy contract.
// Returns the created record.
func (s *Service) SubmitLocation(ctx context.Context, long, lat *float64, device string) (*models.LocationRecord, error) {
	if long == nil || lat == nil {
		return nil, ErrMissingCoordinates
	}

	rec := &models.LocationRecord{
		Device:    device,
		Latitude:  *lat,
		Longitude: *long,
	}
	if err := s.db.InsertLocation(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Debug().Str("device", device).Float64("lat", *lat).Float64("long", *long).Msg("Location saved")
	return rec, nil
}

// SubmitBatch handles a device sync from POST /api/post-data. A location
// fix, when present, is inserted unconditionally; call logs and messages
// are filtered against the device's watermark (the maximum stored date per
// kind) so only strictly newer entries are appended.
//
// The watermark read and the subsequent insert are separate store
// transactions. Two concurrent batches for the same device can both pass
// the watermark check and insert overlapping entries; this consistency gap
// is accepted by the contract rather than guarded against.
func (s *Service) SubmitBatch(ctx context.Context, req *models.BatchRequest) (*models.BatchResult, error) {
	if req.Device == "" {
		return nil, ErrMissingDevice
	}

	result := &models.BatchResult{}

	if req.Latitude != nil && req.Longitude != nil {
		rec := &models.LocationRecord{
			Device:    req.Device,
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
		if err := s.db.InsertLocation(ctx, rec); err != nil {
			return nil, err
		}
		result.Locations = 1
	}

	if len(req.CallLogs) > 0 {
		n, err := s.ingestCallLogs(ctx, req.Device, req.CallLogs)
		if err != nil {
			return nil, err
		}
		result.CallLogs = n
	}

	if len(req.Messages) > 0 {
		n, err := s.ingestMessages(ctx, req.Device, req.Messages)
		if err != nil {
			return nil, err
		}
		result.Messages = n
	}

	s.log.Info().
		Str("device", req.Device).
		Int("locations", result.Locations).
		Int("call_logs", result.CallLogs).
		Int("messages", result.Messages).
		Msg("Batch ingested")
	return result, nil
}

// ingestCallLogs filters incoming call logs against the device watermark
// and inserts the strictly-newer subset, tagged with the device.
func (s *Service) ingestCallLogs(ctx context.Context, device string, entries []models.CallLogEntry) (int, error) {
	watermark, haveWatermark, err := s.db.LatestCallLogDate(ctx, device)
	if err != nil {
		return 0, err
	}

	records := make([]models.CallLogRecord, 0, len(entries))
	for _, e := range entries {
		if !afterWatermark(e.Date, watermark, haveWatermark) {
			continue
		}
		records = append(records, models.CallLogRecord{
			Device:   device,
			Number:   e.Number,
			Type:     e.Type,
			Date:     e.Date,
			Duration: e.Duration,
		})
	}
	metrics.RecordFiltered("calllog", len(entries)-len(records))

	if len(records) == 0 {
		return 0, nil
	}
	return s.db.InsertCallLogs(ctx, records)
}

// ingestMessages applies the same watermark logic to SMS entries.
func (s *Service) ingestMessages(ctx context.Context, device string, entries []models.SmsEntry) (int, error) {
	watermark, haveWatermark, err := s.db.LatestSmsDate(ctx, device)
	if err != nil {
		return 0, err
	}

	records := make([]models.SmsRecord, 0, len(entries))
	for _, e := range entries {
		if !afterWatermark(e.Date, watermark, haveWatermark) {
			continue
		}
		records = append(records, models.SmsRecord{
			Device:  device,
			Address: e.Address,
			Body:    e.Body,
			Date:    e.Date,
		})
	}
	metrics.RecordFiltered("sms", len(entries)-len(records))

	if len(records) == 0 {
		return 0, nil
	}
	return s.db.InsertSms(ctx, records)
}

// afterWatermark reports whether an entry date passes the filter. When the
// device has no watermark yet, every entry passes, including ones whose
// date does not parse. With a watermark, unparseable dates compare as
// not-after and are dropped.
func afterWatermark(date string, watermark time.Time, haveWatermark bool) bool {
	if !haveWatermark {
		return true
	}
	t, ok := store.ParseDate(date)
	return ok && t.After(watermark)
}
