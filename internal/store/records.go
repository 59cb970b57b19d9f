// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package store

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/JeevanJoshi01/server/internal/metrics"
	"github.com/JeevanJoshi01/server/internal/models"
)

// deviceSegment encodes a device identifier for use as a key segment.
// Device IDs are free-text and may contain the ":" delimiter, so the raw
// value cannot go into the key: device "dev:x" would otherwise fall under
// device "dev"'s prefix and pollute its watermark scan. Hex never contains
// the delimiter.
func deviceSegment(device string) string {
	return hex.EncodeToString([]byte(device))
}

// InsertLocation appends one location record, assigning its ID and server
// timestamp when absent. Duplicate content is never an error; there is no
// content-level uniqueness for telemetry records.
func (db *DB) InsertLocation(ctx context.Context, rec *models.LocationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal location record: %w", err)
	}
	if err := db.set(locationKeyPrefix+rec.ID, data); err != nil {
		return fmt.Errorf("insert location record: %w", err)
	}

	metrics.RecordInsert("location")
	return nil
}

// InsertCallLogs bulk-appends call log records. Each record is written in
// its own transaction; partial success is acceptable for batch ingestion,
// so the count of records actually written is returned alongside any error.
func (db *DB) InsertCallLogs(ctx context.Context, recs []models.CallLogRecord) (int, error) {
	inserted := 0
	for i := range recs {
		rec := &recs[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return inserted, fmt.Errorf("marshal call log record: %w", err)
		}
		key := callLogKeyPrefix + deviceSegment(rec.Device) + ":" + rec.ID
		if err := db.set(key, data); err != nil {
			return inserted, fmt.Errorf("insert call log record: %w", err)
		}
		inserted++
		metrics.RecordInsert("calllog")
	}
	return inserted, nil
}

// InsertSms bulk-appends SMS records with the same partial-success
// semantics as InsertCallLogs.
func (db *DB) InsertSms(ctx context.Context, recs []models.SmsRecord) (int, error) {
	inserted := 0
	for i := range recs {
		rec := &recs[i]
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return inserted, fmt.Errorf("marshal sms record: %w", err)
		}
		key := smsKeyPrefix + deviceSegment(rec.Device) + ":" + rec.ID
		if err := db.set(key, data); err != nil {
			return inserted, fmt.Errorf("insert sms record: %w", err)
		}
		inserted++
		metrics.RecordInsert("sms")
	}
	return inserted, nil
}

// Locations returns every stored location record.
func (db *DB) Locations(ctx context.Context) ([]models.LocationRecord, error) {
	records := []models.LocationRecord{}
	err := db.scanPrefix(ctx, locationKeyPrefix, func(val []byte) error {
		var rec models.LocationRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal location record: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CallLogs returns every stored call log record across all devices.
func (db *DB) CallLogs(ctx context.Context) ([]models.CallLogRecord, error) {
	records := []models.CallLogRecord{}
	err := db.scanPrefix(ctx, callLogKeyPrefix, func(val []byte) error {
		var rec models.CallLogRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal call log record: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Messages returns every stored SMS record across all devices.
func (db *DB) Messages(ctx context.Context) ([]models.SmsRecord, error) {
	records := []models.SmsRecord{}
	err := db.scanPrefix(ctx, smsKeyPrefix, func(val []byte) error {
		var rec models.SmsRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal sms record: %w", err)
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CallLogsByNumber returns call log records whose number matches exactly.
func (db *DB) CallLogsByNumber(ctx context.Context, number string) ([]models.CallLogRecord, error) {
	records := []models.CallLogRecord{}
	err := db.scanPrefix(ctx, callLogKeyPrefix, func(val []byte) error {
		var rec models.CallLogRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal call log record: %w", err)
		}
		if rec.Number == number {
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// SmsByAddress returns SMS records whose address matches exactly.
func (db *DB) SmsByAddress(ctx context.Context, address string) ([]models.SmsRecord, error) {
	records := []models.SmsRecord{}
	err := db.scanPrefix(ctx, smsKeyPrefix, func(val []byte) error {
		var rec models.SmsRecord
		if err := json.Unmarshal(val, &rec); err != nil {
			return fmt.Errorf("unmarshal sms record: %w", err)
		}
		if rec.Address == address {
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// datedDocument projects just the date field out of a stored record. Both
// call log and SMS documents carry it, which is what lets one helper serve
// both collections.
type datedDocument struct {
	Date string `json:"date"`
}

// LatestCallLogDate returns the watermark for a device's call logs: the
// maximum parseable date among its stored records. ok is false when the
// device has no records with a parseable date.
func (db *DB) LatestCallLogDate(ctx context.Context, device string) (time.Time, bool, error) {
	return db.latestDateForDevice(ctx, callLogKeyPrefix+deviceSegment(device)+":")
}

// LatestSmsDate returns the watermark for a device's SMS records.
func (db *DB) LatestSmsDate(ctx context.Context, device string) (time.Time, bool, error) {
	return db.latestDateForDevice(ctx, smsKeyPrefix+deviceSegment(device)+":")
}

// latestDateForDevice scans one device's slice of a collection and tracks
// the maximum parsed date. Records whose date does not parse are skipped;
// they can never be a watermark.
func (db *DB) latestDateForDevice(ctx context.Context, prefix string) (time.Time, bool, error) {
	var latest time.Time
	found := false

	err := db.scanPrefix(ctx, prefix, func(val []byte) error {
		var doc datedDocument
		if err := json.Unmarshal(val, &doc); err != nil {
			return fmt.Errorf("unmarshal record date: %w", err)
		}
		if t, ok := ParseDate(doc.Date); ok && (!found || t.After(latest)) {
			latest = t
			found = true
		}
		return nil
	})
	if err != nil {
		return time.Time{}, false, err
	}
	return latest, found, nil
}
