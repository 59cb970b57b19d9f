// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package models defines the persisted entities and the HTTP request and
// response types shared across the server.
package models

import "time"

// LocationRecord is a single location fix reported by a device. Records are
// immutable once created; Timestamp is the server receipt time.
type LocationRecord struct {
	ID        string    `json:"id"`
	Device    string    `json:"device,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// CallLogRecord is one call log entry synced from a device. Date is the
// client-supplied timestamp string; it is not validated as a parseable date
// until it is compared against the device's watermark.
type CallLogRecord struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Date      string    `json:"date"`
	Duration  string    `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// SmsRecord is one SMS entry synced from a device. Address is the sender or
// recipient depending on direction; Date is client-supplied, as for call
// logs.
type SmsRecord struct {
	ID        string    `json:"id"`
	Device    string    `json:"device"`
	Address   string    `json:"address"`
	Body      string    `json:"body"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}

// User is a registered dashboard/operator account. Username is unique across
// all users. PasswordHash is a bcrypt hash; the raw password is never
// stored. Users are unrelated to device records except via the auth
// boundary.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}
