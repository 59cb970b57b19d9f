// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package store

import (
	"strconv"
	"time"
)

// dateLayouts are tried in order when parsing client-supplied date strings.
// Devices in the wild send several shapes; RFC3339 is what well-behaved
// clients use.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate interprets a client-supplied date string as a point in time.
// It accepts the layouts above plus unix milliseconds (the Android call log
// and SMS providers report epoch millis). Returns ok=false when the string
// cannot be interpreted; such entries compare as not-after any watermark.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if millis, err := strconv.ParseInt(s, 10, 64); err == nil && millis > 0 {
		return time.UnixMilli(millis), true
	}

	return time.Time{}, false
}
