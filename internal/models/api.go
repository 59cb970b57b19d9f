// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package models

// PushRequest is the body of POST /api/push, the original single-fix
// endpoint. Long and Lat are pointers so that absent fields can be told
// apart from zero coordinates; non-numeric JSON values fail at decode time.
type PushRequest struct {
	Long   *float64 `json:"long"`
	Lat    *float64 `json:"lat"`
	Device string   `json:"device,omitempty"`
}

// CallLogEntry is one incoming call log item inside a batch submission.
type CallLogEntry struct {
	Number   string `json:"number"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Duration string `json:"duration"`
}

// SmsEntry is one incoming SMS item inside a batch submission.
type SmsEntry struct {
	Address string `json:"address"`
	Body    string `json:"body"`
	Date    string `json:"date"`
}

// BatchRequest is the body of POST /api/post-data, the device sync
// endpoint. Only Device is required; any combination of a location fix,
// call logs, and messages may be present.
type BatchRequest struct {
	Device    string         `json:"device" validate:"required"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	CallLogs  []CallLogEntry `json:"callLogs"`
	Messages  []SmsEntry     `json:"messages"`
}

// BatchResult reports how many records a batch submission actually
// inserted, after watermark filtering.
type BatchResult struct {
	Locations int `json:"locations"`
	CallLogs  int `json:"callLogs"`
	Messages  int `json:"messages"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username           string `json:"username" validate:"required"`
	Password           string `json:"password" validate:"required"`
	ProvisioningSecret string `json:"provisioningSecret" validate:"required"`
}

// MessageResponse is a bare {"message": ...} acknowledgment.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// PushResponse is returned on a successful single location push.
type PushResponse struct {
	Message string          `json:"message"`
	Data    *LocationRecord `json:"data"`
}

// BatchResponse acknowledges a batch submission with inserted counts.
type BatchResponse struct {
	Message  string      `json:"message"`
	Inserted BatchResult `json:"inserted"`
}

// ErrorResponse is the uniform error body: {"error": ...}. No stack traces
// or internal details are ever exposed to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}
