// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/JeevanJoshi01/server/internal/config"
)

const testSecret = "test-secret-at-least-32-characters-long"

func newTestJWTManager(t *testing.T) *JWTManager {
	t.Helper()

	m, err := NewJWTManager(&config.SecurityConfig{JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	return m
}

// signTestToken creates a token with explicit time bounds, signed with the
// same secret the manager uses. This is how expiry behavior is tested
// without a clock abstraction.
func signTestToken(t *testing.T, username string, issuedAt, expiresAt time.Time) string {
	t.Helper()

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	_, err := NewJWTManager(&config.SecurityConfig{})
	if err == nil {
		t.Error("NewJWTManager() with empty secret should fail")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestJWTManager(t)

	token, err := m.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %s, want alice", claims.Username)
	}

	// Expiry must land 7 days out, give or take test runtime.
	expiry := claims.ExpiresAt.Time
	want := time.Now().Add(TokenValidity)
	if diff := expiry.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("token expiry = %v, want within a minute of %v", expiry, want)
	}
}

func TestValidateToken_StillValidBeforeExpiry(t *testing.T) {
	m := newTestJWTManager(t)

	// Issued 6 days ago: one day of validity remains.
	token := signTestToken(t, "alice",
		time.Now().Add(-6*24*time.Hour),
		time.Now().Add(-6*24*time.Hour).Add(TokenValidity))

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v for 6-day-old token", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %s, want alice", claims.Username)
	}
}

func TestValidateToken_RejectsExpired(t *testing.T) {
	m := newTestJWTManager(t)

	// Issued 8 days ago: expired one day ago.
	token := signTestToken(t, "alice",
		time.Now().Add(-8*24*time.Hour),
		time.Now().Add(-8*24*time.Hour).Add(TokenValidity))

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted an 8-day-old token, want rejection")
	}
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	m := newTestJWTManager(t)

	other, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret: "another-secret-at-least-32-characters",
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	token, err := other.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("ValidateToken() accepted a token signed with a different secret")
	}
}

func TestValidateToken_RejectsTampered(t *testing.T) {
	m := newTestJWTManager(t)

	token, err := m.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := m.ValidateToken(tampered); err == nil {
		t.Error("ValidateToken() accepted a tampered token")
	}
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	m := newTestJWTManager(t)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.ValidateToken(input); err == nil {
			t.Errorf("ValidateToken(%q) accepted malformed input", input)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3cret-password" {
		t.Error("HashPassword() returned the raw password")
	}

	if !CheckPassword(hash, "s3cret-password") {
		t.Error("CheckPassword() = false for correct password")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("CheckPassword() = true for wrong password")
	}
	if CheckPassword("not-a-hash", "s3cret-password") {
		t.Error("CheckPassword() = true for invalid hash")
	}
}
