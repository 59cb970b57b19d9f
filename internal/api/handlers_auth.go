// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/JeevanJoshi01/server/internal/auth"
	"github.com/JeevanJoshi01/server/internal/logging"
	"github.com/JeevanJoshi01/server/internal/models"
	"github.com/JeevanJoshi01/server/internal/store"
	"github.com/JeevanJoshi01/server/internal/validation"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// Register handles POST /api/register. Registration is gated by the
// process-wide provisioning secret; on success the user is stored with a
// bcrypt password hash and a token is issued immediately so the client can
// start reading without a separate login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// bcrypt reads at most 72 bytes of input; longer passwords are a
	// client error, not a hashing failure.
	if len(req.Password) > maxPasswordBytes {
		respondError(w, http.StatusBadRequest, "password must be at most 72 bytes", nil)
		return
	}

	// Constant-time comparison; the provisioning secret is a shared
	// credential like any other.
	if subtle.ConstantTimeCompare([]byte(req.ProvisioningSecret), []byte(h.config.Security.ProvisioningSecret)) != 1 {
		respondError(w, http.StatusForbidden, "invalid provisioning secret", nil)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error", err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondError(w, http.StatusConflict, "username already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "server error", err)
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error", err)
		return
	}

	logging.Info().Str("username", sanitizeLogValue(req.Username)).Msg("User registered")
	respondJSON(w, http.StatusOK, models.RegisterResponse{
		Message: "user registered",
		Token:   token,
	})
}

// AccessToken handles GET /api/access-token?username=&password=. Every
// credential failure, including absent parameters, produces the same 401
// response so callers cannot enumerate accounts or probe the contract.
func (h *Handler) AccessToken(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")
	if username == "" || password == "" {
		respondError(w, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	user, err := h.db.UserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid username or password", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "server error", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		respondError(w, http.StatusUnauthorized, "invalid username or password", nil)
		return
	}

	token, err := h.jwtManager.GenerateToken(username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "server error", err)
		return
	}

	respondJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}
