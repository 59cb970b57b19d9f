// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package config provides layered application configuration via Koanf v2.
//
// Configuration is assembled from three sources, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, or CONFIG_PATH)
//  3. Environment variables (HTTP_PORT, DB_PATH, JWT_SECRET, ...)
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the server process. It is loaded once
// at startup and injected into each component; there is no mutable global
// configuration state.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Keepalive KeepaliveConfig `koanf:"keepalive"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	// Port is the TCP port the HTTP server listens on.
	Port int `koanf:"port"`

	// Host is the bind address. Default 0.0.0.0.
	Host string `koanf:"host"`

	// Timeout bounds request read and response write durations.
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds record store settings.
type DatabaseConfig struct {
	// Path is the BadgerDB data directory.
	Path string `koanf:"path"`

	// InMemory runs the store without disk persistence. Used by tests.
	InMemory bool `koanf:"in_memory"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs access tokens (HS256). Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// ProvisioningSecret gates user registration. Distinct from any
	// per-user password.
	ProvisioningSecret string `koanf:"provisioning_secret"`

	// CORSOrigins lists allowed cross-origin request origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// KeepaliveConfig holds self-ping settings. The ping interval is fixed at
// 30 seconds and is not configurable.
type KeepaliveConfig struct {
	// SelfURL is the base URL this process pings to keep itself warm on
	// idle-spindown hosts. Empty disables the pinger.
	SelfURL string `koanf:"self_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the host:port the HTTP server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the configuration for values that would make the process
// unusable at runtime. It is called by Load after all sources are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.ProvisioningSecret == "" {
		return fmt.Errorf("PROVISIONING_SECRET is required")
	}
	if c.Database.Path == "" && !c.Database.InMemory {
		return fmt.Errorf("database path is required")
	}
	return nil
}
