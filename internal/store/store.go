// Telemetry Server - Device Telemetry Ingestion Backend
// Copyright 2026 Jeevan Joshi (JeevanJoshi01)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JeevanJoshi01/server

// Package store provides the durable record store backing the telemetry
// API. Records are stored as JSON documents in BadgerDB under one key
// prefix per collection:
//
//	location:<id>
//	calllog:<hex(device)>:<id>
//	sms:<hex(device)>:<id>
//	user:<username>
//
// The device segment is hex-encoded because device identifiers are
// free-text and may contain the key delimiter.
//
// The store is append-only for telemetry records: there are no update or
// delete operations in this contract. Badger gives atomicity per
// transaction; multi-step sequences built on top of the store (such as the
// ingestion watermark check) are explicitly not isolated.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/JeevanJoshi01/server/internal/config"
	"github.com/JeevanJoshi01/server/internal/logging"
)

// Key prefixes for the BadgerDB collections.
const (
	locationKeyPrefix = "location:"
	callLogKeyPrefix  = "calllog:"
	smsKeyPrefix      = "sms:"
	userKeyPrefix     = "user:"
)

// Store errors surfaced to callers. ErrUserExists is a distinct condition
// by contract: a duplicate username must not look like a generic failure.
var (
	ErrUserExists   = errors.New("username already exists")
	ErrUserNotFound = errors.New("user not found")
)

// DB wraps a Badger instance with the collection operations the server
// needs. It is safe for concurrent use; it is opened once at startup and
// closed on shutdown.
type DB struct {
	badger *badger.DB
}

// New opens the record store at the configured path. With InMemory set the
// store lives entirely in memory, which tests use.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	// Badger logs through its own interface; route it away from stdout and
	// let zerolog own the process output.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Bool("in_memory", cfg.InMemory).Msg("Record store opened")
	return &DB{badger: db}, nil
}

// Close releases the underlying Badger instance.
func (db *DB) Close() error {
	return db.badger.Close()
}

// set stores a single JSON document under key in its own transaction.
func (db *DB) set(key string, data []byte) error {
	return db.badger.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// scanPrefix iterates all documents under prefix, invoking fn with each
// value. Iteration order is Badger's key order, which is stable across
// reads of an unchanged store.
func (db *DB) scanPrefix(ctx context.Context, prefix string, fn func(val []byte) error) error {
	return db.badger.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := it.Item().Value(fn); err != nil {
				return err
			}
		}
		return nil
	})
}
