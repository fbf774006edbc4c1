// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/showshelf/showshelf/internal/metrics"
)

// Badger is a BadgerDB-backed KV suitable for production use with
// persistence across restarts.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a BadgerDB at the given path.
// An empty path opens an in-memory database, useful for development.
func OpenBadger(path string) (*Badger, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get returns the value stored under key.
func (s *Badger) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return fmt.Errorf("get %q: %w", key, err)
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	// A missing key is a normal outcome, not an operation failure.
	metricErr := err
	if errors.Is(metricErr, ErrKeyNotFound) {
		metricErr = nil
	}
	metrics.RecordStoreOperation("get", time.Since(start), metricErr)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key.
func (s *Badger) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), value); err != nil {
			return fmt.Errorf("put %q: %w", key, err)
		}
		return nil
	})
	metrics.RecordStoreOperation("put", time.Since(start), err)
	return err
}

// Close closes the underlying BadgerDB.
func (s *Badger) Close() error {
	return s.db.Close()
}
