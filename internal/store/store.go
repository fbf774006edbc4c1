// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package store provides the key-value storage abstraction the series
// collection is persisted through.
//
// The store is deliberately minimal: opaque string keys mapping to opaque
// byte values, with get/put semantics and nothing else. The collection
// document is the unit of storage; callers read the whole value, modify
// it in memory, and write the whole value back. That read-modify-write
// is unsynchronized across concurrent requests (last write wins), which
// is an accepted limitation of the design, not something an
// implementation should paper over with locking.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no value exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// KV is the external durable store the collection document lives in.
// Implementations must make each Get and each Put individually atomic;
// no transactional coupling between the two is provided or expected.
type KV interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
