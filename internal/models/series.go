// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package models defines the data types shared across Showshelf:
// the persisted series record, API request payloads, and the tagged
// error type that the HTTP boundary maps onto status codes.
package models

import (
	"github.com/goccy/go-json"
)

// Series is the one persisted entity: a single tracked show.
//
// The whole collection is stored as one pretty-printed JSON array under
// a single key-value entry; there is no per-record storage addressing.
//
// Invariants (enforced on write, repaired on read):
//   - ID is unique within the collection and immutable after create
//   - Title is a non-empty trimmed string
//   - Year is an integer >= 1900, or absent
//   - Rating is clamped to [0, 5], default 0
//   - Watched is clamped to >= 0 (no upper bound), default 0
type Series struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Year    *int    `json:"year,omitempty"`
	Rating  float64 `json:"rating"`
	Watched float64 `json:"watched"`
}

// CreateSeriesRequest is the body of POST /api/series.
//
// Year is kept raw because clients send it as a JSON number or a string
// ("2001"); both must parse to an integer >= 1900, and an empty string is
// treated the same as absent.
type CreateSeriesRequest struct {
	Title string          `json:"title"`
	Year  json.RawMessage `json:"year,omitempty"`
}

// UpdateSeriesRequest is the body of PUT/PATCH /api/series/{id}.
//
// Every field is optional and applied independently; a field that is
// absent from the body leaves the stored value unchanged. Raw messages
// distinguish "absent" (nil) from "explicit null" (the literal null),
// which matters for Year: null or "" clears the stored year.
type UpdateSeriesRequest struct {
	Title   *string         `json:"title"`
	Year    json.RawMessage `json:"year"`
	Rating  json.RawMessage `json:"rating"`
	Watched json.RawMessage `json:"watched"`
}
