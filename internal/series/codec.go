// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package series implements the series collection: decoding and
// repairing the stored document, field validation and clamping on
// writes, and the list/create/update/delete/export operations.
package series

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/showshelf/showshelf/internal/models"
)

// minYear is the oldest first-air year accepted on write.
const minYear = 1900

// decodeCollection parses the stored document into normalized records.
//
// This is a defensive read-side repair, not a validation gate: a
// missing, empty, or unparsable value yields an empty collection, and
// malformed historical elements are silently coerced rather than
// rejected. Write-side invariants (non-empty title, year >= 1900,
// rating in [0,5]) are NOT re-checked here.
func decodeCollection(raw []byte) []models.Series {
	if len(raw) == 0 {
		return nil
	}

	var elements []map[string]any
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil
	}

	items := make([]models.Series, 0, len(elements))
	for _, el := range elements {
		items = append(items, normalizeRecord(el))
	}
	return items
}

// normalizeRecord maps one untyped stored element into the strict
// record shape, applying the documented defaulting rules field by field.
func normalizeRecord(el map[string]any) models.Series {
	var rec models.Series

	// id coerced to string
	switch id := el["id"].(type) {
	case string:
		rec.ID = id
	case float64:
		rec.ID = formatNumber(id)
	}

	// title passed through as-is; no validation on read
	if title, ok := el["title"].(string); ok {
		rec.Title = title
	}

	// year absent unless stored as a number
	if year, ok := el["year"].(float64); ok {
		y := int(year)
		rec.Year = &y
	}

	// rating defaults to 0 unless already a number
	if rating, ok := el["rating"].(float64); ok {
		rec.Rating = rating
	}

	// watched defaults to 0 unless a number >= 0
	if watched, ok := el["watched"].(float64); ok && watched >= 0 {
		rec.Watched = watched
	}

	return rec
}

// encodeCollection serializes the collection as the pretty-printed JSON
// array stored under the collection key.
func encodeCollection(items []models.Series) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}

// formatNumber renders a JSON number the way it reads: integral values
// without a decimal point.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseYear interprets a raw year value from a request body. The zero
// return means "no year": absent input, explicit null, and the empty
// string all clear it. Anything else must parse to an integer >= 1900.
func parseYear(raw json.RawMessage) (*int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num != math.Trunc(num) || int(num) < minYear {
			return nil, models.NewValidation("year must be an integer >= %d", minYear)
		}
		y := int(num)
		return &y, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		y, err := strconv.Atoi(s)
		if err != nil || y < minYear {
			return nil, models.NewValidation("year must be an integer >= %d", minYear)
		}
		return &y, nil
	}

	return nil, models.NewValidation("year must be an integer >= %d", minYear)
}

// coerceNumber interprets a raw numeric value from a request body the
// way loosely-typed clients send it: a JSON number, or a string that
// parses as one. Anything else coerces to NaN so the caller's clamping
// turns it into 0 -- clamping, not rejection.
func coerceNumber(raw json.RawMessage) float64 {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}

	return math.NaN()
}

// clampRating forces a coerced rating into [0, 5].
func clampRating(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

// clampWatched forces a coerced watch count to >= 0. No upper bound.
func clampWatched(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
