// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package series

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestDecodeCollectionMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty value", ""},
		{"not json", "garbage"},
		{"json object", `{"id":"1"}`},
		{"json string", `"hello"`},
		{"truncated array", `[{"id":"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeCollection([]byte(tt.raw)); len(got) != 0 {
				t.Errorf("expected empty collection, got %d records", len(got))
			}
		})
	}
}

func TestDecodeCollectionNormalization(t *testing.T) {
	raw := `[
		{"id": 1, "title": "Dark", "year": 2017, "rating": 4.5, "watched": 26},
		{"id": "abc", "title": "Severance"},
		{"id": "neg", "title": "Lost", "rating": "high", "watched": -3},
		{"id": "null-year", "title": "Fargo", "year": null}
	]`

	items := decodeCollection([]byte(raw))
	if len(items) != 4 {
		t.Fatalf("expected 4 records, got %d", len(items))
	}

	first := items[0]
	if first.ID != "1" {
		t.Errorf("numeric id not coerced to string: %q", first.ID)
	}
	if first.Year == nil || *first.Year != 2017 {
		t.Errorf("year not preserved: %v", first.Year)
	}
	if first.Rating != 4.5 || first.Watched != 26 {
		t.Errorf("numbers not preserved: rating=%v watched=%v", first.Rating, first.Watched)
	}

	second := items[1]
	if second.ID != "abc" || second.Title != "Severance" {
		t.Errorf("string fields not passed through: %+v", second)
	}
	if second.Year != nil {
		t.Errorf("missing year should stay absent, got %v", *second.Year)
	}
	if second.Rating != 0 || second.Watched != 0 {
		t.Errorf("missing numbers should default to 0: %+v", second)
	}

	third := items[2]
	if third.Rating != 0 {
		t.Errorf("non-number rating should default to 0, got %v", third.Rating)
	}
	if third.Watched != 0 {
		t.Errorf("negative watched should default to 0, got %v", third.Watched)
	}

	fourth := items[3]
	if fourth.Year != nil {
		t.Errorf("null year should stay absent, got %v", *fourth.Year)
	}
}

func TestParseYear(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name    string
		raw     string // empty string means absent
		want    *int
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"null", "null", nil, false},
		{"empty string", `""`, nil, false},
		{"whitespace string", `"  "`, nil, false},
		{"number", "2001", intp(2001), false},
		{"numeric string", `"2001"`, intp(2001), false},
		{"too old", "1850", nil, true},
		{"too old string", `"1850"`, nil, true},
		{"not a number", `"abc"`, nil, true},
		{"fractional", "2001.5", nil, true},
		{"boolean", "true", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}

			got, err := parseYear(raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got year %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("got %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestCoerceAndClamp(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantRating  float64
		wantWatched float64
	}{
		{"in range", "3.5", 3.5, 3.5},
		{"above rating cap", "10", 5, 10},
		{"negative", "-3", 0, 0},
		{"numeric string", `"4"`, 4, 4},
		{"string above cap", `"10"`, 5, 10},
		{"non-numeric string", `"abc"`, 0, 0},
		{"null", "null", 0, 0},
		{"object", `{}`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := json.RawMessage(tt.raw)
			if got := clampRating(coerceNumber(raw)); got != tt.wantRating {
				t.Errorf("clampRating = %v, want %v", got, tt.wantRating)
			}
			if got := clampWatched(coerceNumber(raw)); got != tt.wantWatched {
				t.Errorf("clampWatched = %v, want %v", got, tt.wantWatched)
			}
		})
	}

	if got := clampRating(math.Inf(1)); got != 0 {
		t.Errorf("clampRating(+Inf) = %v, want 0", got)
	}
	if got := clampWatched(math.Inf(1)); got != 0 {
		t.Errorf("clampWatched(+Inf) = %v, want 0", got)
	}
}

func TestEncodeCollectionPrettyPrinted(t *testing.T) {
	items := decodeCollection([]byte(`[{"id":"1","title":"Foo","year":2020,"rating":0,"watched":0}]`))

	raw, err := encodeCollection(items)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	want := "[\n  {\n    \"id\": \"1\",\n    \"title\": \"Foo\",\n    \"year\": 2020,\n    \"rating\": 0,\n    \"watched\": 0\n  }\n]"
	if string(raw) != want {
		t.Errorf("encoded document:\n%s\nwant:\n%s", raw, want)
	}
}

func TestRoundTripRepairsMalformedHistory(t *testing.T) {
	// A historical document missing rating fields and carrying a numeric
	// id reads back behaviorally equivalent after a store round-trip.
	stored := `[{"id": 7, "title": "Twin Peaks", "year": 1990}, {"title": "Unknown"}]`

	items := decodeCollection([]byte(stored))
	raw, err := encodeCollection(items)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	again := decodeCollection(raw)

	if len(again) != len(items) {
		t.Fatalf("round trip changed length: %d != %d", len(again), len(items))
	}
	for i := range items {
		a, b := items[i], again[i]
		if a.ID != b.ID || a.Title != b.Title || a.Rating != b.Rating || a.Watched != b.Watched {
			t.Errorf("record %d changed: %+v != %+v", i, a, b)
		}
		if (a.Year == nil) != (b.Year == nil) || (a.Year != nil && *a.Year != *b.Year) {
			t.Errorf("record %d year changed", i)
		}
	}

	if again[0].ID != "7" || again[0].Rating != 0 {
		t.Errorf("repair not applied: %+v", again[0])
	}
}
