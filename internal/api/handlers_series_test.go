// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/series"
	"github.com/showshelf/showshelf/internal/store"
	"github.com/showshelf/showshelf/internal/tmdb"
)

// fakeLookuper satisfies tmdb.Lookuper for handler tests.
type fakeLookuper struct {
	result *tmdb.TVLookup
	err    error
}

func (f *fakeLookuper) Lookup(ctx context.Context, query, year string) (*tmdb.TVLookup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8787, Timeout: 5 * time.Second},
		Store:  config.StoreConfig{Backend: "memory", Key: "series"},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitDisabled: true,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}
}

// newTestServer builds a full router backed by an in-memory store.
func newTestServer(t *testing.T, lookuper tmdb.Lookuper) (http.Handler, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	svc := series.NewService(kv, "series")
	if lookuper == nil {
		lookuper = &fakeLookuper{result: &tmdb.TVLookup{ID: 1, Name: "Stub", Networks: []string{}}}
	}
	handler := NewHandler(svc, lookuper)
	return NewRouter(handler, testConfig()).Setup(), kv
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeItem(t *testing.T, body []byte) models.Series {
	t.Helper()
	var resp itemResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode item response: %v (body %s)", err, body)
	}
	if resp.Item == nil {
		t.Fatalf("response has no item: %s", body)
	}
	return *resp.Item
}

func decodeError(t *testing.T, body []byte) models.APIError {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode error response: %v (body %s)", err, body)
	}
	if resp.Error == nil {
		t.Fatalf("response has no error: %s", body)
	}
	return *resp.Error
}

func TestSeriesListEmpty(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/series", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Items == nil {
		t.Error("items is null, want empty array")
	}
	if len(resp.Items) != 0 {
		t.Errorf("items = %v, want empty", resp.Items)
	}
}

func TestSeriesCreateAndList(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/series", `{"title":"Severance","year":2022}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	item := decodeItem(t, rec.Body.Bytes())
	if item.ID == "" {
		t.Error("created item has empty id")
	}
	if item.Title != "Severance" {
		t.Errorf("title = %q, want Severance", item.Title)
	}
	if item.Year == nil || *item.Year != 2022 {
		t.Errorf("year = %v, want 2022", item.Year)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/series", "")
	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != item.ID {
		t.Errorf("list = %+v, want the created item", resp.Items)
	}
}

func TestSeriesCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{}`},
		{"blank title", `{"title":"   "}`},
		{"year too small", `{"title":"X","year":1850}`},
		{"year not a number", `{"title":"X","year":"abc"}`},
		{"malformed json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, nil)
			rec := doRequest(t, h, http.MethodPost, "/api/series", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			apiErr := decodeError(t, rec.Body.Bytes())
			if apiErr.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
			}
			if apiErr.Message == "" {
				t.Error("error message is empty")
			}
		})
	}
}

func TestSeriesUpdate(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/series", `{"title":"Dark"}`)
	created := decodeItem(t, rec.Body.Bytes())

	t.Run("patch clamps rating", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPatch, "/api/series/"+created.ID, `{"rating":10}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		item := decodeItem(t, rec.Body.Bytes())
		if item.Rating != 5 {
			t.Errorf("rating = %v, want 5", item.Rating)
		}
	})

	t.Run("put sets year and watched", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPut, "/api/series/"+created.ID, `{"year":2017,"watched":12}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		item := decodeItem(t, rec.Body.Bytes())
		if item.Year == nil || *item.Year != 2017 {
			t.Errorf("year = %v, want 2017", item.Year)
		}
		if item.Watched != 12 {
			t.Errorf("watched = %v, want 12", item.Watched)
		}
	})

	t.Run("null clears year", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPatch, "/api/series/"+created.ID, `{"year":null}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		item := decodeItem(t, rec.Body.Bytes())
		if item.Year != nil {
			t.Errorf("year = %v, want cleared", item.Year)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPatch, "/api/series/nope", `{"rating":1}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		apiErr := decodeError(t, rec.Body.Bytes())
		if apiErr.Code != "NOT_FOUND" {
			t.Errorf("code = %q, want NOT_FOUND", apiErr.Code)
		}
	})
}

func TestSeriesDelete(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/series", `{"title":"Gone"}`)
	created := decodeItem(t, rec.Body.Bytes())

	rec = doRequest(t, h, http.MethodDelete, "/api/series/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodDelete, "/api/series/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestSeriesExport(t *testing.T) {
	h, _ := newTestServer(t, nil)

	doRequest(t, h, http.MethodPost, "/api/series", `{"title":"Foo","year":2020}`)
	doRequest(t, h, http.MethodPost, "/api/series", `{"title":"Bar"}`)

	rec := doRequest(t, h, http.MethodGet, "/api/series.txt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	want := "Foo — 2020\nBar"
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %q, want %q", got, want)
	}
}

func TestSeriesExportEmpty(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/series.txt", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}
