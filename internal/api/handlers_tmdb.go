// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/showshelf/showshelf/internal/metrics"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/validation"
)

// lookupRequest carries the query parameters of GET /api/tmdb.
type lookupRequest struct {
	Query string `validate:"required,notblank"`
	Year  string `validate:"omitempty,numeric"`
}

// TMDBLookup proxies a metadata search to TMDB and returns the
// normalized first match.
func (h *Handler) TMDBLookup(w http.ResponseWriter, r *http.Request) {
	req := lookupRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Year:  strings.TrimSpace(r.URL.Query().Get("year")),
	}
	if err := validation.ValidateStruct(&req); err != nil {
		respondError(w, err)
		return
	}

	start := time.Now()
	result, err := h.tmdb.Lookup(r.Context(), req.Query, req.Year)
	metrics.RecordLookup(lookupOutcome(err), time.Since(start))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// lookupOutcome buckets a lookup error for metrics labels.
func lookupOutcome(err error) string {
	if err == nil {
		return "success"
	}
	switch models.KindOf(err) {
	case models.KindNotFound:
		return "not_found"
	case models.KindUpstream:
		return "upstream_error"
	default:
		return "error"
	}
}
