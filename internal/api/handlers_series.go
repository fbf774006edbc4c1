// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// listResponse is the body of GET /api/series.
type listResponse struct {
	Items []models.Series `json:"items"`
}

// itemResponse wraps a single series for create and update responses.
type itemResponse struct {
	Item *models.Series `json:"item"`
}

// SeriesList returns the full collection.
func (h *Handler) SeriesList(w http.ResponseWriter, r *http.Request) {
	items, err := h.series.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &listResponse{Items: items})
}

// SeriesCreate appends a new series to the collection.
func (h *Handler) SeriesCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSeriesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	item, err := h.series.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, &itemResponse{Item: item})
}

// SeriesUpdate applies a partial update to one series.
func (h *Handler) SeriesUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateSeriesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	item, err := h.series.Update(r.Context(), id, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &itemResponse{Item: item})
}

// SeriesDelete removes one series.
func (h *Handler) SeriesDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.series.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SeriesExport renders the collection as plain text, one series per line.
func (h *Handler) SeriesExport(w http.ResponseWriter, r *http.Request) {
	text, err := h.series.ExportText(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		logging.Error().Err(err).Msg("Failed to write text response")
	}
}
