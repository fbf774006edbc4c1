// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package api provides the HTTP surface: routing via Chi, request
// decoding, error mapping, and response encoding.
package api

import (
	"net/http"
	"time"

	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/series"
	"github.com/showshelf/showshelf/internal/tmdb"
)

// Handler bundles the services the HTTP handlers depend on.
type Handler struct {
	series    *series.Service
	tmdb      tmdb.Lookuper
	startTime time.Time
}

// NewHandler creates a Handler. The tmdb lookuper may be a bare client
// or the circuit-breaker wrapper.
func NewHandler(seriesService *series.Service, lookuper tmdb.Lookuper) *Handler {
	return &Handler{
		series:    seriesService,
		tmdb:      lookuper,
		startTime: time.Now(),
	}
}

// healthResponse is the body of GET /api/health.
type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// Version is the application version, overridable at build time via
// -ldflags "-X github.com/showshelf/showshelf/internal/api.Version=...".
var Version = "dev"

// Health responds with liveness information.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &healthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Version: Version,
	})
}

// NotFound is the fallback for unknown routes and unsupported methods.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, &models.ErrorResponse{
		Error: &models.APIError{
			Code:    "NOT_FOUND",
			Message: "Not found",
		},
	})
}
