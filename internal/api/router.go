// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/middleware"
)

// Router wires handlers and configuration into an http.Handler.
type Router struct {
	handler *Handler
	cfg     *config.Config
}

// NewRouter creates a Router.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{handler: handler, cfg: cfg}
}

// Setup configures all HTTP routes using Chi.
//
// Middleware order matters: CORS must precede the preflight responder so
// Access-Control-* headers are attached before the 204 is written, and
// the preflight responder must precede rate limiting so preflights are
// never throttled.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverMiddleware)
	r.Use(corsMiddleware(router.cfg.Security.CORSOrigins))
	r.Use(preflightMiddleware)
	if !router.cfg.Security.RateLimitDisabled {
		r.Use(rateLimitMiddleware(router.cfg.Security.RateLimitReqs, router.cfg.Security.RateLimitWindow))
	}
	r.Use(middleware.PrometheusMetrics)

	// Unknown routes and unsupported methods both answer 404 so the
	// surface stays uniform.
	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.NotFound)

	r.Get("/api/series", router.handler.SeriesList)
	r.Post("/api/series", router.handler.SeriesCreate)
	r.Put("/api/series/{id}", router.handler.SeriesUpdate)
	r.Patch("/api/series/{id}", router.handler.SeriesUpdate)
	r.Delete("/api/series/{id}", router.handler.SeriesDelete)
	r.Get("/api/series.txt", router.handler.SeriesExport)
	r.Get("/api/tmdb", router.handler.TMDBLookup)
	r.Get("/api/health", router.handler.Health)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
