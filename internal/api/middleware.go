// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// corsMiddleware builds the CORS handler. OptionsPassthrough lets the
// preflight middleware below own the response status.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:     origins,
		AllowedMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:     []string{"*"},
		AllowCredentials:   false,
		MaxAge:             86400,
		OptionsPassthrough: true,
	})
}

// preflightMiddleware answers every OPTIONS request with 204 No Content.
// It runs after the CORS middleware, which has already attached the
// Access-Control-* headers.
func preflightMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts handler panics into a JSON 500 response
// instead of tearing down the connection.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("Handler panic recovered")

				respondJSON(w, http.StatusInternalServerError, &models.ErrorResponse{
					Error: &models.APIError{
						Code:    "INTERNAL_ERROR",
						Message: fmt.Sprintf("%v", rec),
					},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with method, path, status,
// and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		logging.Debug().
			Str("method", r.Method).
			Str("path", sanitizeLogValue(r.URL.Path)).
			Int("status", wrapper.status).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("Request handled")
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// rateLimitMiddleware limits requests per client IP. The rejection body
// uses the same error envelope as every other API error.
func rateLimitMiddleware(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusTooManyRequests, &models.ErrorResponse{
				Error: &models.APIError{
					Code:    "RATE_LIMITED",
					Message: "Too many requests",
				},
			})
		}),
	)
}
