// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package metrics provides Prometheus instrumentation for API traffic,
// the key-value store, and metadata lookups. All collectors register
// with the default registry via promauto and are served at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of key-value store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of key-value store operation errors",
		},
		[]string{"operation"},
	)

	// Metadata Lookup Metrics
	LookupRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_lookup_requests_total",
			Help: "Total number of TMDB lookup requests",
		},
		[]string{"outcome"}, // "success", "not_found", "upstream_error", "error"
	)

	LookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tmdb_lookup_duration_seconds",
			Help:    "Duration of TMDB lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records a key-value store operation metric
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation).Inc()
	}
}

// RecordLookup records a metadata lookup metric
func RecordLookup(outcome string, duration time.Duration) {
	LookupRequestsTotal.WithLabelValues(outcome).Inc()
	LookupDuration.Observe(duration.Seconds())
}
