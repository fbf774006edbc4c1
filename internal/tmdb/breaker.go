// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package tmdb

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// BreakerClient wraps a Lookuper with a circuit breaker so a misbehaving
// provider fails fast instead of holding every request for the full HTTP
// timeout.
type BreakerClient struct {
	inner   Lookuper
	breaker *gobreaker.CircuitBreaker[*TVLookup]
}

var _ Lookuper = (*BreakerClient)(nil)

// NewBreakerClient creates a circuit-breaker wrapper around inner.
//
// Not-found and validation outcomes count as successes: a series that
// does not exist says nothing about provider health.
func NewBreakerClient(inner Lookuper) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        "tmdb-api",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			switch models.KindOf(err) {
			case models.KindNotFound, models.KindValidation:
				return true
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}
	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*TVLookup](settings),
	}
}

// Lookup delegates to the wrapped client through the breaker. An open
// breaker surfaces as an upstream error.
func (b *BreakerClient) Lookup(ctx context.Context, query, year string) (*TVLookup, error) {
	result, err := b.breaker.Execute(func() (*TVLookup, error) {
		return b.inner.Lookup(ctx, query, year)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, models.NewUpstream(err, "tmdb temporarily unavailable: %v", err)
		}
		return nil, err
	}
	return result, nil
}
