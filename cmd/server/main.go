// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Command server runs the Showshelf HTTP server: a personal TV series
// watchlist backed by BadgerDB with a TMDB metadata lookup proxy.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/showshelf/showshelf/internal/api"
	"github.com/showshelf/showshelf/internal/config"
	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/series"
	"github.com/showshelf/showshelf/internal/store"
	"github.com/showshelf/showshelf/internal/tmdb"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	kv, closeStore, err := openStore(cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("Failed to open store")
	}
	defer closeStore()

	seriesService := series.NewService(kv, cfg.Store.Key)

	var lookuper tmdb.Lookuper = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, cfg.TMDB.Timeout)
	if cfg.TMDB.CircuitBreaker {
		lookuper = tmdb.NewBreakerClient(lookuper)
		logging.Info().Msg("TMDB circuit breaker enabled")
	}
	if cfg.TMDB.APIKey == "" {
		logging.Warn().Msg("TMDB API key is not configured; metadata lookups will fail")
	}

	handler := api.NewHandler(seriesService, lookuper)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", server.Addr).
			Str("backend", cfg.Store.Backend).
			Str("version", api.Version).
			Msg("Showshelf server starting")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	} else {
		logging.Info().Msg("Server stopped")
	}
}

// openStore opens the configured key-value backend and returns it with
// a close function.
func openStore(cfg *config.Config) (store.KV, func(), error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemory(), func() {}, nil
	default:
		db, err := store.OpenBadger(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Failed to close store")
			}
		}, nil
	}
}
