// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package series

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
	"github.com/showshelf/showshelf/internal/store"
)

// Service owns the series collection: one JSON document in the KV
// store, read in full at the start of every operation and written back
// in full after every mutation.
//
// Concurrent mutations race (last write wins); the service adds no
// locking, versioning, or transaction discipline on top of the store.
type Service struct {
	kv  store.KV
	key string
}

// NewService creates a Service persisting the collection under key.
func NewService(kv store.KV, key string) *Service {
	return &Service{kv: kv, key: key}
}

// load reads and repairs the stored collection. A missing key or a
// malformed document yields an empty collection; a failing store read
// propagates so the boundary can surface it as a 500.
func (s *Service) load(ctx context.Context) ([]models.Series, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load collection: %w", err)
	}
	return decodeCollection(raw), nil
}

// save writes the whole collection back under the collection key.
func (s *Service) save(ctx context.Context, items []models.Series) error {
	if items == nil {
		items = []models.Series{}
	}
	raw, err := encodeCollection(items)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// List returns the full collection in stored order.
func (s *Service) List(ctx context.Context) ([]models.Series, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Series{}
	}
	return items, nil
}

// Create validates the request, appends a fresh record to the end of
// the collection, persists it, and returns the created record.
func (s *Service) Create(ctx context.Context, req *models.CreateSeriesRequest) (*models.Series, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, models.NewValidation("title is required")
	}

	year, err := parseYear(req.Year)
	if err != nil {
		return nil, err
	}

	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rec := models.Series{
		ID:    uuid.NewString(),
		Title: title,
		Year:  year,
	}
	items = append(items, rec)

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}

	logging.Info().Str("id", rec.ID).Str("title", rec.Title).Msg("Series created")
	return &rec, nil
}

// Update applies each field present in the request independently, then
// persists the full collection. Absent fields leave the stored values
// unchanged. Title and year reject invalid input; rating and watched
// clamp instead of rejecting.
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateSeriesRequest) (*models.Series, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return nil, models.NewNotFound("series %s not found", id)
	}
	rec := &items[idx]

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, models.NewValidation("title cannot be empty")
		}
		rec.Title = title
	}

	if req.Year != nil {
		year, err := parseYear(req.Year)
		if err != nil {
			return nil, err
		}
		rec.Year = year
	}

	if req.Rating != nil {
		rec.Rating = clampRating(coerceNumber(req.Rating))
	}

	if req.Watched != nil {
		rec.Watched = clampWatched(coerceNumber(req.Watched))
	}

	if err := s.save(ctx, items); err != nil {
		return nil, err
	}

	logging.Debug().Str("id", rec.ID).Msg("Series updated")
	return rec, nil
}

// Delete removes the matching record, preserving the order of the
// remaining records, and persists the collection.
func (s *Service) Delete(ctx context.Context, id string) error {
	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return models.NewNotFound("series %s not found", id)
	}
	items = append(items[:idx], items[idx+1:]...)

	if err := s.save(ctx, items); err != nil {
		return err
	}

	logging.Info().Str("id", id).Msg("Series deleted")
	return nil
}

// ExportText renders the collection as newline-separated lines, one per
// record: "{title} — {year}" when the year is present and non-zero,
// else just the title. Read-only; no persistence side effect.
func (s *Service) ExportText(ctx context.Context) (string, error) {
	items, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(items))
	for _, rec := range items {
		if rec.Year != nil && *rec.Year != 0 {
			lines = append(lines, fmt.Sprintf("%s — %d", rec.Title, *rec.Year))
		} else {
			lines = append(lines, rec.Title)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// indexOf finds the position of the record with the given id, or -1.
func indexOf(items []models.Series, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
