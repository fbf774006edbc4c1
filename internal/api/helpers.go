// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/showshelf/showshelf/internal/logging"
	"github.com/showshelf/showshelf/internal/models"
)

// sanitizeLogValue removes control characters from strings to prevent
// log injection. Newlines and other control characters could otherwise
// forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// statusForError maps an error to the HTTP status and stable error code
// the API exposes. Unknown errors are treated as internal.
func statusForError(err error) (int, string) {
	switch models.KindOf(err) {
	case models.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case models.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case models.KindConfiguration:
		return http.StatusInternalServerError, "CONFIGURATION_ERROR"
	case models.KindUpstream:
		return http.StatusInternalServerError, "UPSTREAM_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// respondError sends an error response. The error message is passed
// through to the client verbatim; this is a single-user service and the
// messages are the primary debugging surface.
func respondError(w http.ResponseWriter, err error) {
	status, code := statusForError(err)

	event := logging.Debug()
	if status >= http.StatusInternalServerError {
		event = logging.Error()
	}
	event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")

	respondJSON(w, status, &models.ErrorResponse{
		Error: &models.APIError{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// decodeBody decodes a JSON request body into dst, translating malformed
// input into a validation error.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidation("invalid JSON body")
	}
	return nil
}
