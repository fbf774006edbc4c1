// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package models

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure with the category the HTTP boundary needs to
// pick a status code. The mapping to status codes lives in one place
// (internal/api); everything below the boundary only deals in kinds.
type ErrorKind string

const (
	// KindValidation: client-supplied data fails a constraint
	// (missing/empty title, malformed year, missing query). -> 400
	KindValidation ErrorKind = "validation"

	// KindNotFound: an id does not exist in the collection, or the
	// metadata provider returned no results. -> 404
	KindNotFound ErrorKind = "not_found"

	// KindConfiguration: a required external credential is absent. -> 500
	KindConfiguration ErrorKind = "configuration"

	// KindUpstream: a call to the external metadata provider failed. -> 500
	KindUpstream ErrorKind = "upstream"

	// KindInternal: anything else. The error's message is echoed to the
	// caller; no internal detail is redacted. -> 500
	KindInternal ErrorKind = "internal"
)

// Error is the tagged error carried from the domain layer to the HTTP
// boundary. It wraps an optional cause for errors.Is/As chains.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause, if any.
func (e *Error) Unwrap() error { return e.cause }

// NewValidation builds a validation-kind error.
func NewValidation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound builds a not-found-kind error.
func NewNotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConfiguration builds a configuration-kind error.
func NewConfiguration(format string, args ...any) *Error {
	return &Error{Kind: KindConfiguration, Message: fmt.Sprintf(format, args...)}
}

// NewUpstream builds an upstream-kind error wrapping its cause.
func NewUpstream(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the kind from an error chain. Errors that carry no
// kind are internal by definition.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// APIError is the JSON error body returned by every failing endpoint.
//
// Example:
//
//	{"error": {"code": "VALIDATION_ERROR", "message": "title is required"}}
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError for serialization.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}
