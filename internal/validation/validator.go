// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

// Package validation provides struct validation using go-playground/validator v10.
// It exposes a thread-safe singleton validator with custom validators for
// application-specific rules and translates failures into the tagged error
// model used across the API.
//
// Example usage:
//
//	type LookupRequest struct {
//	    Query string `validate:"required,notblank"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // err carries the validation kind; respondError maps it to 400.
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/showshelf/showshelf/internal/models"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance.
// The validator is initialized once with custom validators and options.
// This function is thread-safe.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// notblank rejects strings that are empty after trimming, which
		// "required" alone does not catch.
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})

	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or a validation-kind error whose
// message lists every failing field.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return models.NewValidation("validation failed: %v", err)
	}

	messages := make([]string, len(validationErrs))
	for i, fieldErr := range validationErrs {
		messages[i] = translateError(fieldErr)
	}

	return models.NewValidation("%s", strings.Join(messages, "; "))
}

// errorMessageTemplates maps validation tags to message templates.
var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"notblank": "%s must not be blank",
	"url":      "%s must be a valid URL",
	"hostname": "%s must be a valid hostname",
}

// errorMessageWithParam maps validation tags to templates that include param.
var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
}

// translateError converts a validator.FieldError to a human-readable message.
func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}

	return fmt.Sprintf("%s failed %s validation", field, tag)
}
