// Showshelf - Personal TV Series Watchlist
// Copyright 2026 Showshelf contributors
// SPDX-License-Identifier: MIT
// https://github.com/showshelf/showshelf

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(Config{})

	Info().Str("component", "test").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) {
		t.Errorf("expected JSON message field, got %q", out)
	}
	if !strings.Contains(out, `"component":"test"`) {
		t.Errorf("expected structured field, got %q", out)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "error", Format: "json", Output: &buf})
	defer Init(Config{})

	Info().Msg("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("info log emitted at error level: %q", buf.String())
	}

	Error().Msg("should be emitted")
	if buf.Len() == 0 {
		t.Error("error log not emitted at error level")
	}
}
