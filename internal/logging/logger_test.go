// Irodori - Outfit Recommendation Engine
// Copyright 2026 hamadayuuki
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hamadayuuki/irodori-api

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Logger()
	logger.Debug().Str("segment", "men").Msg("index loaded")

	output := buf.String()
	if !strings.Contains(output, `"message":"index loaded"`) {
		t.Errorf("missing message: %s", output)
	}
	if !strings.Contains(output, `"segment":"men"`) {
		t.Errorf("missing field: %s", output)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := Logger()
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("info entry should be filtered: %s", output)
	}
	if !strings.Contains(output, "shown") {
		t.Errorf("warn entry missing: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"ERROR", zerolog.ErrorLevel},
		{" fatal ", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"debug", "Info", "warning", "off"} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, level := range []string{"", "verbose", "panic"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true", level)
		}
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	logger := WithComponent("storage")
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"storage"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}

func TestCtx_RequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))
	ctx = ContextWithRequestID(ctx, "req-123")

	Ctx(ctx).Info().Msg("served")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("missing request_id: %s", buf.String())
	}
}

func TestCtx_WithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), zerolog.New(&buf))

	Ctx(ctx).Info().Msg("served")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("unexpected request_id: %s", buf.String())
	}
}

func TestCtx_FallsBackToGlobal(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-9")
	Ctx(ctx).Info().Msg("served")

	if !strings.Contains(buf.String(), `"request_id":"req-9"`) {
		t.Errorf("missing request_id: %s", buf.String())
	}
}

func TestContextWithNewRequestID(t *testing.T) {
	ctx := ContextWithNewRequestID(context.Background())
	id := RequestIDFromContext(ctx)
	if len(id) != 36 {
		t.Errorf("request id %q is not a UUID", id)
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should have no request id")
	}
}
