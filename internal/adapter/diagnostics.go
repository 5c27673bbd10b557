// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"unicode/utf8"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/rs/zerolog"
)

// DiagnosticsBodyLimit is the number of characters of a response body kept
// in a diagnostics entry.
const DiagnosticsBodyLimit = 2000

type logDiagnostics struct {
	logger *logger.Logger
}

// NewLogDiagnostics returns a [Diagnostics] writing one JSON line per
// exchange through l, normally a logger created with [logger.NewFileLogger].
func NewLogDiagnostics(l *logger.Logger) Diagnostics {
	return &logDiagnostics{logger: l}
}

func (d *logDiagnostics) Report(ctx context.Context, exchange models.Exchange) {
	defer func() {
		_ = recover()
	}()

	params := zerolog.Dict()
	for k, v := range exchange.Params {
		params.Str(k, v)
	}

	event := d.logger.Info().
		Time("timestamp", exchange.Timestamp).
		Dict("request", zerolog.Dict().
			Str("url", exchange.URL).
			Dict("params", params).
			Strs("header_keys", exchange.HeaderKeys)).
		Int("status_code", exchange.StatusCode).
		Interface("response_headers", exchange.Header).
		Str("response_text_truncated", Truncate(exchange.Body, DiagnosticsBodyLimit))

	if runID, ok := utils.GetRunIDFromContext(ctx); ok {
		event = event.Str("run_id", runID)
	}
	if exchange.Err != nil {
		event = event.AnErr("error", exchange.Err)
	}

	event.Msg("upstream exchange")
}

type nopDiagnostics struct{}

// NopDiagnostics discards every exchange.
func NopDiagnostics() Diagnostics { return nopDiagnostics{} }

func (nopDiagnostics) Report(context.Context, models.Exchange) {}

// Truncate returns at most limit characters of s without splitting a rune.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	count := 0
	for i := range s {
		if count == limit {
			return s[:i]
		}
		count++
	}
	return s
}
