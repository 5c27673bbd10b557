// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferDiagnostics(buf *bytes.Buffer) Diagnostics {
	l := logger.Nop()
	l.Logger = l.Output(buf).Level(0)
	return NewLogDiagnostics(l)
}

func TestLogDiagnostics_Report(t *testing.T) {
	var buf bytes.Buffer
	d := newBufferDiagnostics(&buf)

	ctx := utils.WithRunID(context.Background(), "run-42")
	d.Report(ctx, models.Exchange{
		Timestamp:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		URL:        "https://api.example.com/punch/search?page=0&size=200",
		Params:     map[string]string{"page": "0", "size": "200"},
		HeaderKeys: []string{"Accept", "Authorization"},
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       strings.Repeat("x", 3000),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "run-42", entry["run_id"])
	assert.EqualValues(t, 200, entry["status_code"])
	assert.Len(t, entry["response_text_truncated"], DiagnosticsBodyLimit)
	assert.NotContains(t, entry, "error")

	request, ok := entry["request"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com/punch/search?page=0&size=200", request["url"])
	assert.Equal(t, map[string]any{"page": "0", "size": "200"}, request["params"])
	assert.Equal(t, []any{"Accept", "Authorization"}, request["header_keys"])

	headers, ok := entry["response_headers"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, headers, "Content-Type")
}

func TestLogDiagnostics_ReportTransportError(t *testing.T) {
	var buf bytes.Buffer
	d := newBufferDiagnostics(&buf)

	d.Report(context.Background(), models.Exchange{
		Timestamp: time.Now(),
		URL:       "https://api.example.com/punch/search",
		Err:       errors.New("connection refused"),
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "connection refused", entry["error"])
	assert.EqualValues(t, 0, entry["status_code"])
	assert.NotContains(t, entry, "run_id")
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLogDiagnostics_WriteFailureIsSwallowed(t *testing.T) {
	l := logger.Nop()
	l.Logger = l.Output(failingWriter{}).Level(0)
	d := NewLogDiagnostics(l)

	assert.NotPanics(t, func() {
		d.Report(context.Background(), models.Exchange{URL: "https://api.example.com"})
	})
}

func TestNopDiagnostics(t *testing.T) {
	assert.NotPanics(t, func() {
		NopDiagnostics().Report(context.Background(), models.Exchange{})
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "shorter", in: "abc", limit: 10, want: "abc"},
		{name: "exact", in: "abc", limit: 3, want: "abc"},
		{name: "longer", in: "abcdef", limit: 4, want: "abcd"},
		{name: "multibyte", in: "ãéîõü", limit: 2, want: "ãé"},
		{name: "zero limit", in: "abc", limit: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.limit))
		})
	}
}
