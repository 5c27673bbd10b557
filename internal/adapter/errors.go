// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork marks transport failures: DNS, connection refused, TLS and
	// timeouts. A sync aborted by it can be re-run from the same watermark.
	ErrNetwork = errors.New("network error")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// HTTPError is returned when upstream answered with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
	Header     http.Header
	// Detail is the body as JSON when the body is valid JSON.
	Detail json.RawMessage
}

func (e *HTTPError) Error() string {
	body := e.Body
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, body)
}

// Retryable reports whether re-running the same request may succeed.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// Is lets callers match an HTTPError against the status sentinels.
func (e *HTTPError) Is(target error) bool {
	sentinel, ok := statusSentinels[e.StatusCode]
	return ok && target == sentinel
}

var statusSentinels = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// ParseError is returned when a 2xx body is neither a JSON object nor a JSON
// array. Body carries the full response for manual diagnosis.
type ParseError struct {
	Detail string
	Body   string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Detail
}
