// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/http"
	"time"
)

// Exchange is one request/response pair reported to the diagnostics sink.
type Exchange struct {
	Timestamp time.Time

	URL        string
	Params     map[string]string
	HeaderKeys []string

	// StatusCode is zero when the request never produced a response.
	StatusCode int
	Header     http.Header
	Body       string

	// Err is set for transport failures.
	Err error
}
