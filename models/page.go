// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// LastPageFlag is the tri-state "is last page" signal read from the
// upstream "last" field.
type LastPageFlag int8

const (
	// LastPageUnknown means the response carried no boolean "last" field.
	LastPageUnknown LastPageFlag = iota
	// LastPageFalse means the response explicitly said more pages follow.
	LastPageFalse
	// LastPageTrue means the response explicitly marked itself as the last page.
	LastPageTrue
)

// String implements fmt.Stringer.
func (f LastPageFlag) String() string {
	switch f {
	case LastPageTrue:
		return "true"
	case LastPageFalse:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the flag as true, false or null.
func (f LastPageFlag) MarshalJSON() ([]byte, error) {
	switch f {
	case LastPageTrue:
		return []byte("true"), nil
	case LastPageFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// PageRequest describes a single paginated call to the upstream punch endpoint.
type PageRequest struct {
	// Page is the zero-based page index.
	Page int
	// Size is the requested page size.
	Size int
	// Filters are passed through as query parameters.
	Filters map[string]string
}

// Params returns the full query parameter set for the request. The page and
// size keys always win over same-named filters.
func (r PageRequest) Params() map[string]string {
	params := make(map[string]string, len(r.Filters)+2)
	for k, v := range r.Filters {
		params[k] = v
	}
	params["page"] = strconv.Itoa(r.Page)
	params["size"] = strconv.Itoa(r.Size)

	return params
}

// Page is the normalized result of one upstream call.
type Page struct {
	// Records are the raw upstream objects in response order.
	Records []json.RawMessage `json:"-"`

	// Last is the tri-state last-page signal.
	Last LastPageFlag `json:"last"`

	// Pagination metadata, copied when present in the response body.
	First            *bool  `json:"first,omitempty"`
	Number           *int   `json:"number,omitempty"`
	TotalPages       *int   `json:"totalPages,omitempty"`
	TotalElements    *int64 `json:"totalElements,omitempty"`
	NumberOfElements *int   `json:"numberOfElements,omitempty"`
	Size             *int   `json:"size,omitempty"`

	// Response holds transport details for diagnostics.
	Response ResponseInfo `json:"response"`
}

// ResponseInfo is a diagnostic snapshot of an upstream HTTP response.
type ResponseInfo struct {
	URL        string      `json:"url"`
	StatusCode int         `json:"statusCode"`
	Header     http.Header `json:"headers,omitempty"`
	// Text is the response body truncated for in-memory display.
	Text string `json:"text,omitempty"`
}
