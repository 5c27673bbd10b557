// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError returns nil for 2xx responses and an [*HTTPError] otherwise.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	raw := resp.Body()
	httpErr := &HTTPError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(raw)),
		Header:     resp.Header().Clone(),
	}
	if len(raw) > 0 && json.Valid(raw) {
		httpErr.Detail = append(json.RawMessage(nil), raw...)
	}

	return httpErr
}
