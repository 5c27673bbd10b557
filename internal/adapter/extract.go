// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/punch-sync/models"
)

// recordKeys is the ordered list of object keys probed for the record list.
// The first key holding a JSON array wins.
var recordKeys = []string{"content", "items", "data", "result"}

// decodePage normalizes one upstream body into a [models.Page].
//
// A body that is a JSON array is the record list itself. A JSON object is
// probed with recordKeys; when nothing matches the page is empty. Any other
// body is a [*ParseError].
func decodePage(body []byte) (models.Page, error) {
	trimmed := bytes.TrimSpace(body)

	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return models.Page{}, &ParseError{Detail: fmt.Sprintf("decode record list: %v", err), Body: string(body)}
		}
		return models.Page{Records: nonNil(records)}, nil

	case len(trimmed) > 0 && trimmed[0] == '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return models.Page{}, &ParseError{Detail: fmt.Sprintf("decode object: %v", err), Body: string(body)}
		}

		page := models.Page{Records: extractRecords(fields)}
		page.Last = lastPageFlag(fields)
		page.First = optional[bool](fields, "first")
		page.Number = optional[int](fields, "number")
		page.TotalPages = optional[int](fields, "totalPages")
		page.TotalElements = optional[int64](fields, "totalElements")
		page.NumberOfElements = optional[int](fields, "numberOfElements")
		page.Size = optional[int](fields, "size")
		return page, nil

	default:
		return models.Page{}, &ParseError{Detail: "body is neither a JSON object nor a JSON array", Body: string(body)}
	}
}

// extractRecords applies the recordKeys priority list. Keys whose value is
// not an array are skipped.
func extractRecords(fields map[string]json.RawMessage) []json.RawMessage {
	for _, key := range recordKeys {
		value, ok := fields[key]
		if !ok {
			continue
		}

		var records []json.RawMessage
		if !isArray(value) || json.Unmarshal(value, &records) != nil {
			continue
		}
		return nonNil(records)
	}

	return []json.RawMessage{}
}

func lastPageFlag(fields map[string]json.RawMessage) models.LastPageFlag {
	last := optional[bool](fields, "last")
	switch {
	case last == nil:
		return models.LastPageUnknown
	case *last:
		return models.LastPageTrue
	default:
		return models.LastPageFalse
	}
}

// optional decodes fields[key] into T. Absent keys, nulls and values of
// another type yield nil.
func optional[T any](fields map[string]json.RawMessage, key string) *T {
	value, ok := fields[key]
	if !ok {
		return nil
	}

	var v *T
	if err := json.Unmarshal(value, &v); err != nil {
		return nil
	}
	return v
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func nonNil(records []json.RawMessage) []json.RawMessage {
	if records == nil {
		return []json.RawMessage{}
	}
	return records
}
