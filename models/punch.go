// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrPunchWithoutID is returned by [NewPunch] when the upstream record has no
// usable "id" field. Such records cannot be keyed and are skipped at merge time.
var ErrPunchWithoutID = errors.New("punch record has no id")

// Punch is a single time-clock record as stored locally.
//
// Only ID is used as identity; every other column is a projection of Raw,
// which keeps the upstream object verbatim so that schema changes upstream
// never lose data.
type Punch struct {
	// ID is the upstream-assigned identity. Unique key for upsert.
	ID int64 `json:"id"`

	// EmployeeID is resolved from the top-level "employeeId" field, then from
	// the nested "employee.id" field. Nil when neither is present.
	EmployeeID *int64 `json:"employeeId"`

	// Date is the punch date/timestamp as returned upstream. Format is opaque.
	Date string `json:"date"`

	// Status is the upstream status (APPROVED, PENDING, REPROVED, ...).
	// It is not validated locally.
	Status string `json:"status"`

	// LastModifiedDate is the upstream last-modification timestamp.
	LastModifiedDate string `json:"lastModifiedDate"`

	// Raw is the complete upstream record.
	Raw json.RawMessage `json:"raw"`

	// SavedAt is the local merge time in milliseconds since epoch. It is set
	// by the store and drives insertion-recency ordering.
	SavedAt int64 `json:"savedAt,omitempty"`
}

type punchProbe struct {
	ID               json.RawMessage `json:"id"`
	EmployeeID       json.RawMessage `json:"employeeId"`
	Employee         json.RawMessage `json:"employee"`
	Date             json.RawMessage `json:"date"`
	Status           json.RawMessage `json:"status"`
	LastModifiedDate json.RawMessage `json:"lastModifiedDate"`
}

type employeeProbe struct {
	ID json.RawMessage `json:"id"`
}

// NewPunch projects a raw upstream record into a [Punch]. The raw bytes are
// compacted but otherwise kept as-is.
func NewPunch(raw json.RawMessage) (Punch, error) {
	var probe punchProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Punch{}, fmt.Errorf("decode punch record: %w", err)
	}

	id := flexInt(probe.ID)
	if id == nil {
		return Punch{}, ErrPunchWithoutID
	}

	var compacted bytes.Buffer
	if err := json.Compact(&compacted, raw); err != nil {
		return Punch{}, fmt.Errorf("compact punch record: %w", err)
	}

	return Punch{
		ID:               *id,
		EmployeeID:       resolveEmployeeID(probe),
		Date:             flexString(probe.Date),
		Status:           flexString(probe.Status),
		LastModifiedDate: flexString(probe.LastModifiedDate),
		Raw:              compacted.Bytes(),
	}, nil
}

// resolveEmployeeID applies the lookup order: top-level field, nested
// employee.id, else nil.
func resolveEmployeeID(probe punchProbe) *int64 {
	if id := flexInt(probe.EmployeeID); id != nil {
		return id
	}

	if isNull(probe.Employee) {
		return nil
	}

	var employee employeeProbe
	if err := json.Unmarshal(probe.Employee, &employee); err != nil {
		return nil
	}

	return flexInt(employee.ID)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// flexInt reads a JSON number or a numeric string as int64.
func flexInt(raw json.RawMessage) *int64 {
	if isNull(raw) {
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(raw, &number); err == nil {
		if v, convErr := number.Int64(); convErr == nil {
			return &v
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil
	}

	return &v
}

// flexString returns a JSON string as-is and any other literal as its JSON
// text, so numeric epoch dates survive unchanged.
func flexString(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	return string(bytes.TrimSpace(raw))
}
