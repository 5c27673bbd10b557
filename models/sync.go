// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// SyncMode selects the lower bound of the fetch window.
type SyncMode string

const (
	// SyncModeFull fetches with no lower bound (lastUpdate=0).
	SyncModeFull SyncMode = "full"
	// SyncModeIncremental fetches from the stored watermark.
	SyncModeIncremental SyncMode = "incremental"
)

// TerminationReason explains why a sync stopped paging.
type TerminationReason string

const (
	ReasonNetworkError     TerminationReason = "network_error"
	ReasonHTTPError        TerminationReason = "http_error"
	ReasonParseError       TerminationReason = "parse_error"
	ReasonLastFlagTrue     TerminationReason = "last_flag_true"
	ReasonEmptyPage        TerminationReason = "empty_page"
	ReasonPageCountReached TerminationReason = "page_count_reached"
	ReasonMaxPagesReached  TerminationReason = "max_pages_reached"
)

// Aborted reports whether the reason is a fetch-phase failure. Aborted syncs
// neither merge records nor advance the watermark.
func (r TerminationReason) Aborted() bool {
	switch r {
	case ReasonNetworkError, ReasonHTTPError, ReasonParseError:
		return true
	default:
		return false
	}
}

// SyncRequest is the input of a single sync run.
type SyncRequest struct {
	// Mode is full or incremental.
	Mode SyncMode `json:"mode" validate:"required,oneof=full incremental"`

	// Filters narrow the upstream query.
	Filters PunchFilters `json:"filters"`

	// PageSize overrides the configured page size when positive.
	PageSize int `json:"pageSize" validate:"gte=0,lte=1000"`

	// MaxPages overrides the configured safety bound when positive.
	MaxPages int `json:"maxPages" validate:"gte=0,lte=5000"`
}

// SyncResult summarises a sync run. On aborted runs Records holds whatever
// was accumulated before the failure, for diagnostics only.
type SyncResult struct {
	RunID string   `json:"runId"`
	Mode  SyncMode `json:"mode"`

	// RecordCount is the number of records accumulated across all pages.
	RecordCount int `json:"recordCount"`
	// Merged is the number of rows written to the store. Zero on abort.
	Merged int `json:"merged"`
	// Skipped counts records that could not be keyed (no id).
	Skipped int `json:"skipped"`
	// Pages is the number of page fetches attempted.
	Pages int `json:"pages"`

	Reason TerminationReason `json:"reason"`
	// StatusCode is the HTTP status of the failing response for http_error.
	StatusCode int `json:"statusCode,omitempty"`

	// PreviousWatermark is the watermark read at sync start (nil if none).
	PreviousWatermark *int64 `json:"previousWatermark,omitempty"`
	// Watermark is the value stored at sync end, nil when not advanced.
	Watermark *int64 `json:"watermark,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`

	// LastPage is the last page response seen, for the dashboard.
	LastPage *Page `json:"lastPage,omitempty"`

	Records []json.RawMessage `json:"-"`
}

// SyncStatus is the stored sync state shown on the dashboard.
type SyncStatus struct {
	Watermark     *int64     `json:"watermark"`
	WatermarkTime *time.Time `json:"watermarkTime,omitempty"`
	StoredPunches int64      `json:"storedPunches"`
	Running       bool       `json:"running"`
}
