// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the punch sync driver and the read-side services
// built on the record store.
//
// [SyncService] pages through the upstream endpoint, merges the accumulated
// records into the store and advances the watermark only after the merge
// succeeded. Fetch failures abort the run without touching stored state.
//
// [ExportService] projects stored punches into flat rows (CSV, XLSX) and
// exposes raw records for inspection. [StatusService] reports the stored
// sync state.
package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/MKhiriev/punch-sync/models"
)

// SyncService runs punch syncs. At most one sync runs at a time per service.
type SyncService interface {
	// Sync performs one sync run.
	//
	// Normal terminations (last flag, empty page, page count, max pages)
	// merge every accumulated record, then advance the watermark to the
	// current time. Aborts (network, HTTP, parse) return the partial result
	// together with the adapter error and leave the store untouched.
	//
	// Returns [ErrPrecondition] for an incremental sync without a stored
	// watermark, [ErrSyncInProgress] when another run is active and
	// [ErrInvalidSyncRequest] for malformed requests. None of those perform
	// an upstream call.
	Sync(ctx context.Context, req models.SyncRequest) (models.SyncResult, error)

	// Running reports whether a sync is in progress.
	Running() bool
}

// ExportService reads stored punches for export and inspection. Every
// listing is ordered by merge recency, most recent first.
type ExportService interface {
	Rows(ctx context.Context) ([]models.ExportRow, error)
	// Recent returns at most limit rows; limit <= 0 selects the default of 50.
	Recent(ctx context.Context, limit int) ([]models.ExportRow, error)
	WriteCSV(ctx context.Context, w io.Writer) error
	WriteXLSX(ctx context.Context, w io.Writer) error
	// Raw returns the stored upstream record for id.
	Raw(ctx context.Context, id int64) (json.RawMessage, error)
}

// StatusService reports the stored sync state.
type StatusService interface {
	Status(ctx context.Context) (models.SyncStatus, error)
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	BuildInfo(ctx context.Context) models.AppBuildInfo
}
