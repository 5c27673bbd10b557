// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/punch-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// PunchRepository persists punches keyed by upstream id.
type PunchRepository interface {
	// Upsert inserts or fully replaces every punch in one transaction and
	// returns the number of rows merged. Either all rows become visible or
	// none do.
	Upsert(ctx context.Context, punches ...models.Punch) (int, error)
	// QueryAll returns every stored punch, most recently merged first.
	QueryAll(ctx context.Context) ([]models.Punch, error)
	// QueryRecent returns at most limit punches, most recently merged first.
	QueryRecent(ctx context.Context, limit int) ([]models.Punch, error)
	// Get returns one punch or [ErrPunchNotFound].
	Get(ctx context.Context, id int64) (models.Punch, error)
	// Count returns the number of stored punches.
	Count(ctx context.Context) (int64, error)
}

// MetadataRepository stores single-row-per-key settings, the sync watermark
// among them.
type MetadataRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// GetWatermark returns nil before the first successful sync.
	GetWatermark(ctx context.Context) (*int64, error)
	// SetWatermark stores ms unless a larger value is already stored and
	// returns the value in effect afterwards.
	SetWatermark(ctx context.Context, ms int64) (int64, error)
}
