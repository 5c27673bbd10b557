// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/models"
)

type statusService struct {
	punches  store.PunchRepository
	metadata store.MetadataRepository
	sync     SyncService
}

// NewStatusService builds a [StatusService]. sync may be nil when no sync
// driver is wired, in which case Running is always false.
func NewStatusService(punches store.PunchRepository, metadata store.MetadataRepository, sync SyncService) StatusService {
	return &statusService{
		punches:  punches,
		metadata: metadata,
		sync:     sync,
	}
}

func (s *statusService) Status(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus

	watermark, err := s.metadata.GetWatermark(ctx)
	if err != nil {
		return status, fmt.Errorf("read watermark: %w", err)
	}
	if watermark != nil {
		status.Watermark = watermark
		at := time.UnixMilli(*watermark).UTC()
		status.WatermarkTime = &at
	}

	count, err := s.punches.Count(ctx)
	if err != nil {
		return status, fmt.Errorf("count punches: %w", err)
	}
	status.StoredPunches = count

	if s.sync != nil {
		status.Running = s.sync.Running()
	}

	return status, nil
}
