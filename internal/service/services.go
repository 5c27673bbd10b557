// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/internal/validators"
	"github.com/MKhiriev/punch-sync/models"
)

type Services struct {
	SyncService    SyncService
	ExportService  ExportService
	StatusService  StatusService
	AppInfoService AppInfoService
}

// NewServices wires every service onto one store handle and one fetcher.
// fetcher may be nil for commands that never talk to upstream; SyncService
// is nil then.
func NewServices(
	storages *store.Storages,
	fetcher adapter.PageFetcher,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	var syncService SyncService
	if fetcher != nil {
		syncService = NewSyncService(
			fetcher,
			storages.PunchRepository,
			storages.MetadataRepository,
			validators.NewSyncRequestValidator(),
			cfg.Sync,
			logger,
		)
	}

	return &Services{
		SyncService:    syncService,
		ExportService:  NewExportService(storages.PunchRepository, logger),
		StatusService:  NewStatusService(storages.PunchRepository, storages.MetadataRepository, syncService),
		AppInfoService: NewAppInfoService(buildInfo),
	}
}
