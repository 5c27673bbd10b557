// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/service"
	"github.com/MKhiriev/punch-sync/internal/utils"
)

type Handler struct {
	services *service.Services

	// diagnosticsPath is the upstream exchange log served by /api/logs.
	diagnosticsPath string

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

func NewHandler(services *service.Services, diagnosticsPath string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		diagnosticsPath: diagnosticsPath,
		traceIDs:        utils.NewUUIDGenerator(),
		logger:          logger,
	}
}
