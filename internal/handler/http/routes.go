// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/status", h.getStatus)
	router.Post("/api/sync", h.runSync)

	router.Get("/api/punches/recent", h.getRecentPunches)
	router.Get("/api/punches/{id}/raw", h.getRawPunch)

	router.Get("/api/export.csv", h.exportCSV)
	router.Get("/api/export.xlsx", h.exportXLSX)

	router.Get("/api/logs", h.getLogs)
	router.Get("/api/version", h.getVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
