// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
)

const defaultLogLines = 200

type logsResponse struct {
	Path  string   `json:"path"`
	Lines []string `json:"lines"`
}

func (h *Handler) getLogs(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	n, err := queryInt(r, "lines", defaultLogLines)
	if err != nil {
		writeError(w, ErrInvalidLines)
		return
	}

	lines, err := logger.Tail(h.diagnosticsPath, n)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getLogs").Msg("error reading diagnostics log")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, logsResponse{Path: h.diagnosticsPath, Lines: lines}, http.StatusOK)
}
