// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	status, err := h.services.StatusService.Status(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStatus").Msg("error reading sync status")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, status, http.StatusOK)
}
