// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getRecentPunches(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		writeError(w, ErrInvalidLimit)
		return
	}

	rows, err := h.services.ExportService.Recent(r.Context(), limit)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRecentPunches").Msg("error reading recent punches")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, rows, http.StatusOK)
}

func (h *Handler) getRawPunch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, ErrInvalidPunchID)
		return
	}

	raw, err := h.services.ExportService.Raw(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getRawPunch").Int64("id", id).Msg("error reading raw punch")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// queryInt reads a non-negative integer query parameter, returning def when
// the parameter is absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
