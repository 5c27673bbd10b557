// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/models"
)

// syncFailureResponse carries everything needed to diagnose an aborted sync:
// the upstream status, body and headers plus the partial result.
type syncFailureResponse struct {
	Error          string            `json:"error"`
	Reason         string            `json:"reason"`
	StatusCode     int               `json:"statusCode,omitempty"`
	UpstreamBody   string            `json:"upstreamBody,omitempty"`
	UpstreamHeader http.Header       `json:"upstreamHeaders,omitempty"`
	Result         models.SyncResult `json:"result"`
}

func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if h.services.SyncService == nil {
		writeError(w, ErrSyncNotConfigured)
		return
	}

	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.runSync").Msg("invalid JSON was passed")
		writeError(w, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.SyncService.Sync(ctx, req)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.runSync").
			Str("reason", string(result.Reason)).
			Msg("sync failed")

		if result.Reason.Aborted() {
			utils.WriteJSON(w, newSyncFailureResponse(err, result), http.StatusBadGateway)
			return
		}
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func newSyncFailureResponse(err error, result models.SyncResult) syncFailureResponse {
	resp := syncFailureResponse{
		Error:      err.Error(),
		Reason:     string(result.Reason),
		StatusCode: result.StatusCode,
		Result:     result,
	}

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		resp.UpstreamBody = httpErr.Body
		resp.UpstreamHeader = httpErr.Header
	}

	var parseErr *adapter.ParseError
	if errors.As(err, &parseErr) {
		resp.UpstreamBody = parseErr.Body
	}

	return resp
}
