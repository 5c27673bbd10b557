// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/internal/service"
	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:       http.StatusBadRequest,
	ErrInvalidPunchID:    http.StatusBadRequest,
	ErrInvalidLimit:      http.StatusBadRequest,
	ErrInvalidLines:      http.StatusBadRequest,
	ErrSyncNotConfigured: http.StatusServiceUnavailable,

	service.ErrPrecondition:       http.StatusConflict,
	service.ErrSyncInProgress:     http.StatusConflict,
	service.ErrInvalidSyncRequest: http.StatusBadRequest,
	validators.ErrInvalidRequest:  http.StatusBadRequest,

	adapter.ErrNetwork: http.StatusBadGateway,

	store.ErrPunchNotFound:    http.StatusNotFound,
	store.ErrInvalidWatermark: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrPreparingStatement:   http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// statusFromError maps err onto a response status. Transient store failures
// and upstream failures are checked first because they wrap the generic
// store sentinels.
func statusFromError(err error) int {
	if errors.Is(err, store.ErrRetryableStore) {
		return http.StatusServiceUnavailable
	}

	var httpErr *adapter.HTTPError
	var parseErr *adapter.ParseError
	if errors.As(err, &httpErr) || errors.As(err, &parseErr) {
		return http.StatusBadGateway
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, err error) {
	writeErrorStatus(w, err, statusFromError(err))
}

func writeErrorStatus(w http.ResponseWriter, err error, status int) {
	utils.WriteJSON(w, errorResponse{Error: err.Error()}, status)
}
