// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/utils"
)

const (
	exportCSVFilename  = "tangerino_punches_full.csv"
	exportXLSXFilename = "tangerino_punches_full.xlsx"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, exportCSVFilename, contentTypeCSV, h.services.ExportService.WriteCSV)
}

func (h *Handler) exportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, exportXLSXFilename, contentTypeXLSX, h.services.ExportService.WriteXLSX)
}

// export renders into a buffer first so that a store failure still yields a
// proper error status instead of a truncated attachment.
func (h *Handler) export(
	w http.ResponseWriter,
	r *http.Request,
	filename, contentType string,
	write func(ctx context.Context, w io.Writer) error,
) {
	log := logger.FromRequest(r)

	var buf bytes.Buffer
	if err := write(r.Context(), &buf); err != nil {
		log.Err(err).Str("func", "*Handler.export").Str("file", filename).Msg("error exporting punches")
		writeError(w, err)
		return
	}

	utils.SetAttachment(w, filename, contentType)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
