// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/xuri/excelize/v2"
)

const (
	// DefaultRecentLimit is the preview size used when none is given.
	DefaultRecentLimit = 50

	// ExportSheetName is the worksheet holding exported punches.
	ExportSheetName = "punches"
)

type exportService struct {
	punches store.PunchRepository
	logger  *logger.Logger
}

func NewExportService(punches store.PunchRepository, logger *logger.Logger) ExportService {
	return &exportService{
		punches: punches,
		logger:  logger,
	}
}

func (s *exportService) Rows(ctx context.Context) ([]models.ExportRow, error) {
	punches, err := s.punches.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query punches: %w", err)
	}
	return toRows(punches), nil
}

func (s *exportService) Recent(ctx context.Context, limit int) ([]models.ExportRow, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	punches, err := s.punches.QueryRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent punches: %w", err)
	}
	return toRows(punches), nil
}

func (s *exportService) WriteCSV(ctx context.Context, w io.Writer) error {
	rows, err := s.Rows(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err = cw.Write(models.ExportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		if err = cw.Write(row.Strings()); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.ID, err)
		}
	}
	cw.Flush()

	if err = cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "exportService.WriteCSV").
		Int("rows", len(rows)).
		Msg("csv export written")
	return nil
}

func (s *exportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	rows, err := s.Rows(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err = f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(models.ExportHeader))
	for i, h := range models.ExportHeader {
		header[i] = h
	}
	if err = f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx cell for row %d: %w", i, err)
		}

		var employee any = ""
		if row.EmployeeID != nil {
			employee = *row.EmployeeID
		}
		values := []any{row.ID, employee, row.Date, row.Status, row.LastModifiedDate}
		if err = f.SetSheetRow(ExportSheetName, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", row.ID, err)
		}
	}

	if err = f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "exportService.WriteXLSX").
		Int("rows", len(rows)).
		Msg("xlsx export written")
	return nil
}

func (s *exportService) Raw(ctx context.Context, id int64) (json.RawMessage, error) {
	p, err := s.punches.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Raw, nil
}

func toRows(punches []models.Punch) []models.ExportRow {
	rows := make([]models.ExportRow, 0, len(punches))
	for _, p := range punches {
		rows = append(rows, models.NewExportRow(p))
	}
	return rows
}
