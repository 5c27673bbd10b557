// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strconv"

// ExportHeader is the column order of flat exports.
var ExportHeader = []string{"id", "employeeId", "date", "status", "lastModifiedDate"}

// ExportRow is the flat projection of a stored punch.
type ExportRow struct {
	ID               int64  `json:"id"`
	EmployeeID       *int64 `json:"employeeId"`
	Date             string `json:"date"`
	Status           string `json:"status"`
	LastModifiedDate string `json:"lastModifiedDate"`
}

// NewExportRow projects p onto the export columns.
func NewExportRow(p Punch) ExportRow {
	return ExportRow{
		ID:               p.ID,
		EmployeeID:       p.EmployeeID,
		Date:             p.Date,
		Status:           p.Status,
		LastModifiedDate: p.LastModifiedDate,
	}
}

// Strings renders the row in [ExportHeader] order. A nil employee id is an
// empty cell.
func (r ExportRow) Strings() []string {
	employee := ""
	if r.EmployeeID != nil {
		employee = strconv.FormatInt(*r.EmployeeID, 10)
	}

	return []string{
		strconv.FormatInt(r.ID, 10),
		employee,
		r.Date,
		r.Status,
		r.LastModifiedDate,
	}
}
