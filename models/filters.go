// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Upstream filter parameter names.
const (
	ParamLastUpdate  = "lastUpdate"
	ParamStartDate   = "startDate"
	ParamEndDate     = "endDate"
	ParamEmployeeID  = "employeeId"
	ParamStatus      = "status"
	ParamOnlyPending = "onlyPending"
)

// Punch statuses accepted by the upstream status filter.
const (
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusReproved = "REPROVED"
)

// PunchFilters are the typed filters offered by the CLI and dashboard.
// Extra carries any other key-value pair straight through to the query.
type PunchFilters struct {
	StartDate   string            `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string            `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmployeeID  string            `json:"employeeId,omitempty" validate:"omitempty,numeric"`
	Status      string            `json:"status,omitempty" validate:"omitempty,oneof=APPROVED PENDING REPROVED"`
	OnlyPending bool              `json:"onlyPending,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Params flattens the filters into query parameters. Empty fields are omitted.
// Typed fields override same-named Extra keys.
func (f PunchFilters) Params() map[string]string {
	params := make(map[string]string, len(f.Extra)+5)
	for k, v := range f.Extra {
		params[k] = v
	}

	set := func(key, value string) {
		if value != "" {
			params[key] = value
		}
	}
	set(ParamStartDate, f.StartDate)
	set(ParamEndDate, f.EndDate)
	set(ParamEmployeeID, f.EmployeeID)
	set(ParamStatus, f.Status)
	if f.OnlyPending {
		params[ParamOnlyPending] = "true"
	}

	return params
}
