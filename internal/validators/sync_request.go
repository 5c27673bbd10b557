// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/MKhiriev/punch-sync/models"
	"github.com/go-playground/validator/v10"
)

// SyncRequestValidator implements [Validator] for [models.SyncRequest] and
// [models.PunchFilters].
//
// Field names passed to Validate are Go field names relative to the
// validated struct, for example "Mode" or "Filters.Status".
type SyncRequestValidator struct {
	validate *validator.Validate
}

// NewSyncRequestValidator constructs a [SyncRequestValidator]. Error messages
// use JSON field names.
func NewSyncRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &SyncRequestValidator{validate: v}
}

func (v *SyncRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SyncRequest:
		return v.validateSyncRequest(ctx, value, fields...)
	case *models.SyncRequest:
		if value == nil {
			return ErrInvalidRequest
		}
		return v.validateSyncRequest(ctx, *value, fields...)

	case models.PunchFilters:
		return v.validateFilters(ctx, value, fields...)
	case *models.PunchFilters:
		if value == nil {
			return ErrInvalidRequest
		}
		return v.validateFilters(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncRequestValidator) validateSyncRequest(ctx context.Context, req models.SyncRequest, fields ...string) error {
	if err := v.structCtx(ctx, req, fields...); err != nil {
		return err
	}
	return checkDateRange(req.Filters)
}

func (v *SyncRequestValidator) validateFilters(ctx context.Context, f models.PunchFilters, fields ...string) error {
	if err := v.structCtx(ctx, f, fields...); err != nil {
		return err
	}
	return checkDateRange(f)
}

func (v *SyncRequestValidator) structCtx(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) == 0 {
		err = v.validate.StructCtx(ctx, obj)
	} else {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrUnsupportedType, err)
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", ErrInvalidRequest, FormatValidationErrors(fieldErrs))
	}
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}

// checkDateRange rejects startDate > endDate. Dates are already known to be
// YYYY-MM-DD, so string order is date order.
func checkDateRange(f models.PunchFilters) error {
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, ErrInvalidDateRange)
	}
	return nil
}

// FormatValidationErrors renders field errors as one human-readable line.
func FormatValidationErrors(errs validator.ValidationErrors) string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, formatFieldError(fe))
	}
	return strings.Join(out, ", ")
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("field '%s' must be numeric", fe.Field())
	case "datetime":
		return fmt.Sprintf("field '%s' must match %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("field '%s' must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("field '%s' failed validation for '%s'", fe.Field(), fe.Tag())
}
