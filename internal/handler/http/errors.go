// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	ErrInvalidJSON        = errors.New("invalid JSON was passed")
	ErrInvalidPunchID     = errors.New("punch id must be an integer")
	ErrInvalidLimit       = errors.New("limit must be a non-negative integer")
	ErrInvalidLines       = errors.New("lines must be a non-negative integer")
	ErrSyncNotConfigured  = errors.New("sync is not available: no upstream credential was resolved")
	ErrMethodNotSupported = errors.New("method not supported")
)
