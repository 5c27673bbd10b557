// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrPrecondition is returned by an incremental sync when no watermark
	// has been stored yet. A full sync must run first.
	ErrPrecondition = errors.New("incremental sync requires a stored watermark, run a full sync first")

	// ErrSyncInProgress is returned when another sync holds the driver.
	ErrSyncInProgress = errors.New("a sync is already in progress")

	ErrInvalidSyncRequest = errors.New("invalid sync request")
)
