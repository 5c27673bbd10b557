// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidUpstreamConfigs indicates invalid upstream API settings
	// (for example, a base URL without scheme or a too short timeout).
	ErrInvalidUpstreamConfigs = errors.New("invalid upstream configuration")
	// ErrInvalidSyncConfigs indicates a non-positive page size or page bound.
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidStorageConfigs indicates an empty storage DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
