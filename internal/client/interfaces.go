// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/punch-sync/internal/service"
)

// Client is what the command-line surface needs from a wired application.
type Client interface {
	// Services returns the wired services. SyncService is nil when the app
	// was built without upstream access.
	Services() *service.Services

	// Serve runs the dashboard until ctx is cancelled or a stop signal
	// arrives.
	Serve(ctx context.Context) error

	// Close releases the store and the diagnostics log.
	Close() error
}
