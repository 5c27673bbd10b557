// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the dashboard server.
type Server interface {
	// RunServer serves until ctx is cancelled or a stop signal arrives, then
	// shuts down gracefully. It returns early with an error when the listen
	// address cannot be bound.
	RunServer(ctx context.Context) error

	// Shutdown stops the server, waiting for in-flight requests up to the
	// grace period.
	Shutdown()
}
