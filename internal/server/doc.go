// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the dashboard HTTP server.
//
// It owns the listener lifecycle: startup, signal handling (SIGINT, SIGTERM,
// SIGQUIT) and graceful shutdown bounded by a fixed grace period.
package server
