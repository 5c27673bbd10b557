// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the dashboard's JSON API.
//
// It exposes the stored sync state, triggers syncs, previews and exports
// stored punches and tails the upstream diagnostics log. Request tracing,
// access logging and panic recovery are handled by middleware before
// requests reach the service layer.
package http
