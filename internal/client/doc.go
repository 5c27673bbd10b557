// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires punchsync together: configuration, the record store,
// the credential chain, the upstream page fetcher with its diagnostics log,
// the services and, for the dashboard, the HTTP handler and server.
package client
