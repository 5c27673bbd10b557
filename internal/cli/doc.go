// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli is the punchsync command-line surface.
//
// Every command shares the persistent configuration flags registered by
// [config.RegisterFlags] and builds its application through
// [client.NewApp]. Human-readable output goes to stdout; logs and progress
// notes go to stderr.
package cli
