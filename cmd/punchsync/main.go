// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/MKhiriev/punch-sync/internal/cli"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/models"
)

// Set via -ldflags "-X main.buildVersion=... -X main.buildDate=... -X main.buildCommit=...".
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	root := cli.NewRootCommand(buildInfo, logger.NewLogger("punchsync"))

	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
