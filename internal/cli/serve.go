// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/spf13/cobra"
)

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		Long: `Serves the dashboard API on --address until interrupted.

Sync endpoints need an upstream credential. When none resolves the dashboard
still starts and answers sync requests with 503.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, client.UpstreamOptional, func(app client.Client) error {
				return app.Serve(cmd.Context())
			})
		},
	}
}
