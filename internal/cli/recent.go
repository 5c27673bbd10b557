// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/MKhiriev/punch-sync/internal/service"
	"github.com/spf13/cobra"
)

func (c *cli) recentCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recently merged punches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, client.UpstreamNone, func(app client.Client) error {
				rows, err := app.Services().ExportService.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				renderRows(cmd.OutOrStdout(), rows)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultRecentLimit, "Number of punches to show")

	return cmd
}
