// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/spf13/cobra"
)

const defaultLogLines = 200

func (c *cli) logsCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the upstream diagnostics log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			tail, err := logger.Tail(cfg.Logs.DiagnosticsPath, lines)
			if err != nil {
				return err
			}
			if len(tail) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s is empty or missing\n", cfg.Logs.DiagnosticsPath)
				return nil
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "Number of lines to show")

	return cmd
}
