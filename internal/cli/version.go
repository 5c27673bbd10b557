// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "punchsync %s\n", orNA(c.buildInfo.BuildVersion()))
			fmt.Fprintf(out, "Build date: %s\n", orNA(c.buildInfo.BuildDate()))
			fmt.Fprintf(out, "Build commit: %s\n", orNA(c.buildInfo.BuildCommit()))
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
