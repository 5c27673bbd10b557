// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/spf13/cobra"
)

func (c *cli) rawCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "raw <id>",
		Short: "Print the stored upstream record of one punch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("punch id must be an integer: %q", args[0])
			}

			return c.withApp(cmd, client.UpstreamNone, func(app client.Client) error {
				raw, err := app.Services().ExportService.Raw(cmd.Context(), id)
				if err != nil {
					return err
				}

				var pretty bytes.Buffer
				if err := json.Indent(&pretty, raw, "", "  "); err != nil {
					pretty.Reset()
					pretty.Write(raw)
				}
				pretty.WriteByte('\n')
				_, err = pretty.WriteTo(cmd.OutOrStdout())
				return err
			})
		},
	}
}
