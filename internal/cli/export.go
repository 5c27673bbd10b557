// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/spf13/cobra"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	exportBaseName = "tangerino_punches_full"
	stdoutPath     = "-"
)

var errUnknownFormat = errors.New("unknown export format, use csv or xlsx")

func (c *cli) exportCommand() *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every stored punch to a CSV or XLSX file",
		Long: `Writes the flat projection of every stored punch (id, employeeId, date,
status, lastModifiedDate), most recently merged first.

--out - writes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format = strings.ToLower(format)
			if format != formatCSV && format != formatXLSX {
				return fmt.Errorf("%w: %q", errUnknownFormat, format)
			}
			if out == "" {
				out = exportBaseName + "." + format
			}

			return c.withApp(cmd, client.UpstreamNone, func(app client.Client) error {
				export := app.Services().ExportService

				var buf bytes.Buffer
				var err error
				if format == formatXLSX {
					err = export.WriteXLSX(cmd.Context(), &buf)
				} else {
					err = export.WriteCSV(cmd.Context(), &buf)
				}
				if err != nil {
					return fmt.Errorf("export: %w", err)
				}

				if out == stdoutPath {
					_, err = buf.WriteTo(cmd.OutOrStdout())
					return err
				}
				if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", out, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "exported to %s\n", out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatCSV, "Export format: csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default "+exportBaseName+".<format>, - for stdout)")

	return cmd
}
