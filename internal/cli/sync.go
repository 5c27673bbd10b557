// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/spf13/cobra"
)

var errInvalidFilter = errors.New("filter must be in key=value form")

type syncOptions struct {
	full        bool
	extra       []string
	startDate   string
	endDate     string
	employeeID  string
	status      string
	onlyPending bool
}

func (c *cli) syncCommand() *cobra.Command {
	opts := &syncOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch punches from upstream and merge them into the store",
		Long: `Pages through the upstream endpoint and merges every record into the store.

Without --full only records changed since the last successful sync are
fetched; this requires a previous sync. With --full every record is fetched.
The sync watermark only moves forward after all records were stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request()
			if err != nil {
				return err
			}

			return c.withApp(cmd, client.UpstreamRequired, func(app client.Client) error {
				result, err := app.Services().SyncService.Sync(cmd.Context(), req)
				if result.Reason != "" {
					renderSyncResult(cmd.OutOrStdout(), result)
				}
				if err != nil {
					renderSyncFailure(cmd.ErrOrStderr(), err)
					return fmt.Errorf("sync failed: %w", err)
				}
				return nil
			})
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.full, "full", false, "Fetch every record instead of changes since the last sync")
	flags.StringArrayVar(&opts.extra, "filter", nil, "Extra upstream query parameter as key=value (repeatable)")
	flags.StringVar(&opts.startDate, "start-date", "", "Only punches on or after this date (YYYY-MM-DD)")
	flags.StringVar(&opts.endDate, "end-date", "", "Only punches on or before this date (YYYY-MM-DD)")
	flags.StringVar(&opts.employeeID, "employee-id", "", "Only punches of this employee")
	flags.StringVar(&opts.status, "status", "", "Only punches in this status (APPROVED, PENDING, REPROVED)")
	flags.BoolVar(&opts.onlyPending, "only-pending", false, "Only pending punches")

	return cmd
}

func (o *syncOptions) request() (models.SyncRequest, error) {
	extra, err := parseFilters(o.extra)
	if err != nil {
		return models.SyncRequest{}, err
	}

	mode := models.SyncModeIncremental
	if o.full {
		mode = models.SyncModeFull
	}

	return models.SyncRequest{
		Mode: mode,
		Filters: models.PunchFilters{
			StartDate:   o.startDate,
			EndDate:     o.endDate,
			EmployeeID:  o.employeeID,
			Status:      strings.ToUpper(o.status),
			OnlyPending: o.onlyPending,
			Extra:       extra,
		},
	}, nil
}

// parseFilters turns repeated key=value flags into a map. Later keys win.
func parseFilters(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errInvalidFilter, kv)
		}
		filters[key] = strings.TrimSpace(value)
	}
	return filters, nil
}
