// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// styles binds lipgloss styles to one output so that colour is only used
// when that output is a terminal.
type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	bad   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		label: r.NewStyle().Faint(true),
		bad:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

type field struct {
	label string
	value string
}

func (s styles) fields(w io.Writer, fields []field) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.label))
	}
	for _, f := range fields {
		fmt.Fprintf(w, "  %s %s\n", s.label.Render(f.label+":"+strings.Repeat(" ", width-len(f.label))), f.value)
	}
}

func renderSyncResult(w io.Writer, result models.SyncResult) {
	s := newStyles(w)

	title := s.title.Render("Sync finished")
	if result.Reason.Aborted() {
		title = s.bad.Render("Sync aborted")
	}
	fmt.Fprintln(w, title)

	fields := []field{
		{"mode", string(result.Mode)},
		{"run id", result.RunID},
		{"reason", string(result.Reason)},
		{"pages", fmt.Sprint(result.Pages)},
		{"records", fmt.Sprint(result.RecordCount)},
		{"merged", fmt.Sprint(result.Merged)},
	}
	if result.Skipped > 0 {
		fields = append(fields, field{"skipped", fmt.Sprint(result.Skipped)})
	}
	if result.StatusCode != 0 {
		fields = append(fields, field{"status code", fmt.Sprint(result.StatusCode)})
	}
	fields = append(fields,
		field{"watermark before", formatWatermark(result.PreviousWatermark)},
		field{"watermark after", formatWatermark(result.Watermark)},
	)
	if page := result.LastPage; page != nil {
		fields = append(fields, field{"last page", formatPage(*page)})
	}
	if !result.FinishedAt.IsZero() {
		fields = append(fields, field{"duration", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String()})
	}

	s.fields(w, fields)
}

// renderSyncFailure prints what upstream answered when a sync aborted.
func renderSyncFailure(w io.Writer, err error) {
	s := newStyles(w)

	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		fmt.Fprintln(w, s.bad.Render(fmt.Sprintf("Upstream answered HTTP %d", httpErr.StatusCode)))
		if httpErr.Body != "" {
			fmt.Fprintln(w, adapter.Truncate(httpErr.Body, 2000))
		}
		return
	}

	var parseErr *adapter.ParseError
	if errors.As(err, &parseErr) {
		fmt.Fprintln(w, s.bad.Render("Upstream response is not a page: "+parseErr.Detail))
		if parseErr.Body != "" {
			fmt.Fprintln(w, adapter.Truncate(parseErr.Body, 2000))
		}
	}
}

func renderStatus(w io.Writer, status models.SyncStatus) {
	s := newStyles(w)

	fmt.Fprintln(w, s.title.Render("Sync status"))
	fields := []field{
		{"watermark", formatWatermark(status.Watermark)},
		{"stored punches", fmt.Sprint(status.StoredPunches)},
	}
	if status.Watermark == nil {
		fields = append(fields, field{"hint", "no sync has completed yet, run `punchsync sync --full`"})
	}
	s.fields(w, fields)
}

func renderRows(w io.Writer, rows []models.ExportRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no punches stored")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(models.ExportHeader...)
	for _, row := range rows {
		t.Row(row.Strings()...)
	}
	fmt.Fprintln(w, t.String())
}

func formatWatermark(ms *int64) string {
	if ms == nil {
		return "none"
	}
	return fmt.Sprintf("%d (%s)", *ms, time.UnixMilli(*ms).UTC().Format(time.RFC3339))
}

func formatPage(p models.Page) string {
	var parts []string
	if p.Number != nil {
		parts = append(parts, fmt.Sprintf("number=%d", *p.Number))
	}
	if p.TotalPages != nil {
		parts = append(parts, fmt.Sprintf("totalPages=%d", *p.TotalPages))
	}
	if p.NumberOfElements != nil {
		parts = append(parts, fmt.Sprintf("elements=%d", *p.NumberOfElements))
	}
	parts = append(parts, "last="+p.Last.String())
	if p.Response.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status=%d", p.Response.StatusCode))
	}
	return strings.Join(parts, " ")
}
