// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/internal/utils"
	"github.com/MKhiriev/punch-sync/internal/validators"
	"github.com/MKhiriev/punch-sync/models"
)

type idGenerator interface {
	Generate() string
}

type syncService struct {
	fetcher   adapter.PageFetcher
	punches   store.PunchRepository
	metadata  store.MetadataRepository
	validator validators.Validator
	cfg       config.Sync

	ids idGenerator
	now func() time.Time

	mu      sync.Mutex
	running atomic.Bool

	logger *logger.Logger
}

func NewSyncService(
	fetcher adapter.PageFetcher,
	punches store.PunchRepository,
	metadata store.MetadataRepository,
	validator validators.Validator,
	cfg config.Sync,
	logger *logger.Logger,
) SyncService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = config.DefaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = config.DefaultMaxPages
	}

	return &syncService{
		fetcher:   fetcher,
		punches:   punches,
		metadata:  metadata,
		validator: validator,
		cfg:       cfg,
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
		logger:    logger,
	}
}

func (s *syncService) Running() bool {
	return s.running.Load()
}

func (s *syncService) Sync(ctx context.Context, req models.SyncRequest) (models.SyncResult, error) {
	if s.validator != nil {
		if err := s.validator.Validate(ctx, req); err != nil {
			return models.SyncResult{}, fmt.Errorf("%w: %w", ErrInvalidSyncRequest, err)
		}
	}

	if !s.mu.TryLock() {
		return models.SyncResult{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	s.running.Store(true)
	defer s.running.Store(false)

	runID := s.ids.Generate()
	runLogger := s.logger.With().
		Str("run_id", runID).
		Str("mode", string(req.Mode)).
		Logger()
	ctx = runLogger.WithContext(utils.WithRunID(ctx, runID))
	log := logger.FromContext(ctx)

	result := models.SyncResult{
		RunID:     runID,
		Mode:      req.Mode,
		StartedAt: s.now(),
	}

	previous, err := s.metadata.GetWatermark(ctx)
	if err != nil {
		log.Err(err).Str("func", "syncService.Sync").Msg("failed to read watermark")
		return s.finish(result), fmt.Errorf("read watermark: %w", err)
	}
	result.PreviousWatermark = previous

	var lowerBound int64
	switch req.Mode {
	case models.SyncModeIncremental:
		if previous == nil {
			log.Warn().Str("func", "syncService.Sync").Msg("incremental sync refused: no watermark stored")
			return s.finish(result), ErrPrecondition
		}
		lowerBound = *previous
	case models.SyncModeFull:
		lowerBound = 0
	default:
		return s.finish(result), fmt.Errorf("%w: unknown mode %q", ErrInvalidSyncRequest, req.Mode)
	}

	filters := req.Filters.Params()
	filters[models.ParamLastUpdate] = strconv.FormatInt(lowerBound, 10)

	pageSize, maxPages := s.bounds(req)
	log.Info().
		Str("func", "syncService.Sync").
		Int64("last_update", lowerBound).
		Int("page_size", pageSize).
		Int("max_pages", maxPages).
		Msg("sync started")

	records, fetchErr := s.fetchAll(ctx, &result, filters, pageSize, maxPages)
	result.Records = records
	result.RecordCount = len(records)

	if fetchErr != nil {
		log.Warn().
			Err(fetchErr).
			Str("func", "syncService.Sync").
			Str("reason", string(result.Reason)).
			Int("pages", result.Pages).
			Int("records", result.RecordCount).
			Msg("sync aborted, store and watermark left unchanged")
		return s.finish(result), fetchErr
	}

	if err = s.merge(ctx, &result); err != nil {
		return s.finish(result), err
	}

	// the watermark only moves once the records are durable
	effective, err := s.metadata.SetWatermark(ctx, s.now().UnixMilli())
	if err != nil {
		log.Err(err).Str("func", "syncService.Sync").Msg("failed to advance watermark")
		return s.finish(result), fmt.Errorf("advance watermark: %w", err)
	}
	result.Watermark = &effective

	log.Info().
		Str("func", "syncService.Sync").
		Str("reason", string(result.Reason)).
		Int("pages", result.Pages).
		Int("records", result.RecordCount).
		Int("merged", result.Merged).
		Int("skipped", result.Skipped).
		Int64("watermark", effective).
		Msg("sync finished")

	return s.finish(result), nil
}

func (s *syncService) finish(result models.SyncResult) models.SyncResult {
	result.FinishedAt = s.now()
	return result
}

func (s *syncService) bounds(req models.SyncRequest) (pageSize, maxPages int) {
	pageSize, maxPages = s.cfg.PageSize, s.cfg.MaxPages
	if req.PageSize > 0 {
		pageSize = req.PageSize
	}
	if req.MaxPages > 0 {
		maxPages = req.MaxPages
	}
	return pageSize, maxPages
}

// fetchAll pages until a termination rule fires. On abort it returns the
// records accumulated so far along with the fetch error.
func (s *syncService) fetchAll(
	ctx context.Context,
	result *models.SyncResult,
	filters map[string]string,
	pageSize, maxPages int,
) ([]json.RawMessage, error) {
	log := logger.FromContext(ctx)
	var records []json.RawMessage

	for index := 0; ; index++ {
		page, err := s.fetcher.FetchPage(ctx, models.PageRequest{
			Page:    index,
			Size:    pageSize,
			Filters: filters,
		})
		result.Pages++
		if err != nil {
			result.Reason, result.StatusCode = abortReason(err)
			return records, err
		}

		last := page
		last.Records = nil
		result.LastPage = &last

		records = append(records, page.Records...)

		log.Debug().
			Str("func", "syncService.fetchAll").
			Int("page", index).
			Int("page_records", len(page.Records)).
			Int("total_records", len(records)).
			Stringer("last", page.Last).
			Msg("page fetched")

		if reason, done := terminationReason(page, index, maxPages); done {
			result.Reason = reason
			return records, nil
		}
	}
}

// terminationReason applies the normal stop rules in priority order. The
// explicit last flag wins over totalPages when the two disagree.
func terminationReason(page models.Page, index, maxPages int) (models.TerminationReason, bool) {
	switch {
	case page.Last == models.LastPageTrue:
		return models.ReasonLastFlagTrue, true
	case len(page.Records) == 0:
		return models.ReasonEmptyPage, true
	case page.Last == models.LastPageUnknown && page.TotalPages != nil && index+1 >= *page.TotalPages:
		return models.ReasonPageCountReached, true
	case index+1 >= maxPages:
		return models.ReasonMaxPagesReached, true
	}
	return "", false
}

func abortReason(err error) (models.TerminationReason, int) {
	var httpErr *adapter.HTTPError
	if errors.As(err, &httpErr) {
		return models.ReasonHTTPError, httpErr.StatusCode
	}

	var parseErr *adapter.ParseError
	if errors.As(err, &parseErr) {
		return models.ReasonParseError, 0
	}

	return models.ReasonNetworkError, 0
}

// merge converts the accumulated records and upserts them in one batch.
// Records without a usable id cannot be keyed and are counted as skipped.
func (s *syncService) merge(ctx context.Context, result *models.SyncResult) error {
	log := logger.FromContext(ctx)

	punches := make([]models.Punch, 0, len(result.Records))
	for i, raw := range result.Records {
		p, err := models.NewPunch(raw)
		if err != nil {
			result.Skipped++
			log.Warn().
				Err(err).
				Str("func", "syncService.merge").
				Int("record_index", i).
				Msg("record skipped")
			continue
		}
		punches = append(punches, p)
	}

	if len(punches) == 0 {
		return nil
	}

	merged, err := s.punches.Upsert(ctx, punches...)
	if err != nil {
		log.Err(err).Str("func", "syncService.merge").Msg("failed to merge punches")
		return fmt.Errorf("merge punches: %w", err)
	}
	result.Merged = merged

	return nil
}
