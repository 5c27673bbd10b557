// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/punch-sync/internal/logger"
)

type metadataRepository struct {
	*DB
	logger *logger.Logger
}

func NewMetadataRepository(db *DB, logger *logger.Logger) MetadataRepository {
	return &metadataRepository{
		DB:     db,
		logger: logger,
	}
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (m *metadataRepository) Get(ctx context.Context, key string) (string, bool, error) {
	return m.get(ctx, m.DB.DB, key)
}

func (m *metadataRepository) get(ctx context.Context, q queryRower, key string) (string, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := m.selectMetadata(key).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = q.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "metadataRepository.Get").
			Str("key", key).
			Msg("failed to read metadata")
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, m.classify(err))
	}

	return value, true, nil
}

// Set implements [MetadataRepository]. The value replaces any prior one in a
// single transaction.
func (m *metadataRepository) Set(ctx context.Context, key, value string) error {
	return m.inTx(ctx, "metadataRepository.Set", func(tx *sql.Tx) error {
		return m.set(ctx, tx, key, value)
	})
}

func (m *metadataRepository) set(ctx context.Context, tx *sql.Tx, key, value string) error {
	query, args, err := m.upsertMetadata(key, value).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, m.classify(err))
	}
	return nil
}

func (m *metadataRepository) GetWatermark(ctx context.Context) (*int64, error) {
	return m.getWatermark(ctx, m.DB.DB)
}

func (m *metadataRepository) getWatermark(ctx context.Context, q queryRower) (*int64, error) {
	value, ok, err := m.get(ctx, q, WatermarkKey)
	if err != nil || !ok {
		return nil, err
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWatermark, value)
	}
	return &ms, nil
}

// SetWatermark implements [MetadataRepository]. Reading the current value
// and writing the new one happen in the same transaction, so the stored
// watermark never decreases.
func (m *metadataRepository) SetWatermark(ctx context.Context, ms int64) (int64, error) {
	log := logger.FromContext(ctx)
	effective := ms

	err := m.inTx(ctx, "metadataRepository.SetWatermark", func(tx *sql.Tx) error {
		current, err := m.getWatermark(ctx, tx)
		if err != nil && !errors.Is(err, ErrInvalidWatermark) {
			return err
		}
		if current != nil && *current >= ms {
			effective = *current
			return nil
		}
		return m.set(ctx, tx, WatermarkKey, strconv.FormatInt(ms, 10))
	})
	if err != nil {
		return 0, err
	}

	if effective != ms {
		log.Warn().
			Str("func", "metadataRepository.SetWatermark").
			Int64("requested", ms).
			Int64("stored", effective).
			Msg("watermark not lowered")
	}

	return effective, nil
}

func (m *metadataRepository) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, m.classify(err))
	}
	defer tx.Rollback()

	if err = fn(tx); err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to write metadata")
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", funcName).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, m.classify(commitErr))
	}

	return nil
}
