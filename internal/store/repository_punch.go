// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/models"
)

type punchRepository struct {
	*DB
	logger *logger.Logger

	now func() time.Time
}

func NewPunchRepository(db *DB, logger *logger.Logger) PunchRepository {
	return &punchRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Upsert implements [PunchRepository]. All punches share one saved_at value,
// the batch time in milliseconds. A failure on any row rolls back the whole
// batch.
func (p *punchRepository) Upsert(ctx context.Context, punches ...models.Punch) (int, error) {
	log := logger.FromContext(ctx)

	if len(punches) == 0 {
		return 0, nil
	}

	query, err := p.upsertPunchQuery()
	if err != nil {
		log.Err(err).
			Str("func", "punchRepository.Upsert").
			Msg("failed to build upsert query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "punchRepository.Upsert").
			Int("count", len(punches)).
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, p.classify(err))
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", "punchRepository.Upsert").
			Int("count", len(punches)).
			Msg("failed to prepare statement")
		return 0, fmt.Errorf("%w: %w", ErrPreparingStatement, p.classify(err))
	}
	defer stmt.Close()

	savedAt := p.now().UnixMilli()
	for idx, punch := range punches {
		_, execErr := stmt.ExecContext(ctx,
			punch.ID,
			nullableInt64(punch.EmployeeID),
			punch.Date,
			punch.Status,
			punch.LastModifiedDate,
			string(punch.Raw),
			savedAt,
		)
		if execErr != nil {
			log.Err(execErr).
				Str("func", "punchRepository.Upsert").
				Int("iteration", idx+1).
				Int64("punch_id", punch.ID).
				Msg("failed to execute prepared statement")
			return 0, fmt.Errorf("%w (punch id=%d): %w", ErrExecutingStatement, punch.ID, p.classify(execErr))
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "punchRepository.Upsert").
			Int("count", len(punches)).
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, p.classify(commitErr))
	}

	log.Debug().
		Str("func", "punchRepository.Upsert").
		Int("count", len(punches)).
		Int64("saved_at", savedAt).
		Msg("punches merged")

	return len(punches), nil
}

func (p *punchRepository) QueryAll(ctx context.Context) ([]models.Punch, error) {
	return p.query(ctx, "punchRepository.QueryAll", p.selectPunches())
}

func (p *punchRepository) QueryRecent(ctx context.Context, limit int) ([]models.Punch, error) {
	if limit <= 0 {
		return []models.Punch{}, nil
	}
	return p.query(ctx, "punchRepository.QueryRecent", p.selectPunches().Limit(uint64(limit)))
}

func (p *punchRepository) Get(ctx context.Context, id int64) (models.Punch, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.selectPunchByID(id).ToSql()
	if err != nil {
		log.Err(err).Str("func", "punchRepository.Get").Msg("failed to build query")
		return models.Punch{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	punch, err := scanPunch(p.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Punch{}, ErrPunchNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "punchRepository.Get").
			Int64("punch_id", id).
			Msg("failed to scan punch row")
		return models.Punch{}, fmt.Errorf("%w: %w", ErrScanningRow, p.classify(err))
	}

	return punch, nil
}

func (p *punchRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := p.countPunches().ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = p.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "punchRepository.Count").Msg("failed to count punches")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, p.classify(err))
	}

	return count, nil
}

func (p *punchRepository) query(ctx context.Context, funcName string, builder sq.SelectBuilder) ([]models.Punch, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query for punches")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, p.classify(err))
	}
	defer rows.Close()

	punches := make([]models.Punch, 0)
	for rows.Next() {
		punch, scanErr := scanPunch(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan punch row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		punches = append(punches, punch)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error iterating punch rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, p.classify(rowsErr))
	}

	return punches, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPunch(row rowScanner) (models.Punch, error) {
	var (
		punch      models.Punch
		employeeID sql.NullInt64
		raw        string
	)

	err := row.Scan(
		&punch.ID,
		&employeeID,
		&punch.Date,
		&punch.Status,
		&punch.LastModifiedDate,
		&raw,
		&punch.SavedAt,
	)
	if err != nil {
		return models.Punch{}, err
	}

	if employeeID.Valid {
		id := employeeID.Int64
		punch.EmployeeID = &id
	}
	punch.Raw = json.RawMessage(raw)

	return punch, nil
}

func nullableInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
