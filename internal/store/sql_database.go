// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/migrations"
	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
)

// Dialect names the SQL backend behind a [DB].
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
)

// DialectFromDSN selects PostgreSQL for postgres:// and postgresql:// DSNs and
// SQLite for everything else.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// ErrorClassification tells whether a failed store operation may succeed
// when the sync is run again.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is the single store handle shared by all repositories of a process.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations for the DB dialect.
func (db *DB) Migrate(ctx context.Context) error {
	gooseDialect := goose.DialectSQLite3
	if db.dialect == DialectPostgres {
		gooseDialect = goose.DialectPostgres
	}

	applied, err := migrations.Migrate(ctx, db.DB, gooseDialect)
	if err != nil {
		return err
	}
	if applied > 0 {
		db.logger.Info().Str("func", "DB.Migrate").Int("applied", applied).Msg("schema migrated")
	}
	return nil
}

// Dialect returns the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// builder returns a squirrel builder with the placeholder format of the
// dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// classify wraps err with [ErrRetryableStore] when the classifier marks it
// as transient.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrRetryableStore, err)
	}
	return err
}
