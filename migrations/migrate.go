// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema of the record store and applies it
// with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate applies all pending migrations to db and returns how many ran.
// Running it on an up-to-date schema is a no-op.
func Migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) (int, error) {
	if db == nil {
		return 0, errors.New("migration error: db is nil")
	}

	provider, err := goose.NewProvider(dialect, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error creating provider for %q: %w", dialect, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}

	return len(results), nil
}
