// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// no expectations: every goose statement fails
	_, err = Migrate(context.Background(), db, goose.DialectSQLite3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	_, err := Migrate(context.Background(), nil, goose.DialectSQLite3)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db is nil")
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = Migrate(context.Background(), db, goose.Dialect("oracle-of-delphi"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating provider")
}

func TestMigrate_SQLiteCreatesSchemaOnce(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "punches.db"))
	require.NoError(t, err)
	defer db.Close()

	applied, err := Migrate(context.Background(), db, goose.DialectSQLite3)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = Migrate(context.Background(), db, goose.DialectSQLite3)
	require.NoError(t, err)
	assert.Zero(t, applied)

	for _, table := range []string{"punches", "metadata"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}
