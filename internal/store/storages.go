// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
)

// Storages groups the record store repositories. It is created once per
// process and handed to the services, which never open the database
// themselves.
type Storages struct {
	// PunchRepository holds the fetched punches keyed by id.
	PunchRepository PunchRepository
	// MetadataRepository holds the sync watermark.
	MetadataRepository MetadataRepository

	db *DB
}

// NewStorages initialises the storage layer:
//  1. Opens PostgreSQL for postgres:// DSNs and SQLite for anything else,
//     creating the SQLite file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the repositories to the shared handle.
func NewStorages(ctx context.Context, cfg config.DB, logger *logger.Logger) (*Storages, error) {
	logger.Debug().Str("func", "NewStorages").Msg("creating new storages...")

	var (
		db  *DB
		err error
	)
	switch DialectFromDSN(cfg.DSN) {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, cfg, logger)
	default:
		db, err = NewConnectSQLite(ctx, cfg, logger)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB wires repositories to an already opened and migrated DB.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		PunchRepository:    NewPunchRepository(db, logger),
		MetadataRepository: NewMetadataRepository(db, logger),
		db:                 db,
	}
}

// Close releases the database handle.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
