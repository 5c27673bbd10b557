// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
)

const (
	postgresMaxOpenConns = 4
	postgresMaxIdleConns = 2
)

// NewConnectPostgres opens the record store on a PostgreSQL database through
// the pgx stdlib driver. It is selected for postgres:// and postgresql:// DSNs.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("cannot open postgres store")
		return nil, fmt.Errorf("error opening postgres store: %w", err)
	}
	conn.SetMaxOpenConns(postgresMaxOpenConns)
	conn.SetMaxIdleConns(postgresMaxIdleConns)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Msg("postgres store did not answer ping")
		return nil, fmt.Errorf("error pinging postgres store: %w", err)
	}
	log.Debug().Str("func", "NewConnectPostgres").Msg("postgres store connected")

	return &DB{
		DB:                 conn,
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             log,
	}, nil
}
