// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	punchesTable  = "punches"
	metadataTable = "metadata"

	// WatermarkKey is the metadata key holding the sync watermark in
	// milliseconds since epoch.
	WatermarkKey = "last_sync"
)

var punchColumns = []string{
	"id",
	"employee_id",
	"punch_date",
	"status",
	"last_modified_date",
	"raw_json",
	"saved_at",
}

// upsertPunchSuffix replaces every column of an existing row. Both SQLite
// and PostgreSQL expose the rejected row as "excluded".
const upsertPunchSuffix = `ON CONFLICT (id) DO UPDATE SET
	employee_id = excluded.employee_id,
	punch_date = excluded.punch_date,
	status = excluded.status,
	last_modified_date = excluded.last_modified_date,
	raw_json = excluded.raw_json,
	saved_at = excluded.saved_at`

const upsertMetadataSuffix = `ON CONFLICT (key) DO UPDATE SET value = excluded.value`

// upsertPunchQuery builds the single-row upsert used with a prepared statement.
func (db *DB) upsertPunchQuery() (string, error) {
	placeholders := make([]any, len(punchColumns))
	query, _, err := db.builder().
		Insert(punchesTable).
		Columns(punchColumns...).
		Values(placeholders...).
		Suffix(upsertPunchSuffix).
		ToSql()
	return query, err
}

func (db *DB) selectPunches() sq.SelectBuilder {
	return db.builder().
		Select(punchColumns...).
		From(punchesTable).
		OrderBy("saved_at DESC", "id ASC")
}

func (db *DB) selectPunchByID(id int64) sq.SelectBuilder {
	return db.builder().
		Select(punchColumns...).
		From(punchesTable).
		Where(sq.Eq{"id": id})
}

func (db *DB) countPunches() sq.SelectBuilder {
	return db.builder().Select("COUNT(*)").From(punchesTable)
}

func (db *DB) selectMetadata(key string) sq.SelectBuilder {
	return db.builder().
		Select("value").
		From(metadataTable).
		Where(sq.Eq{"key": key})
}

func (db *DB) upsertMetadata(key, value string) sq.InsertBuilder {
	return db.builder().
		Insert(metadataTable).
		Columns("key", "value").
		Values(key, value).
		Suffix(upsertMetadataSuffix)
}
