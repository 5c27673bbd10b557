// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB (sqlmock) as a SQLite-dialect DB.
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		dialect:            DialectSQLite,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             logger.Nop(),
	}
}

// newSQLiteStorages opens a migrated SQLite database in a temp directory.
func newSQLiteStorages(t *testing.T) *Storages {
	t.Helper()
	cfg := config.DB{DSN: filepath.Join(t.TempDir(), "data", "punches.db")}

	s, err := NewStorages(testContext(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func int64Ptr(v int64) *int64 { return &v }

func testPunch(t *testing.T, raw string) models.Punch {
	t.Helper()
	p, err := models.NewPunch(json.RawMessage(raw))
	require.NoError(t, err)
	return p
}

var punchRowColumns = []string{"id", "employee_id", "punch_date", "status", "last_modified_date", "raw_json", "saved_at"}

// ── Upsert (sqlmock) ──────────────────────────────────────────────────────────

func TestPunchRepository_Upsert_CommitsOnce(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop()).(*punchRepository)
	repo.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	punches := []models.Punch{
		{ID: 1, EmployeeID: int64Ptr(7), Date: "2024-01-01", Status: "APPROVED", LastModifiedDate: "x", Raw: json.RawMessage(`{"id":1}`)},
		{ID: 2, Raw: json.RawMessage(`{"id":2}`)},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO punches")
	prep.ExpectExec().
		WithArgs(int64(1), int64(7), "2024-01-01", "APPROVED", "x", `{"id":1}`, int64(1_700_000_000_000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(int64(2), nil, "", "", "", `{"id":2}`, int64(1_700_000_000_000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.Upsert(testContext(), punches...)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPunchRepository_Upsert_RollsBackOnFailure(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO punches")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	n, err := repo.Upsert(testContext(),
		models.Punch{ID: 1, Raw: json.RawMessage(`{"id":1}`)},
		models.Punch{ID: 2, Raw: json.RawMessage(`{"id":2}`)},
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPunchRepository_Upsert_BeginError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin().WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})

	_, err := repo.Upsert(testContext(), models.Punch{ID: 1, Raw: json.RawMessage(`{}`)})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
	assert.ErrorIs(t, err, ErrRetryableStore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPunchRepository_Upsert_CommitError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO punches").ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	_, err := repo.Upsert(testContext(), models.Punch{ID: 1, Raw: json.RawMessage(`{}`)})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.NotErrorIs(t, err, ErrRetryableStore)
}

func TestPunchRepository_Upsert_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	n, err := repo.Upsert(testContext())

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── reads (sqlmock) ───────────────────────────────────────────────────────────

func TestPunchRepository_Get_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("SELECT .* FROM punches WHERE id = \\?").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(punchRowColumns))

	_, err := repo.Get(testContext(), 99)

	assert.ErrorIs(t, err, ErrPunchNotFound)
}

func TestPunchRepository_QueryRecent_UsesLimit(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("SELECT .* FROM punches ORDER BY saved_at DESC, id ASC LIMIT 2").
		WillReturnRows(sqlmock.NewRows(punchRowColumns).
			AddRow(int64(5), int64(3), "d", "APPROVED", "m", `{"id":5}`, int64(10)).
			AddRow(int64(6), nil, "d", "PENDING", "m", `{"id":6}`, int64(10)))

	punches, err := repo.QueryRecent(testContext(), 2)

	require.NoError(t, err)
	require.Len(t, punches, 2)
	require.NotNil(t, punches[0].EmployeeID)
	assert.Equal(t, int64(3), *punches[0].EmployeeID)
	assert.Nil(t, punches[1].EmployeeID)
	assert.JSONEq(t, `{"id":6}`, string(punches[1].Raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPunchRepository_QueryAll_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewPunchRepository(newDBFromSQL(db), logger.Nop())

	mock.ExpectQuery("SELECT .* FROM punches").WillReturnError(sqlite3.Error{Code: sqlite3.ErrLocked})

	_, err := repo.QueryAll(testContext())

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrRetryableStore)
}

// ── SQLite behaviour ──────────────────────────────────────────────────────────

// TestPunchRepository_Upsert_Idempotent merges the same set twice and expects
// the same final state as a single merge.
func TestPunchRepository_Upsert_Idempotent(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	punches := []models.Punch{
		testPunch(t, `{"id":1,"employeeId":10,"date":"2024-01-01","status":"APPROVED"}`),
		testPunch(t, `{"id":2,"employee":{"id":20},"date":"2024-01-02","status":"PENDING"}`),
		testPunch(t, `{"id":3,"date":"2024-01-03"}`),
	}

	_, err := s.PunchRepository.Upsert(ctx, punches...)
	require.NoError(t, err)
	once, err := s.PunchRepository.QueryAll(ctx)
	require.NoError(t, err)

	_, err = s.PunchRepository.Upsert(ctx, punches...)
	require.NoError(t, err)
	twice, err := s.PunchRepository.QueryAll(ctx)
	require.NoError(t, err)

	require.Len(t, twice, 3)
	stripSavedAt := func(ps []models.Punch) []models.Punch {
		out := make([]models.Punch, len(ps))
		for i, p := range ps {
			p.SavedAt = 0
			out[i] = p
		}
		return out
	}
	assert.ElementsMatch(t, stripSavedAt(once), stripSavedAt(twice))

	count, err := s.PunchRepository.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// TestPunchRepository_Upsert_LastWriteWins verifies a later fetch of the same
// id fully replaces the stored row.
func TestPunchRepository_Upsert_LastWriteWins(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	_, err := s.PunchRepository.Upsert(ctx, testPunch(t, `{"id":1,"employeeId":10,"status":"PENDING","note":"old"}`))
	require.NoError(t, err)
	_, err = s.PunchRepository.Upsert(ctx, testPunch(t, `{"id":1,"status":"APPROVED"}`))
	require.NoError(t, err)

	got, err := s.PunchRepository.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)
	assert.Nil(t, got.EmployeeID)
	assert.JSONEq(t, `{"id":1,"status":"APPROVED"}`, string(got.Raw))
}

func TestPunchRepository_Upsert_DuplicateIDsInBatch(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	_, err := s.PunchRepository.Upsert(ctx,
		testPunch(t, `{"id":1,"status":"PENDING"}`),
		testPunch(t, `{"id":1,"status":"APPROVED"}`),
	)
	require.NoError(t, err)

	got, err := s.PunchRepository.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", got.Status)

	count, err := s.PunchRepository.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPunchRepository_QueryRecent_InsertionRecency(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()
	repo := s.PunchRepository.(*punchRepository)

	clock := int64(1_000)
	repo.now = func() time.Time { clock += 1_000; return time.UnixMilli(clock) }

	_, err := repo.Upsert(ctx, testPunch(t, `{"id":1}`), testPunch(t, `{"id":2}`))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, testPunch(t, `{"id":3}`))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, testPunch(t, `{"id":1}`))
	require.NoError(t, err)

	all, err := repo.QueryAll(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(all))
	for _, p := range all {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3, 2}, ids)

	recent, err := repo.QueryRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(1), recent[0].ID)
	assert.Equal(t, int64(3), recent[1].ID)

	none, err := repo.QueryRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPunchRepository_Get_SQLite(t *testing.T) {
	s := newSQLiteStorages(t)
	ctx := testContext()

	_, err := s.PunchRepository.Upsert(ctx, testPunch(t, `{"id":42,"employee":{"id":"7"},"lastModifiedDate":"2024-02-02T10:00:00"}`))
	require.NoError(t, err)

	got, err := s.PunchRepository.Get(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, got.EmployeeID)
	assert.Equal(t, int64(7), *got.EmployeeID)
	assert.Equal(t, "2024-02-02T10:00:00", got.LastModifiedDate)
	assert.NotZero(t, got.SavedAt)

	_, err = s.PunchRepository.Get(ctx, 43)
	assert.ErrorIs(t, err, ErrPunchNotFound)
}
