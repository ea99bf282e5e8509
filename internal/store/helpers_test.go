// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// newMockDB returns a postgres-flavoured DB over sqlmock.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return newDB(conn, DialectPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

// newSQLiteDB opens a migrated private in-memory SQLite database.
func newSQLiteDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	db, err := NewConnect(ctx, config.DB{DSN: "file::memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func pgConstraintError(code, constraint string) error {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

var groupRowColumns = []string{
	"id", "name", "policies", "max_storage", "share_enabled", "web_dav_enabled",
	"admin", "speed_limit", "options", "created_at", "updated_at",
}

func groupRowValues(id int64, name string, admin bool) []driver.Value {
	return []driver.Value{id, name, "[1]", int64(1 << 30), true, false, admin, int64(0),
		`{"source_batch":10,"available_nodes":[]}`, fixedNow, fixedNow}
}

func userRowColumns() []string {
	cols := []string{
		"id", "email", "nick", "password", "status", "storage", "two_factor", "avatar",
		"options", "authn", "open_id", "phone", "score", "group_id", "previous_group_id",
		"group_expires", "created_at", "updated_at",
	}
	for _, c := range groupRowColumns {
		cols = append(cols, "g_"+c)
	}
	return cols
}

func userRowValues(id int64, email string, groupID int64, admin bool) []driver.Value {
	values := []driver.Value{id, email, "nick", "hash", int64(0), int64(0), "", "",
		"{}", "", nil, nil, int64(0), groupID, nil, nil, fixedNow, fixedNow}
	return append(values, groupRowValues(groupID, "Group", admin)...)
}
