// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/mattn/go-sqlite3"
)

// NewConnectSQLite opens a SQLite database. The DSN is either
// "sqlite://<path>" or a "file:" URI. Foreign keys are always enforced and
// the pool is limited to a single connection.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// one writer at a time; also keeps :memory: databases on one connection
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, DialectSQLite, NewSQLiteErrorClassifier(), log), nil
}

// sqliteDSN converts a sqlite:// DSN into a go-sqlite3 file URI and turns on
// foreign key enforcement.
func sqliteDSN(dsn string) string {
	if path, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		dsn = "file:" + path
	}
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

// Classify implements [ErrorClassificator]. SQLITE_BUSY and SQLITE_LOCKED are
// retryable.
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return Retryable
		}
	}
	return NonRetryable
}

// IsUniqueViolation implements [ErrorClassificator].
func (c *SQLiteErrorClassifier) IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// IsForeignKeyViolation implements [ErrorClassificator]. ON DELETE RESTRICT
// actions run as internal triggers, so SQLite reports them as
// SQLITE_CONSTRAINT_TRIGGER rather than SQLITE_CONSTRAINT_FOREIGNKEY. The
// schema defines no triggers of its own.
func (c *SQLiteErrorClassifier) IsForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintTrigger
	}
	return false
}

// ViolatedConstraint implements [ErrorClassificator]. SQLite reports the
// offending columns in the message, e.g. "UNIQUE constraint failed:
// users.email"; the "table.column" part is returned.
func (c *SQLiteErrorClassifier) ViolatedConstraint(err error) string {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return ""
	}

	_, columns, ok := strings.Cut(sqliteErr.Error(), "constraint failed: ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(columns)
}
