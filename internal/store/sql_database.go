// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/migrations"
	sq "github.com/Masterminds/squirrel"
)

// Dialect names a supported SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

const (
	maxTxAttempts = 3
	txRetryDelay  = 50 * time.Millisecond
)

// DB wraps *sql.DB with the dialect-specific query builder and error
// classifier. It implements [Transactor].
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, classificator ErrorClassificator, log *logger.Logger) *DB {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &DB{
		DB:                 conn,
		dialect:            dialect,
		builder:            sq.StatementBuilder.PlaceholderFormat(placeholder),
		errorClassificator: classificator,
		logger:             log,
	}
}

// NewConnect opens the database named by cfg.DSN. postgres:// and
// postgresql:// URLs go to pgx, sqlite:// URLs and file: paths to SQLite.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch {
	case strings.HasPrefix(cfg.DSN, "postgres://"), strings.HasPrefix(cfg.DSN, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	case strings.HasPrefix(cfg.DSN, "sqlite://"), strings.HasPrefix(cfg.DSN, "file:"):
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, cfg.DSN)
	}
}

// Dialect reports the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema migrations of the dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, string(db.dialect))
}

// Conn implements [Transactor].
func (db *DB) Conn() Querier {
	return db.DB
}

// WithinTx implements [Transactor].
func (db *DB) WithinTx(ctx context.Context, fn func(q Querier) error) error {
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = db.runTx(ctx, fn)
		if err == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		log.Warn().Err(err).
			Str("func", "*DB.WithinTx").
			Int("attempt", attempt).
			Msg("retryable transaction failure")

		if attempt == maxTxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return errors.Join(err, ctx.Err())
		case <-time.After(time.Duration(attempt) * txRetryDelay):
		}
	}

	return err
}

func (db *DB) runTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// syncSequence moves the id sequence of table past its highest id after rows
// were inserted with explicit ids. SQLite AUTOINCREMENT tracks this itself.
func (db *DB) syncSequence(ctx context.Context, q Querier, table string) error {
	if db.dialect != DialectPostgres {
		return nil
	}

	query := fmt.Sprintf(syncSequenceTemplate, table, table)
	if _, err := q.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// dbTime normalizes a timestamp before it is bound as a query argument.
// SQLite compares timestamps as text, so every stored value shares the UTC
// offset and second precision.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
