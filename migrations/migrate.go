// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose schema migrations of every supported
// database and applies them at startup.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

// Dialect names accepted by Migrate.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var (
	ErrNilDB              = errors.New("migration error: db is nil")
	ErrUnsupportedDialect = errors.New("migration error: unsupported dialect")
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

// Migrate applies all pending migrations of dialect to db.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return ErrNilDB
	}

	gooseDialect, dir, err := resolve(dialect)
	if err != nil {
		return err
	}

	sub, err := fs.Sub(embedMigrations, dir)
	if err != nil {
		return fmt.Errorf("migration error opening %s migrations: %w", dir, err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func resolve(dialect string) (gooseDialect, dir string, err error) {
	switch dialect {
	case DialectPostgres:
		return "pgx", "postgres", nil
	case DialectSQLite:
		return "sqlite3", "sqlite", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
}
