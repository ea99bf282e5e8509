// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells the transaction helper whether a failed unit of
// work may be retried.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as serialization conflicts,
	// deadlocks, lost connections or a busy SQLite database.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] for pgx errors.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify implements [ErrorClassificator].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if code := postgresError(err); code != "" {
		return ClassifyPgCode(code)
	}
	return NonRetryable
}

// IsUniqueViolation implements [ErrorClassificator].
func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}

// IsForeignKeyViolation implements [ErrorClassificator].
func (c *PostgresErrorClassifier) IsForeignKeyViolation(err error) bool {
	switch postgresError(err) {
	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
		return true
	}
	return false
}

// ViolatedConstraint implements [ErrorClassificator]. It returns the
// constraint name reported by the server, e.g. "users_email_key".
func (c *PostgresErrorClassifier) ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// ClassifyPgCode maps a SQLSTATE code to an [ErrorClassification].
//
// Retryable classes: 08 (connection exceptions), 40 (transaction rollback,
// serialization failure, deadlock) and 57P03 (cannot connect now). Everything
// else, including class 23 integrity violations, is [NonRetryable].
func ClassifyPgCode(code string) ErrorClassification {
	switch code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}

// postgresError returns the SQLSTATE of err, or "" when err is not a
// PostgreSQL error.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
