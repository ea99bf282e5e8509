// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrGroupNotFound is returned when no group has the requested id.
	ErrGroupNotFound = errors.New("group was not found")

	// ErrGroupNameAlreadyExists is returned when a group name is already taken.
	ErrGroupNameAlreadyExists = errors.New("group name already exists")

	// ErrGroupHasMembers is returned when deleting a group that users still
	// reference.
	ErrGroupHasMembers = errors.New("group still has members")

	// ErrUserNotFound is returned when no user matches the id or email.
	ErrUserNotFound = errors.New("user was not found")

	// ErrEmailAlreadyExists is returned when the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserAlreadyExists is returned for other unique collisions on users
	// (phone, open id, explicit id).
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUnknownGroupReference is returned when a user references a group id
	// that does not exist.
	ErrUnknownGroupReference = errors.New("referenced group does not exist")

	// ErrSettingNotFound is returned when no setting has the requested
	// (type, name) key.
	ErrSettingNotFound = errors.New("setting was not found")

	// ErrSettingAlreadyExists is returned when adding a (type, name) pair that
	// is already present.
	ErrSettingAlreadyExists = errors.New("setting already exists")
)

// Low-level database operation errors. Repository methods wrap the driver
// error with one of these.
var (
	// ErrBuildingSQLQuery is returned when squirrel fails to render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a statement fails at the driver.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when a transaction cannot start.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when a result row cannot be scanned.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when row iteration fails mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrUnsupportedDSN is returned when the DSN names no known driver.
	ErrUnsupportedDSN = errors.New("unsupported database DSN")
)
