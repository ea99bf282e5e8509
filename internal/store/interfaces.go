// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/go-disk-next/models"
)

// Querier is the subset of *sql.DB and *sql.Tx used by repositories.
// Every repository method receives one explicitly and never opens its own
// transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Transactor scopes units of work.
type Transactor interface {
	// WithinTx runs fn inside one transaction. The transaction is rolled back
	// when fn fails and retried when the failure is classified [Retryable].
	WithinTx(ctx context.Context, fn func(q Querier) error) error

	// Conn returns a non-transactional Querier for reads.
	Conn() Querier
}

// GroupRepository persists [models.Group].
type GroupRepository interface {
	Create(ctx context.Context, q Querier, group models.Group) (models.Group, error)
	// CreateWithID inserts a group under a caller-chosen id. Used by bootstrap.
	CreateWithID(ctx context.Context, q Querier, group models.Group) (models.Group, error)
	Get(ctx context.Context, q Querier, id int64) (models.Group, error)
	List(ctx context.Context, q Querier) ([]models.Group, error)
	Update(ctx context.Context, q Querier, id int64, update models.GroupUpdate) (models.Group, error)
	Delete(ctx context.Context, q Querier, id int64) error
	CountMembers(ctx context.Context, q Querier, id int64) (int64, error)
}

// UserRepository persists [models.User]. Lookups resolve the current group
// into User.Group.
type UserRepository interface {
	Create(ctx context.Context, q Querier, user models.User) (models.User, error)
	// CreateWithID inserts a user under a caller-chosen id. Used by bootstrap.
	CreateWithID(ctx context.Context, q Querier, user models.User) (models.User, error)
	Get(ctx context.Context, q Querier, id int64) (models.User, error)
	GetByEmail(ctx context.Context, q Querier, email string) (models.User, error)
	Update(ctx context.Context, q Querier, id int64, update models.UserUpdate) (models.User, error)
	Delete(ctx context.Context, q Querier, id int64) error
	List(ctx context.Context, q Querier, page models.Page) ([]models.User, int64, error)
	ListByGroup(ctx context.Context, q Querier, groupID int64, page models.Page) ([]models.User, int64, error)
	// ListExpiredUpgrades returns users whose group_expires is at or before now
	// and who have a previous group to return to.
	ListExpiredUpgrades(ctx context.Context, q Querier, now time.Time) ([]models.User, error)
}

// SettingRepository persists [models.Setting] rows keyed by (type, name).
type SettingRepository interface {
	Get(ctx context.Context, q Querier, key models.SettingKey) (models.Setting, error)
	ListByType(ctx context.Context, q Querier, settingType string) ([]models.Setting, error)
	Add(ctx context.Context, q Querier, setting models.Setting) (models.Setting, error)
	Set(ctx context.Context, q Querier, key models.SettingKey, value string) error
	Delete(ctx context.Context, q Querier, key models.SettingKey) error
}

// ErrorClassificator interprets driver errors of one database dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
	// ViolatedConstraint names the constraint or column behind a constraint
	// error, or returns "".
	ViolatedConstraint(err error) string
}
