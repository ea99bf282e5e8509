// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/models"
	sq "github.com/Masterminds/squirrel"
)

// settingRepository is the SQL implementation of [SettingRepository] over
// the "settings" table.
type settingRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSettingRepository constructs a [SettingRepository] for db.
func NewSettingRepository(db *DB, logger *logger.Logger) SettingRepository {
	logger.Debug().Msg("creating setting repository")
	return &settingRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func keyCondition(key models.SettingKey) sq.Eq {
	return sq.Eq{"type": key.Type, "name": key.Name}
}

// Get returns the setting stored under key or [ErrSettingNotFound].
func (r *settingRepository) Get(ctx context.Context, q Querier, key models.SettingKey) (models.Setting, error) {
	query, args, err := r.db.selectSettings().Where(keyCondition(key)).ToSql()
	if err != nil {
		return models.Setting{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	setting, err := scanSetting(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Setting{}, ErrSettingNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*settingRepository.Get").
			Stringer("key", key).
			Msg("failed to get setting")
		return models.Setting{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return setting, nil
}

// ListByType returns every setting of settingType ordered by name.
func (r *settingRepository) ListByType(ctx context.Context, q Querier, settingType string) ([]models.Setting, error) {
	query, args, err := r.db.selectSettings().Where(sq.Eq{"type": settingType}).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	settings := make([]models.Setting, 0, 16)
	for rows.Next() {
		setting, err := scanSetting(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return settings, nil
}

// Add inserts a new setting. An existing (type, name) pair yields
// [ErrSettingAlreadyExists]; the stored value is never overwritten.
func (r *settingRepository) Add(ctx context.Context, q Querier, setting models.Setting) (models.Setting, error) {
	now := dbTime(r.now())
	setting.CreatedAt, setting.UpdatedAt = now, now

	query, args, err := r.db.builder.Insert(tableSettings).
		Columns("type", "name", "value", "created_at", "updated_at").
		Values(setting.Type, setting.Name, setting.Value, setting.CreatedAt, setting.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Setting{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&setting.ID); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.Setting{}, ErrSettingAlreadyExists
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "*settingRepository.Add").
			Stringer("key", setting.Key()).
			Msg("failed to insert setting")
		return models.Setting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return setting, nil
}

// Set updates the value of an existing setting or returns
// [ErrSettingNotFound].
func (r *settingRepository) Set(ctx context.Context, q Querier, key models.SettingKey, value string) error {
	query, args, err := r.db.builder.Update(tableSettings).
		Set("value", value).
		Set("updated_at", dbTime(r.now())).
		Where(keyCondition(key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, q, query, args, "*settingRepository.Set")
}

// Delete removes the setting or returns [ErrSettingNotFound].
func (r *settingRepository) Delete(ctx context.Context, q Querier, key models.SettingKey) error {
	query, args, err := r.db.builder.Delete(tableSettings).Where(keyCondition(key)).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, q, query, args, "*settingRepository.Delete")
}

func (r *settingRepository) execAffectingOne(ctx context.Context, q Querier, query string, args []any, funcName string) error {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
