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

// groupRepository is the SQL implementation of [GroupRepository] over the
// "groups" table.
type groupRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewGroupRepository constructs a [GroupRepository] for db.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create inserts group with a server-assigned id.
//
// Error handling:
//   - unique violation on name → [ErrGroupNameAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingQuery].
func (r *groupRepository) Create(ctx context.Context, q Querier, group models.Group) (models.Group, error) {
	return r.insert(ctx, q, group, false)
}

// CreateWithID inserts group keeping group.ID.
func (r *groupRepository) CreateWithID(ctx context.Context, q Querier, group models.Group) (models.Group, error) {
	created, err := r.insert(ctx, q, group, true)
	if err != nil {
		return models.Group{}, err
	}

	if err := r.db.syncSequence(ctx, q, tableGroups); err != nil {
		return models.Group{}, err
	}

	return created, nil
}

func (r *groupRepository) insert(ctx context.Context, q Querier, group models.Group, withID bool) (models.Group, error) {
	log := logger.FromContext(ctx)

	now := dbTime(r.now())
	group.CreatedAt, group.UpdatedAt = now, now
	if group.Policies == "" {
		group.Policies = "[]"
	}

	columns := []string{"name", "policies", "max_storage", "share_enabled", "web_dav_enabled",
		"admin", "speed_limit", "options", "created_at", "updated_at"}
	values := []any{group.Name, group.Policies, group.MaxStorage, group.ShareEnabled, group.WebDAVEnabled,
		group.Admin, group.SpeedLimit, group.Options, group.CreatedAt, group.UpdatedAt}
	if withID {
		columns = append([]string{"id"}, columns...)
		values = append([]any{group.ID}, values...)
	}

	query, args, err := r.db.builder.Insert(tableGroups).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := q.QueryRowContext(ctx, query, args...).Scan(&group.ID); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			log.Warn().Str("func", "*groupRepository.Create").Str("name", group.Name).Msg("group name already exists")
			return models.Group{}, ErrGroupNameAlreadyExists
		}
		log.Err(err).Str("func", "*groupRepository.Create").Msg("failed to insert group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return group, nil
}

// Get returns the group with id or [ErrGroupNotFound].
func (r *groupRepository) Get(ctx context.Context, q Querier, id int64) (models.Group, error) {
	query, args, err := r.db.selectGroups().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	group, err := scanGroup(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Group{}, ErrGroupNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*groupRepository.Get").Int64("group_id", id).Msg("failed to get group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return group, nil
}

// List returns all groups ordered by id.
func (r *groupRepository) List(ctx context.Context, q Querier) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.selectGroups().OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*groupRepository.List").Msg("failed to list groups")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0, 8)
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return groups, nil
}

// Update writes the non-nil fields of update and returns the stored group.
// An empty update only re-reads the group.
func (r *groupRepository) Update(ctx context.Context, q Querier, id int64, update models.GroupUpdate) (models.Group, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.Get(ctx, q, id)
	}

	query, args, err := r.db.builder.Update(tableGroups).
		SetMap(groupUpdateClauses(update)).
		Set("updated_at", dbTime(r.now())).
		Where(sq.Eq{"id": id}).
		Suffix(returning(groupColumns)).
		ToSql()
	if err != nil {
		return models.Group{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	group, err := scanGroup(q.QueryRowContext(ctx, query, args...))
	switch {
	case err == nil:
		return group, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.Group{}, ErrGroupNotFound
	case r.db.errorClassificator.IsUniqueViolation(err):
		return models.Group{}, ErrGroupNameAlreadyExists
	default:
		log.Err(err).Str("func", "*groupRepository.Update").Int64("group_id", id).Msg("failed to update group")
		return models.Group{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// Delete removes the group. A group still referenced by users yields
// [ErrGroupHasMembers].
func (r *groupRepository) Delete(ctx context.Context, q Querier, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.Delete(tableGroups).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.errorClassificator.IsForeignKeyViolation(err) {
			return ErrGroupHasMembers
		}
		log.Err(err).Str("func", "*groupRepository.Delete").Int64("group_id", id).Msg("failed to delete group")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// CountMembers returns the number of users that reference group id, either
// as their current group or as the group a timed upgrade reverts to.
func (r *groupRepository) CountMembers(ctx context.Context, q Querier, id int64) (int64, error) {
	query, args, err := r.db.builder.Select("COUNT(*)").From(tableUsers).Where(sq.Or{sq.Eq{"group_id": id}, sq.Eq{"previous_group_id": id}}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}
