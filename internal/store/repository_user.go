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

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/models"
	sq "github.com/Masterminds/squirrel"
)

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. Reads join "groups" so that User.Group is always resolved.
type userRepository struct {
	db     *DB
	logger *logger.Logger
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] for db.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Create persists a new user and returns it as stored, with its group.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - other unique violations (phone, open id) → [ErrUserAlreadyExists].
//   - foreign key violation on group_id → [ErrUnknownGroupReference].
func (r *userRepository) Create(ctx context.Context, q Querier, user models.User) (models.User, error) {
	return r.insert(ctx, q, user, false)
}

// CreateWithID persists user keeping user.ID.
func (r *userRepository) CreateWithID(ctx context.Context, q Querier, user models.User) (models.User, error) {
	created, err := r.insert(ctx, q, user, true)
	if err != nil {
		return models.User{}, err
	}

	if err := r.db.syncSequence(ctx, q, tableUsers); err != nil {
		return models.User{}, err
	}

	return created, nil
}

func (r *userRepository) insert(ctx context.Context, q Querier, user models.User, withID bool) (models.User, error) {
	log := logger.FromContext(ctx)

	now := dbTime(r.now())
	if user.Options == "" {
		user.Options = "{}"
	}

	var groupExpires any
	if user.GroupExpires != nil {
		groupExpires = dbTime(*user.GroupExpires)
	}

	columns := []string{"email", "nick", "password", "status", "storage", "two_factor", "avatar",
		"options", "authn", "open_id", "phone", "score", "group_id", "previous_group_id",
		"group_expires", "created_at", "updated_at"}
	values := []any{user.Email, user.Nick, user.Password, int(user.Status), user.Storage, user.TwoFactor, user.Avatar,
		user.Options, user.Authn, nullString(user.OpenID), nullString(user.Phone), user.Score, user.GroupID,
		nullInt64(user.PreviousGroupID), groupExpires, now, now}
	if withID {
		columns = append([]string{"id"}, columns...)
		values = append([]any{user.ID}, values...)
	}

	query, args, err := r.db.builder.Insert(tableUsers).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		mapped := r.mapWriteError(err)
		if errors.Is(mapped, ErrExecutingQuery) {
			log.Err(err).Str("func", "*userRepository.Create").Msg("failed to insert user")
		}
		return models.User{}, mapped
	}

	return r.Get(ctx, q, id)
}

// Get returns the user with id or [ErrUserNotFound].
func (r *userRepository) Get(ctx context.Context, q Querier, id int64) (models.User, error) {
	return r.getOne(ctx, q, sq.Eq{"u.id": id})
}

// GetByEmail returns the user with email or [ErrUserNotFound].
func (r *userRepository) GetByEmail(ctx context.Context, q Querier, email string) (models.User, error) {
	return r.getOne(ctx, q, sq.Eq{"u.email": email})
}

func (r *userRepository) getOne(ctx context.Context, q Querier, where sq.Eq) (models.User, error) {
	query, args, err := r.db.selectUsers().Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.getOne").Msg("failed to get user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// Update writes the non-nil fields of update and returns the stored user.
func (r *userRepository) Update(ctx context.Context, q Querier, id int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.Get(ctx, q, id)
	}

	query, args, err := r.db.builder.Update(tableUsers).
		SetMap(userUpdateClauses(update)).
		Set("updated_at", dbTime(r.now())).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		mapped := r.mapWriteError(err)
		if errors.Is(mapped, ErrExecutingQuery) {
			log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", id).Msg("failed to update user")
		}
		return models.User{}, mapped
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return models.User{}, ErrUserNotFound
	}

	return r.Get(ctx, q, id)
}

// Delete removes the user row.
func (r *userRepository) Delete(ctx context.Context, q Querier, id int64) error {
	query, args, err := r.db.builder.Delete(tableUsers).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.Delete").Int64("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// List returns one page of users ordered by id and the total count.
func (r *userRepository) List(ctx context.Context, q Querier, page models.Page) ([]models.User, int64, error) {
	return r.listWhere(ctx, q, nil, page)
}

// ListByGroup returns one page of the members of groupID and their count.
func (r *userRepository) ListByGroup(ctx context.Context, q Querier, groupID int64, page models.Page) ([]models.User, int64, error) {
	return r.listWhere(ctx, q, sq.Eq{"group_id": groupID}, page)
}

func (r *userRepository) listWhere(ctx context.Context, q Querier, where sq.Eq, page models.Page) ([]models.User, int64, error) {
	countQuery := r.db.builder.Select("COUNT(*)").From(tableUsers)
	selectQuery := r.db.selectUsers().OrderBy("u.id").Limit(page.Limit()).Offset(page.Offset())
	if where != nil {
		countQuery = countQuery.Where(where)
		selectQuery = selectQuery.Where(qualify("u", where))
	}

	query, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	users, err := r.queryUsers(ctx, q, selectQuery)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListExpiredUpgrades returns users whose temporary group ended at or before
// now and who still have a previous group.
func (r *userRepository) ListExpiredUpgrades(ctx context.Context, q Querier, now time.Time) ([]models.User, error) {
	return r.queryUsers(ctx, q, r.db.selectUsers().
		Where(sq.LtOrEq{"u.group_expires": dbTime(now)}).
		Where(sq.NotEq{"u.previous_group_id": nil}).
		OrderBy("u.id"))
}

func (r *userRepository) queryUsers(ctx context.Context, q Querier, builder sq.SelectBuilder) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.queryUsers").Msg("failed to query users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// mapWriteError turns constraint errors of a user write into sentinels.
func (r *userRepository) mapWriteError(err error) error {
	classificator := r.db.errorClassificator
	switch {
	case classificator.IsUniqueViolation(err):
		if strings.Contains(classificator.ViolatedConstraint(err), "email") {
			return ErrEmailAlreadyExists
		}
		return ErrUserAlreadyExists
	case classificator.IsForeignKeyViolation(err):
		return ErrUnknownGroupReference
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// qualify prefixes the column names of where with alias.
func qualify(alias string, where sq.Eq) sq.Eq {
	out := make(sq.Eq, len(where))
	for column, value := range where {
		out[alias+"."+column] = value
	}
	return out
}
