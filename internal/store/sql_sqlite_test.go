// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGroups(t *testing.T, ctx context.Context, s *Storages) {
	t.Helper()
	for _, g := range []models.Group{
		{ID: models.AdminGroupID, Name: "Administrator", Admin: true, Options: models.DefaultGroupOptions()},
		{ID: models.MemberGroupID, Name: "Registered Member", Options: models.DefaultGroupOptions()},
		{ID: models.GuestGroupID, Name: "Guest", Options: models.DefaultGroupOptions()},
	} {
		_, err := s.GroupRepository.CreateWithID(ctx, s.Transactor.Conn(), g)
		require.NoError(t, err)
	}
}

func TestSQLite_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	seedGroups(t, ctx, s)

	admin, err := s.UserRepository.CreateWithID(ctx, db, models.User{
		ID: models.DefaultAdminUserID, Email: "admin@example.com", Nick: "admin", Password: "hash", GroupID: models.AdminGroupID,
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	member, err := s.UserRepository.Create(ctx, db, models.User{
		Email: "ann@example.com", Nick: "ann", Password: "hash", Status: models.StatusUnverified, GroupID: models.MemberGroupID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), member.ID)
	assert.Equal(t, "Registered Member", member.Group.Name)
	assert.Equal(t, models.StatusUnverified, member.Status)

	_, err = s.UserRepository.Create(ctx, db, models.User{Email: "ann@example.com", GroupID: models.MemberGroupID})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, err = s.UserRepository.Create(ctx, db, models.User{Email: "bob@example.com", GroupID: 404})
	assert.ErrorIs(t, err, ErrUnknownGroupReference)

	phone := "+100"
	_, err = s.UserRepository.Update(ctx, db, member.ID, models.UserUpdate{Phone: &phone})
	require.NoError(t, err)
	_, err = s.UserRepository.Create(ctx, db, models.User{Email: "bob@example.com", Phone: &phone, GroupID: models.MemberGroupID})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	byEmail, err := s.UserRepository.GetByEmail(ctx, db, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail.Phone)
	assert.Equal(t, phone, *byEmail.Phone)

	users, total, err := s.UserRepository.List(ctx, db, models.NewPage(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	require.NoError(t, s.UserRepository.Delete(ctx, db, member.ID))
	_, err = s.UserRepository.Get(ctx, db, member.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSQLite_GroupDeleteRestrictedByMembers(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	seedGroups(t, ctx, s)

	team, err := s.GroupRepository.Create(ctx, db, models.Group{Name: "Team", Options: models.DefaultGroupOptions()})
	require.NoError(t, err)
	assert.Equal(t, int64(4), team.ID)

	_, err = s.GroupRepository.Create(ctx, db, models.Group{Name: "Team"})
	assert.ErrorIs(t, err, ErrGroupNameAlreadyExists)

	_, err = s.UserRepository.Create(ctx, db, models.User{Email: "t@example.com", GroupID: team.ID})
	require.NoError(t, err)

	count, err := s.GroupRepository.CountMembers(ctx, db, team.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, s.GroupRepository.Delete(ctx, db, team.ID), ErrGroupHasMembers)
	assert.ErrorIs(t, s.GroupRepository.Delete(ctx, db, 999), ErrGroupNotFound)

	limit := int64(1024)
	updated, err := s.GroupRepository.Update(ctx, db, team.ID, models.GroupUpdate{SpeedLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, limit, updated.SpeedLimit)
	assert.Equal(t, 10, updated.Options.SourceBatch)
}

func TestSQLite_GroupDeleteRestrictedByUpgradeTarget(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	seedGroups(t, ctx, s)

	trial, err := s.GroupRepository.Create(ctx, db, models.Group{Name: "Trial", Options: models.DefaultGroupOptions()})
	require.NoError(t, err)

	expires := time.Now().UTC().Add(time.Hour)
	_, err = s.UserRepository.Create(ctx, db, models.User{
		Email: "trial@example.com", GroupID: models.AdminGroupID, PreviousGroupID: &trial.ID, GroupExpires: &expires,
	})
	require.NoError(t, err)

	count, err := s.GroupRepository.CountMembers(ctx, db, trial.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, s.GroupRepository.Delete(ctx, db, trial.ID), ErrGroupHasMembers)
}

func TestSQLite_ClearingPhoneStoresNull(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	seedGroups(t, ctx, s)

	empty := ""
	var ids []int64
	for i, email := range []string{"a@example.com", "b@example.com"} {
		phone := []string{"+1", "+2"}[i]
		u, err := s.UserRepository.Create(ctx, db, models.User{Email: email, Phone: &phone, GroupID: models.MemberGroupID})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	for _, id := range ids {
		u, err := s.UserRepository.Update(ctx, db, id, models.UserUpdate{Phone: &empty})
		require.NoError(t, err)
		assert.Nil(t, u.Phone)
	}

	_, err := s.UserRepository.Create(ctx, db, models.User{Email: "c@example.com", Phone: &empty, GroupID: models.MemberGroupID})
	require.NoError(t, err)
}

func TestSQLite_ListExpiredUpgrades(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	seedGroups(t, ctx, s)

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	previous := models.MemberGroupID

	expired, err := s.UserRepository.Create(ctx, db, models.User{
		Email: "expired@example.com", GroupID: models.AdminGroupID, PreviousGroupID: &previous, GroupExpires: &past,
	})
	require.NoError(t, err)
	_, err = s.UserRepository.Create(ctx, db, models.User{
		Email: "active@example.com", GroupID: models.AdminGroupID, PreviousGroupID: &previous, GroupExpires: &future,
	})
	require.NoError(t, err)
	_, err = s.UserRepository.Create(ctx, db, models.User{Email: "plain@example.com", GroupID: models.MemberGroupID})
	require.NoError(t, err)

	users, err := s.UserRepository.ListExpiredUpgrades(ctx, db, now)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, expired.ID, users[0].ID)

	reverted, err := s.UserRepository.Update(ctx, db, expired.ID, models.UserUpdate{GroupID: &previous, ClearPreviousGroup: true})
	require.NoError(t, err)
	assert.Equal(t, previous, reverted.GroupID)
	assert.Nil(t, reverted.PreviousGroupID)
	assert.Nil(t, reverted.GroupExpires)

	users, err = s.UserRepository.ListExpiredUpgrades(ctx, db, now)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSQLite_Settings(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	key := models.SettingKey{Type: "basic", Name: "siteName"}

	_, err := s.SettingRepository.Add(ctx, db, models.Setting{Type: key.Type, Name: key.Name, Value: "Disk"})
	require.NoError(t, err)

	_, err = s.SettingRepository.Add(ctx, db, models.Setting{Type: key.Type, Name: key.Name, Value: "Other"})
	assert.ErrorIs(t, err, ErrSettingAlreadyExists)

	got, err := s.SettingRepository.Get(ctx, db, key)
	require.NoError(t, err)
	assert.Equal(t, "Disk", got.Value)

	require.NoError(t, s.SettingRepository.Set(ctx, db, key, "Renamed"))
	got, err = s.SettingRepository.Get(ctx, db, key)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Value)

	require.NoError(t, s.SettingRepository.Delete(ctx, db, key))
	assert.ErrorIs(t, s.SettingRepository.Set(ctx, db, key, "x"), ErrSettingNotFound)
}

func TestSQLite_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	s := NewStorages(db, logger.Nop())
	rollback := errors.New("rollback")

	err := s.Transactor.WithinTx(ctx, func(q Querier) error {
		if _, err := s.GroupRepository.Create(ctx, q, models.Group{Name: "Ephemeral"}); err != nil {
			return err
		}
		return rollback
	})
	assert.ErrorIs(t, err, rollback)

	groups, err := s.GroupRepository.List(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
