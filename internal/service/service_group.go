// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
)

type groupService struct {
	tx     store.Transactor
	groups store.GroupRepository
	users  store.UserRepository
	logger *logger.Logger
}

// NewGroupService constructs a GroupService.
func NewGroupService(storages *store.Storages, logger *logger.Logger) GroupService {
	return &groupService{
		tx:     storages.Transactor,
		groups: storages.GroupRepository,
		users:  storages.UserRepository,
		logger: logger,
	}
}

// Create inserts a group. The name is required and unique.
func (s *groupService) Create(ctx context.Context, group models.Group) (models.Group, error) {
	group.ID = 0
	group.Name = strings.TrimSpace(group.Name)
	if group.Name == "" || group.MaxStorage < 0 || group.SpeedLimit < 0 {
		return models.Group{}, ErrInvalidDataProvided
	}
	if group.Options.AvailableNodes == nil {
		group.Options.AvailableNodes = []int64{}
	}

	var created models.Group
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		g, err := s.groups.Create(ctx, q, group)
		created = g
		return err
	})
	if err != nil {
		return models.Group{}, err
	}

	logger.FromContext(ctx).Info().Int64("group_id", created.ID).Str("name", created.Name).Msg("group created")
	return created, nil
}

func (s *groupService) Get(ctx context.Context, id int64) (models.Group, error) {
	return s.groups.Get(ctx, s.tx.Conn(), id)
}

func (s *groupService) List(ctx context.Context) ([]models.Group, error) {
	return s.groups.List(ctx, s.tx.Conn())
}

// Update applies the non-nil fields of update.
func (s *groupService) Update(ctx context.Context, id int64, update models.GroupUpdate) (models.Group, error) {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return models.Group{}, ErrInvalidDataProvided
		}
		update.Name = &name
	}
	if (update.MaxStorage != nil && *update.MaxStorage < 0) || (update.SpeedLimit != nil && *update.SpeedLimit < 0) {
		return models.Group{}, ErrInvalidDataProvided
	}

	var updated models.Group
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		g, err := s.groups.Update(ctx, q, id, update)
		updated = g
		return err
	})
	return updated, err
}

// Delete removes a group without members. Built-in groups are refused with
// ErrProtectedGroup, groups still referenced by users with
// store.ErrGroupHasMembers.
func (s *groupService) Delete(ctx context.Context, id int64) error {
	if (models.Group{ID: id}).IsBuiltin() {
		return ErrProtectedGroup
	}

	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		if _, err := s.groups.Get(ctx, q, id); err != nil {
			return err
		}

		members, err := s.groups.CountMembers(ctx, q, id)
		if err != nil {
			return err
		}
		if members > 0 {
			return store.ErrGroupHasMembers
		}

		return s.groups.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("group_id", id).Msg("group deleted")
	return nil
}

// Members lists the users whose current group is id.
func (s *groupService) Members(ctx context.Context, id int64, page models.Page) ([]models.User, int64, error) {
	q := s.tx.Conn()
	if _, err := s.groups.Get(ctx, q, id); err != nil {
		return nil, 0, err
	}
	return s.users.ListByGroup(ctx, q, id, page)
}
