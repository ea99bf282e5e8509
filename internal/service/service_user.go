// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
)

type userService struct {
	tx     store.Transactor
	users  store.UserRepository
	groups store.GroupRepository

	codec    crypto.PasswordCodec
	settings SettingService
	captcha  CaptchaVerifier

	now    func() time.Time
	logger *logger.Logger
}

// NewUserService constructs a UserService.
func NewUserService(
	storages *store.Storages,
	codec crypto.PasswordCodec,
	settings SettingService,
	captcha CaptchaVerifier,
	logger *logger.Logger,
) UserService {
	return &userService{
		tx:       storages.Transactor,
		users:    storages.UserRepository,
		groups:   storages.GroupRepository,
		codec:    codec,
		settings: settings,
		captcha:  captcha,
		now:      time.Now,
		logger:   logger,
	}
}

// Create adds an account on behalf of an administrator. GroupID defaults to
// the registered member group.
func (s *userService) Create(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	if req.GroupID == 0 {
		req.GroupID = models.MemberGroupID
	}
	if !req.Status.IsValid() {
		return models.User{}, ErrInvalidDataProvided
	}

	return s.create(ctx, req.Email, req.Nick, req.Password, req.GroupID, req.Status)
}

// Register is the self-service sign-up. It honours register_enabled,
// reg_captcha, default_group and email_active.
func (s *userService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if !s.settings.Bool(ctx, SettingRegisterEnabled) {
		return models.User{}, ErrRegistrationDisabled
	}

	if err := checkCaptcha(ctx, s.settings, s.captcha, SettingRegCaptcha, req.Captcha); err != nil {
		return models.User{}, err
	}

	status := models.StatusActive
	if s.settings.Bool(ctx, SettingEmailActive) {
		status = models.StatusUnverified
	}

	return s.create(ctx, req.Email, req.Nick, req.Password, s.defaultGroup(ctx), status)
}

func (s *userService) defaultGroup(ctx context.Context) int64 {
	value, err := s.settings.Get(ctx, SettingDefaultGroup)
	if err != nil {
		return models.MemberGroupID
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		logger.FromContext(ctx).Warn().Str("value", value).Msg("invalid default group setting")
		return models.MemberGroupID
	}
	return id
}

func (s *userService) create(ctx context.Context, email, nick, password string, groupID int64, status models.UserStatus) (models.User, error) {
	log := logger.FromContext(ctx)

	email, err := normalizeEmail(email)
	if err != nil || password == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	if nick == "" {
		nick, _, _ = strings.Cut(email, "@")
	}

	hash, err := s.codec.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	var created models.User
	err = s.tx.WithinTx(ctx, func(q store.Querier) error {
		if _, err := s.groups.Get(ctx, q, groupID); err != nil {
			return err
		}

		user, err := s.users.Create(ctx, q, models.User{
			Email:    email,
			Nick:     nick,
			Password: hash,
			Status:   status,
			GroupID:  groupID,
		})
		created = user
		return err
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, err
	}

	log.Info().Int64("user_id", created.ID).Int64("group_id", groupID).Msg("user created")
	return created, nil
}

func (s *userService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.users.Get(ctx, s.tx.Conn(), id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return s.users.GetByEmail(ctx, s.tx.Conn(), strings.ToLower(strings.TrimSpace(email)))
}

func (s *userService) List(ctx context.Context, page models.Page) ([]models.User, int64, error) {
	return s.users.List(ctx, s.tx.Conn(), page)
}

// Update validates and applies a partial update. The previous-group fields
// are managed by UpgradeGroup and RevertExpiredGroups only; an explicit
// group assignment cancels any pending upgrade.
func (s *userService) Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	update.PreviousGroupID = nil
	update.GroupExpires = nil
	update.ClearPreviousGroup = update.GroupID != nil

	if update.Email != nil {
		email, err := normalizeEmail(*update.Email)
		if err != nil {
			return models.User{}, ErrInvalidDataProvided
		}
		update.Email = &email
	}
	if update.Status != nil && !update.Status.IsValid() {
		return models.User{}, ErrInvalidDataProvided
	}
	if update.Password != nil {
		if *update.Password == "" {
			return models.User{}, ErrInvalidDataProvided
		}
		hash, err := s.codec.Hash(*update.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("error hashing password: %w", err)
		}
		update.Password = &hash
	}

	var updated models.User
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		user, err := s.users.Update(ctx, q, id, update)
		updated = user
		return err
	})
	return updated, err
}

// Delete removes a user. The default administrator is refused with
// ErrProtectedUser whoever asks.
func (s *userService) Delete(ctx context.Context, id int64) error {
	if id == models.DefaultAdminUserID {
		return ErrProtectedUser
	}

	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		return s.users.Delete(ctx, q, id)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// UpgradeGroup moves the user into groupID until the given time. The group
// to return to is the one held before the first upgrade, so consecutive
// upgrades do not lose it.
func (s *userService) UpgradeGroup(ctx context.Context, id, groupID int64, until time.Time) (models.User, error) {
	if !until.After(s.now()) {
		return models.User{}, ErrInvalidDataProvided
	}

	var upgraded models.User
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		user, err := s.users.Get(ctx, q, id)
		if err != nil {
			return err
		}
		if _, err := s.groups.Get(ctx, q, groupID); err != nil {
			return err
		}

		previous := user.GroupID
		if user.PreviousGroupID != nil {
			previous = *user.PreviousGroupID
		}

		upgraded, err = s.users.Update(ctx, q, id, models.UserUpdate{
			GroupID:         &groupID,
			PreviousGroupID: &previous,
			GroupExpires:    &until,
		})
		return err
	})
	return upgraded, err
}

// RevertExpiredGroups restores the previous group of every user whose
// upgrade ended at or before now.
func (s *userService) RevertExpiredGroups(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	reverted := 0
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		reverted = 0

		users, err := s.users.ListExpiredUpgrades(ctx, q, now)
		if err != nil {
			return err
		}

		for _, user := range users {
			previous := *user.PreviousGroupID
			_, err := s.users.Update(ctx, q, user.ID, models.UserUpdate{
				GroupID:            &previous,
				ClearPreviousGroup: true,
			})
			if err != nil {
				return fmt.Errorf("user %d: %w", user.ID, err)
			}
			log.Info().Int64("user_id", user.ID).Int64("group_id", previous).Msg("group upgrade expired")
			reverted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return reverted, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", err
	}
	if addr.Address != email {
		return "", errors.New("email must be a bare address")
	}
	return strings.ToLower(email), nil
}
