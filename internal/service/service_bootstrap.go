// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
)

const (
	secretKeyLength     = 256
	adminPasswordLength = 8

	gigabyte = 1 << 30
)

// Bootstrapper seeds an empty database: the default settings catalog, the
// three built-in groups and the default administrator. Every step only
// creates what is missing, so running it on an installed database changes
// nothing.
type Bootstrapper struct {
	tx       store.Transactor
	groups   store.GroupRepository
	users    store.UserRepository
	settings store.SettingRepository
	codec    crypto.PasswordCodec

	version    string
	adminEmail string

	logger *logger.Logger
}

// NewBootstrapper constructs a Bootstrapper.
func NewBootstrapper(storages *store.Storages, codec crypto.PasswordCodec, cfg config.App, logger *logger.Logger) *Bootstrapper {
	return &Bootstrapper{
		tx:         storages.Transactor,
		groups:     storages.GroupRepository,
		users:      storages.UserRepository,
		settings:   storages.SettingRepository,
		codec:      codec,
		version:    cfg.Version,
		adminEmail: strings.ToLower(cfg.AdminEmail),
		logger:     logger,
	}
}

// Run performs all seeding steps in order.
func (b *Bootstrapper) Run(ctx context.Context) error {
	b.logger.Info().Msg("initializing database")

	if err := b.seedSettings(ctx); err != nil {
		return fmt.Errorf("error seeding settings: %w", err)
	}
	if err := b.seedGroups(ctx); err != nil {
		return fmt.Errorf("error seeding groups: %w", err)
	}
	if err := b.seedAdmin(ctx); err != nil {
		return fmt.Errorf("error seeding administrator: %w", err)
	}

	b.logger.Info().Msg("database initialized")
	return nil
}

// seedSettings installs the default catalog unless the version sentinel is
// present. Rows that already exist keep their values; the sentinel is
// written last in the same transaction.
func (b *Bootstrapper) seedSettings(ctx context.Context) error {
	if b.version == "" {
		return ErrVersionIsNotSpecified
	}
	sentinel := VersionSentinel(b.version)

	installed, err := b.settings.Get(ctx, b.tx.Conn(), sentinel)
	switch {
	case err == nil && installed.Value == installedMarker:
		b.logger.Debug().Str("version", b.version).Msg("settings already installed")
		return nil
	case err != nil && !errors.Is(err, store.ErrSettingNotFound):
		return err
	}

	secret, err := b.codec.Generate(secretKeyLength, false)
	if err != nil {
		return fmt.Errorf("error generating secret key: %w", err)
	}

	catalog := append(defaultSettings(), defaultSetting{key: SettingSecretKey, value: secret})

	return b.tx.WithinTx(ctx, func(q store.Querier) error {
		added := 0
		for _, def := range catalog {
			value, err := encodeSettingValue(def.value)
			if err != nil {
				return fmt.Errorf("%s: %w", def.key, err)
			}

			_, err = b.settings.Add(ctx, q, models.Setting{Type: def.key.Type, Name: def.key.Name, Value: value})
			switch {
			case err == nil:
				added++
			case errors.Is(err, store.ErrSettingAlreadyExists):
			default:
				return fmt.Errorf("%s: %w", def.key, err)
			}
		}

		if err := b.markInstalled(ctx, q, sentinel); err != nil {
			return err
		}

		b.logger.Info().Int("added", added).Str("version", b.version).Msg("default settings installed")
		return nil
	})
}

func (b *Bootstrapper) markInstalled(ctx context.Context, q store.Querier, sentinel models.SettingKey) error {
	_, err := b.settings.Add(ctx, q, models.Setting{Type: sentinel.Type, Name: sentinel.Name, Value: installedMarker})
	if errors.Is(err, store.ErrSettingAlreadyExists) {
		return b.settings.Set(ctx, q, sentinel, installedMarker)
	}
	return err
}

func builtinGroups() []models.Group {
	admin := models.DefaultGroupOptions()
	admin.ArchiveDownload = true
	admin.ArchiveTask = true
	admin.ShareDownload = true
	admin.Aria2 = true

	member := models.DefaultGroupOptions()
	member.ShareDownload = true

	guest := models.DefaultGroupOptions()
	guest.ShareDownload = true

	return []models.Group{
		{
			ID:            models.AdminGroupID,
			Name:          "Administrator",
			Policies:      "[1]",
			MaxStorage:    gigabyte,
			ShareEnabled:  true,
			WebDAVEnabled: true,
			Admin:         true,
			Options:       admin,
		},
		{
			ID:            models.MemberGroupID,
			Name:          "Registered Member",
			Policies:      "[1]",
			MaxStorage:    gigabyte,
			ShareEnabled:  true,
			WebDAVEnabled: true,
			Options:       member,
		},
		{
			ID:       models.GuestGroupID,
			Name:     "Guest",
			Policies: "[]",
			Options:  guest,
		},
	}
}

// seedGroups creates the built-in groups whose ids are absent.
func (b *Bootstrapper) seedGroups(ctx context.Context) error {
	return b.tx.WithinTx(ctx, func(q store.Querier) error {
		for _, group := range builtinGroups() {
			_, err := b.groups.Get(ctx, q, group.ID)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrGroupNotFound) {
				return err
			}

			if _, err := b.groups.CreateWithID(ctx, q, group); err != nil {
				return fmt.Errorf("group %q: %w", group.Name, err)
			}
			b.logger.Info().Int64("group_id", group.ID).Str("name", group.Name).Msg("created built-in group")
		}
		return nil
	})
}

// seedAdmin creates user 1 in the administrator group when it is absent and
// logs its generated password. The plaintext is not kept anywhere else.
func (b *Bootstrapper) seedAdmin(ctx context.Context) error {
	_, err := b.users.Get(ctx, b.tx.Conn(), models.DefaultAdminUserID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return err
	}

	password, err := b.codec.Generate(adminPasswordLength, false)
	if err != nil {
		return fmt.Errorf("error generating admin password: %w", err)
	}
	hash, err := b.codec.Hash(password)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	var admin models.User
	err = b.tx.WithinTx(ctx, func(q store.Querier) error {
		if _, err := b.groups.Get(ctx, q, models.AdminGroupID); err != nil {
			return fmt.Errorf("administrator group is missing: %w", err)
		}

		created, err := b.users.CreateWithID(ctx, q, models.User{
			ID:       models.DefaultAdminUserID,
			Email:    b.adminEmail,
			Nick:     "admin",
			Password: hash,
			Status:   models.StatusActive,
			GroupID:  models.AdminGroupID,
		})
		admin = created
		return err
	})
	if err != nil {
		return err
	}

	b.logger.Info().
		Str("email", admin.Email).
		Str("password", password).
		Msg("default administrator created, store this password now; it will not be shown again")
	return nil
}
