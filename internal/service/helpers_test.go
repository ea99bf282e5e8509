// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/mock"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testVersion = "4.0.0-test"

var testAppConfig = config.App{
	Version:         testVersion,
	AccessTokenTTL:  3 * time.Hour,
	RefreshTokenTTL: 30 * 24 * time.Hour,
	AdminEmail:      "Admin@Example.com",
}

// installation is a migrated and bootstrapped SQLite database together with
// the services built over it.
type installation struct {
	storages   *store.Storages
	codec      crypto.PasswordCodec
	settings   SettingService
	signingKey *SigningKey
	captcha    *mock.MockCaptchaVerifier

	auth   AuthService
	users  UserService
	groups GroupService
}

func newStorages(t *testing.T) *store.Storages {
	t.Helper()
	ctx := context.Background()

	db, err := store.NewConnect(ctx, config.DB{DSN: "file::memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	return store.NewStorages(db, logger.Nop())
}

// newInstallation bootstraps a fresh database. The captcha verifier is a
// gomock mock without expectations; tests that enable a captcha setting
// register their own.
func newInstallation(t *testing.T) *installation {
	t.Helper()
	ctx := context.Background()

	storages := newStorages(t)
	codec := crypto.NewPasswordCodecWithIterations(1)

	require.NoError(t, NewBootstrapper(storages, codec, testAppConfig, logger.Nop()).Run(ctx))

	settings := NewSettingService(storages, config.Cache{SettingsSize: 64}, logger.Nop())
	signingKey, err := LoadSigningKey(ctx, settings)
	require.NoError(t, err)

	captcha := mock.NewMockCaptchaVerifier(gomock.NewController(t))
	auth, err := NewAuthService(storages, codec, settings, captcha, signingKey, testAppConfig, logger.Nop())
	require.NoError(t, err)

	return &installation{
		storages:   storages,
		codec:      codec,
		settings:   settings,
		signingKey: signingKey,
		captcha:    captcha,
		auth:       auth,
		users:      NewUserService(storages, codec, settings, captcha, logger.Nop()),
		groups:     NewGroupService(storages, logger.Nop()),
	}
}

// createUser adds an active member with the given credentials.
func (in *installation) createUser(t *testing.T, email, password string, status models.UserStatus) models.User {
	t.Helper()
	user, err := in.users.Create(context.Background(), models.CreateUserRequest{
		Email:    email,
		Password: password,
		GroupID:  models.MemberGroupID,
		Status:   status,
	})
	require.NoError(t, err)
	return user
}

// mockStorages returns Storages backed by gomock mocks. The transactor runs
// every unit of work directly against a nil Querier.
type mockStorages struct {
	tx       *mock.MockTransactor
	groups   *mock.MockGroupRepository
	users    *mock.MockUserRepository
	settings *mock.MockSettingRepository
}

func newMockStorages(ctrl *gomock.Controller) (*mockStorages, *store.Storages) {
	m := &mockStorages{
		tx:       mock.NewMockTransactor(ctrl),
		groups:   mock.NewMockGroupRepository(ctrl),
		users:    mock.NewMockUserRepository(ctrl),
		settings: mock.NewMockSettingRepository(ctrl),
	}

	m.tx.EXPECT().Conn().Return(nil).AnyTimes()
	m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(store.Querier) error) error {
			return fn(nil)
		}).AnyTimes()

	return m, &store.Storages{
		Transactor:        m.tx,
		GroupRepository:   m.groups,
		UserRepository:    m.users,
		SettingRepository: m.settings,
	}
}

func ptr[T any](v T) *T {
	return &v
}
