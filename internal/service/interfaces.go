// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-disk-next/models"
)

// AuthService issues and validates session tokens.
type AuthService interface {
	// Login checks credentials and returns a fresh token pair.
	//
	// Errors: ErrInvalidCredentials (unknown email or wrong password),
	// ErrUserNotActivated / ErrUserBanned (valid credentials, account locked),
	// ErrCaptchaFailed when the login captcha is enabled and not solved.
	Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error)

	// Refresh exchanges a refresh token for a new pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// IssueTokens mints an access/refresh pair for user.
	IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error)

	// Authenticate resolves an access token to its user or returns
	// ErrTokenIsExpiredOrInvalid.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)

	// RequireAdmin passes user through when its group is an admin group.
	RequireAdmin(user models.User) (models.User, error)
}

// UserService manages user accounts.
type UserService interface {
	Create(ctx context.Context, req models.CreateUserRequest) (models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Get(ctx context.Context, id int64) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	// Update applies update; a non-nil Password is plaintext and gets hashed.
	Update(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	// Delete removes the user. The default administrator is never deleted.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, page models.Page) ([]models.User, int64, error)

	// UpgradeGroup moves the user into groupID until the given time.
	UpgradeGroup(ctx context.Context, id, groupID int64, until time.Time) (models.User, error)
	// RevertExpiredGroups returns expired upgrades to their previous group and
	// reports how many users were reverted.
	RevertExpiredGroups(ctx context.Context, now time.Time) (int, error)
}

// GroupService manages groups.
type GroupService interface {
	Create(ctx context.Context, group models.Group) (models.Group, error)
	Get(ctx context.Context, id int64) (models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	Update(ctx context.Context, id int64, update models.GroupUpdate) (models.Group, error)
	Delete(ctx context.Context, id int64) error
	Members(ctx context.Context, id int64, page models.Page) ([]models.User, int64, error)
}

// SettingService reads and writes settings through a process-local cache.
type SettingService interface {
	Get(ctx context.Context, key models.SettingKey) (string, error)
	// Bool reports whether the setting holds "1". Missing settings are false.
	Bool(ctx context.Context, key models.SettingKey) bool
	// ListByType lists a settings category. Values of the auth category are
	// blanked.
	ListByType(ctx context.Context, settingType string) ([]models.Setting, error)
	Set(ctx context.Context, key models.SettingKey, value string) error
	// SetMany updates several existing settings in one transaction.
	SetMany(ctx context.Context, settings []models.Setting) error
	// Add inserts a new setting. Maps, slices and structs are stored as JSON.
	Add(ctx context.Context, key models.SettingKey, value any) error
	Delete(ctx context.Context, key models.SettingKey) error
}

// CaptchaVerifier checks a captcha response with the provider.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, secret string) (bool, error)
}

// AppInfoService exposes build and public site information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	SiteConfig(ctx context.Context) (models.SiteConfig, error)
}
