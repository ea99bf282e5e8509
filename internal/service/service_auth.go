// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

// dummyPassword is hashed once and verified against when the login email is
// unknown, so that both failure paths cost one PBKDF2 derivation.
const dummyPassword = "go-disk-next-dummy-password"

// authService is the concrete implementation of AuthService.
// Tokens are HS256 JWTs whose subject is the user's email, signed with the
// process-held SigningKey.
type authService struct {
	tx    store.Transactor
	users store.UserRepository

	codec    crypto.PasswordCodec
	settings SettingService
	captcha  CaptchaVerifier

	signingKey *SigningKey

	accessTTL  time.Duration
	refreshTTL time.Duration

	dummyHash string
	now       func() time.Time

	logger *logger.Logger
}

// NewAuthService constructs an AuthService.
//
// The returned service is safe for concurrent use; all state except the
// signing key is read-only after construction. The dummy hash verified for
// unknown emails is computed here so that every such login costs the same.
func NewAuthService(
	storages *store.Storages,
	codec crypto.PasswordCodec,
	settings SettingService,
	captcha CaptchaVerifier,
	signingKey *SigningKey,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	dummyHash, err := codec.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing dummy password: %w", err)
	}

	return &authService{
		tx:         storages.Transactor,
		users:      storages.UserRepository,
		codec:      codec,
		settings:   settings,
		captcha:    captcha,
		signingKey: signingKey,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		dummyHash:  dummyHash,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// Login authenticates req and returns a token pair.
//
// Flow:
//  1. Captcha check when login/login_captcha is enabled.
//  2. Lookup by email. An unknown email still runs a verification against a
//     dummy hash before returning ErrInvalidCredentials.
//  3. Password verification, then the account status check: unverified and
//     banned accounts get distinct Forbidden errors.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Username))
	if email == "" || req.Password == "" {
		return models.TokenPair{}, ErrInvalidCredentials
	}

	if err := checkCaptcha(ctx, a.settings, a.captcha, SettingLoginCaptcha, req.Captcha); err != nil {
		return models.TokenPair{}, err
	}

	user, err := a.users.GetByEmail(ctx, a.tx.Conn(), email)
	if errors.Is(err, store.ErrUserNotFound) {
		a.codec.Verify(a.dummyHash, req.Password)
		log.Info().Str("email", email).Msg("login attempt for unknown email")
		return models.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.codec.Verify(user.Password, req.Password) {
		log.Info().Int64("user_id", user.ID).Msg("wrong password")
		return models.TokenPair{}, ErrInvalidCredentials
	}

	if err := checkStatus(user); err != nil {
		log.Info().Int64("user_id", user.ID).Stringer("status", user.Status).Msg("login refused")
		return models.TokenPair{}, err
	}

	return a.IssueTokens(ctx, user)
}

// Refresh validates a refresh token and issues a new pair for its subject.
// The subject must still exist and be active.
func (a *authService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	token, err := utils.ValidateAndParseJWTToken(refreshToken, a.signingKey.Bytes())
	if err != nil || !token.Claims.IsRefresh() {
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.resolveSubject(ctx, token.Claims.Subject)
	if err != nil {
		return models.TokenPair{}, err
	}

	if err := checkStatus(user); err != nil {
		return models.TokenPair{}, err
	}

	return a.IssueTokens(ctx, user)
}

// IssueTokens mints an access token (accessTTL) and a refresh token
// (refreshTTL) sharing the same issue time.
func (a *authService) IssueTokens(ctx context.Context, user models.User) (models.TokenPair, error) {
	now := a.now()
	key := a.signingKey.Bytes()

	access, err := utils.GenerateJWTToken(user.Email, "", now, a.accessTTL, key)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refresh, err := utils.GenerateJWTToken(user.Email, models.TokenTypeRefresh, now, a.refreshTTL, key)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{
		AccessToken:    access.String(),
		AccessExpires:  access.ExpiresAt(),
		RefreshToken:   refresh.String(),
		RefreshExpires: refresh.ExpiresAt(),
	}, nil
}

// Authenticate verifies signature and expiry of an access token and loads
// its user. Refresh tokens are rejected. Every failure is reported as
// ErrTokenIsExpiredOrInvalid except storage failures.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, a.signingKey.Bytes())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if token.Claims.IsRefresh() {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	return a.resolveSubject(ctx, token.Claims.Subject)
}

// RequireAdmin passes user through when its resolved group is an admin group.
func (a *authService) RequireAdmin(user models.User) (models.User, error) {
	if !user.IsAdmin() {
		return models.User{}, ErrAdminRequired
	}
	return user, nil
}

func (a *authService) resolveSubject(ctx context.Context, email string) (models.User, error) {
	user, err := a.users.GetByEmail(ctx, a.tx.Conn(), email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}
	return user, nil
}

// checkStatus maps a locked account to its Forbidden error.
func checkStatus(user models.User) error {
	switch user.Status {
	case models.StatusUnverified:
		return ErrUserNotActivated
	case models.StatusBanned:
		return ErrUserBanned
	}
	return nil
}
