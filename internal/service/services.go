// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/crypto"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
)

type Services struct {
	AppInfoService AppInfoService
	AuthService    AuthService
	UserService    UserService
	GroupService   GroupService
	SettingService SettingService
}

// NewServices wires the services. settings and signingKey are built before
// so that bootstrap and key loading happen first.
func NewServices(
	storages *store.Storages,
	settings SettingService,
	codec crypto.PasswordCodec,
	signingKey *SigningKey,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, settings, logger)
	if err != nil {
		return nil, err
	}

	captcha := NewCaptchaVerifier(cfg.Captcha, logger)

	auth, err := NewAuthService(storages, codec, settings, captcha, signingKey, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfo,
		AuthService:    auth,
		UserService:    NewUserService(storages, codec, settings, captcha, logger),
		GroupService:   NewGroupService(storages, logger),
		SettingService: settings,
	}, nil
}
