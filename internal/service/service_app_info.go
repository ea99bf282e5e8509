// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
)

type appInfoService struct {
	appVersion string
	settings   SettingService

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, settings SettingService, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		settings:   settings,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// SiteConfig assembles the public configuration from settings. Missing rows
// leave their fields empty.
func (s *appInfoService) SiteConfig(ctx context.Context) (models.SiteConfig, error) {
	var err error
	text := func(key models.SettingKey) string {
		value, getErr := s.settings.Get(ctx, key)
		if getErr != nil && !errors.Is(getErr, store.ErrSettingNotFound) {
			err = errors.Join(err, getErr)
		}
		return value
	}

	cfg := models.SiteConfig{
		Title:           text(SettingSiteName),
		LoginCaptcha:    text(SettingLoginCaptcha) == "1",
		RegCaptcha:      text(SettingRegCaptcha) == "1",
		ForgetCaptcha:   text(SettingForgetCaptcha) == "1",
		EmailActive:     text(SettingEmailActive) == "1",
		RegisterEnabled: text(SettingRegisterEnabled) == "1",
		Themes:          text(SettingThemes),
		DefaultTheme:    text(SettingDefaultTheme),
		HomeViewMethod:  text(SettingHomeViewMethod),
		ShareViewMethod: text(SettingShareViewMethod),
		Authn:           text(SettingAuthnEnabled) == "1",
		ReCaptchaKey:    text(SettingReCaptchaKey),
	}
	if err != nil {
		return models.SiteConfig{}, err
	}

	return cfg, nil
}
