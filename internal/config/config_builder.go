// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// Built-in defaults applied after every explicit source.
const (
	DefaultVersion             = "0.0.1"
	DefaultAccessTokenTTL      = 3 * time.Hour
	DefaultRefreshTokenTTL     = 30 * 24 * time.Hour
	DefaultAdminEmail          = "admin@yxqi.cn"
	DefaultDSN                 = "sqlite://disk.db"
	DefaultMaxOpenConns        = 10
	DefaultHTTPAddress         = "localhost:5212"
	DefaultRequestTimeout      = 30 * time.Second
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultGroupExpirySchedule = "@hourly"
	DefaultSettingsCacheSize   = 256
	DefaultSettingsCacheTTL    = time.Minute
	DefaultCaptchaVerifyURL    = "https://www.google.com/recaptcha/api/siteverify"
	DefaultCaptchaTimeout      = 5 * time.Second
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

// build merges the collected layers. mergo keeps the first non-zero value,
// so layers added earlier win.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := parseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:         DefaultVersion,
			AccessTokenTTL:  DefaultAccessTokenTTL,
			RefreshTokenTTL: DefaultRefreshTokenTTL,
			AdminEmail:      DefaultAdminEmail,
		},
		Storage: Storage{
			DB: DB{
				DSN:          DefaultDSN,
				MaxOpenConns: DefaultMaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Workers: Workers{
			GroupExpirySchedule: DefaultGroupExpirySchedule,
		},
		Cache: Cache{
			SettingsSize: DefaultSettingsCacheSize,
			SettingsTTL:  DefaultSettingsCacheTTL,
		},
		Captcha: Captcha{
			VerifyURL: DefaultCaptchaVerifyURL,
			Timeout:   DefaultCaptchaTimeout,
		},
	}
}
