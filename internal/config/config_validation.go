// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/mail"
	"strings"
)

// validate checks the merged configuration before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if !strings.HasPrefix(cfg.Storage.DB.DSN, "postgres://") &&
		!strings.HasPrefix(cfg.Storage.DB.DSN, "postgresql://") &&
		!strings.HasPrefix(cfg.Storage.DB.DSN, "sqlite://") &&
		!strings.HasPrefix(cfg.Storage.DB.DSN, "file:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.AccessTokenTTL <= 0 || cfg.App.RefreshTokenTTL <= 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.App.Version == "" {
		return ErrInvalidAppConfigs
	}
	if _, err := mail.ParseAddress(cfg.App.AdminEmail); err != nil {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.GroupExpirySchedule == "" {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
