// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-disk-next server. It is populated by merging values from environment
// variables, command-line flags, an optional JSON file and finally the
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token lifetimes, the bootstrap administrator and the backend
	// version used by the settings sentinel.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP API and
	// the gRPC health endpoint.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds schedules of background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Cache holds the in-process settings cache parameters.
	Cache Cache `envPrefix:"CACHE_"`

	// Captcha holds the outbound captcha verification parameters.
	Captcha Captcha `envPrefix:"CAPTCHA_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Debug lowers the log level to debug.
	Debug bool `env:"DEBUG"`

	// Version is the backend version. It names the db_version_<version>
	// sentinel that gates re-seeding of default settings.
	Version string `env:"VERSION"`

	// AccessTokenTTL is the lifetime of access tokens.
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL"`

	// RefreshTokenTTL is the lifetime of refresh tokens.
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL"`

	// AdminEmail is the login of the administrator created at first boot.
	AdminEmail string `env:"ADMIN_EMAIL"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the database connection settings.
//
// DSN selects the driver: postgres:// and postgresql:// URLs use pgx,
// sqlite:// URLs and file: paths use SQLite.
type DB struct {
	DSN          string `env:"DATABASE_URI"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS"`
}

// Server holds the listening addresses.
type Server struct {
	// HTTPAddress is the host:port of the REST API.
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the host:port of the gRPC health service. Empty disables it.
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds the handling time of a single HTTP request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of all transports.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds background job schedules.
type Workers struct {
	// GroupExpirySchedule is a cron spec for reverting expired group upgrades.
	GroupExpirySchedule string `env:"GROUP_EXPIRY_SCHEDULE"`
}

// Cache configures the settings read cache.
type Cache struct {
	SettingsSize int           `env:"SETTINGS_SIZE"`
	SettingsTTL  time.Duration `env:"SETTINGS_TTL"`
}

// Captcha configures the reCAPTCHA verification call.
type Captcha struct {
	VerifyURL string        `env:"VERIFY_URL"`
	Timeout   time.Duration `env:"TIMEOUT"`
}

// GetStructuredConfig loads the configuration from the environment, the
// process flags and the optional JSON file, fills the remaining blanks with
// defaults and validates the result. Earlier sources take precedence.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(nil).
		withJSON().
		withDefaults().
		build()
}
