// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the on-disk JSON layout. Durations accept
// either Go duration strings ("3h") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		Debug           bool     `json:"debug"`
		Version         string   `json:"version"`
		AccessTokenTTL  Duration `json:"access_token_ttl"`
		RefreshTokenTTL Duration `json:"refresh_token_ttl"`
		AdminEmail      string   `json:"admin_email"`
	} `json:"app,omitempty"`
	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`
	Server struct {
		HTTPAddress     string   `json:"http_address"`
		GRPCAddress     string   `json:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`
	Workers struct {
		GroupExpirySchedule string `json:"group_expiry_schedule"`
	} `json:"workers,omitempty"`
	Cache struct {
		SettingsSize int      `json:"settings_size"`
		SettingsTTL  Duration `json:"settings_ttl"`
	} `json:"cache,omitempty"`
	Captcha struct {
		VerifyURL string   `json:"verify_url"`
		Timeout   Duration `json:"timeout"`
	} `json:"captcha,omitempty"`
}

// parseJSON reads the file at jsonFilePath into a StructuredConfig.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Debug:           jsonCfg.App.Debug,
			Version:         jsonCfg.App.Version,
			AccessTokenTTL:  time.Duration(jsonCfg.App.AccessTokenTTL),
			RefreshTokenTTL: time.Duration(jsonCfg.App.RefreshTokenTTL),
			AdminEmail:      jsonCfg.App.AdminEmail,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			GRPCAddress:     jsonCfg.Server.GRPCAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			GroupExpirySchedule: jsonCfg.Workers.GroupExpirySchedule,
		},
		Cache: Cache{
			SettingsSize: jsonCfg.Cache.SettingsSize,
			SettingsTTL:  time.Duration(jsonCfg.Cache.SettingsTTL),
		},
		Captcha: Captcha{
			VerifyURL: jsonCfg.Captcha.VerifyURL,
			Timeout:   time.Duration(jsonCfg.Captcha.Timeout),
		},
	}

	return cfg, nil
}

// Duration is a time.Duration that unmarshals from JSON strings or numbers.
type Duration time.Duration

// UnmarshalJSON accepts "1h30m" style strings and integer nanoseconds.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// MarshalJSON encodes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
