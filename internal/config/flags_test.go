// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{"empty address", NetAddress{}, ""},
		{"localhost with port", NetAddress{Host: "localhost", Port: 8080}, "localhost:8080"},
		{"IP address with port", NetAddress{Host: "127.0.0.1", Port: 9090}, "127.0.0.1:9090"},
		{"only host no port", NetAddress{Host: "localhost"}, "localhost:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    NetAddress
		wantErr bool
	}{
		{"localhost", "localhost:5212", NetAddress{Host: "localhost", Port: 5212}, false},
		{"ipv4", "0.0.0.0:80", NetAddress{Host: "0.0.0.0", Port: 80}, false},
		{"missing port", "localhost", NetAddress{}, true},
		{"non-numeric port", "localhost:http", NetAddress{}, true},
		{"zero port", "localhost:0", NetAddress{}, true},
		{"hostname", "example.com:80", NetAddress{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:8080",
		"-grpc-address", "localhost:9090",
		"-d", "sqlite://test.db",
		"-c", "/etc/disk.json",
		"-admin-email", "boss@example.com",
		"-version", "1.2.3",
		"-group-expiry-schedule", "@daily",
		"-access-token-ttl", "2h",
		"-refresh-token-ttl", "24h",
		"-request-timeout", "10s",
		"-debug",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "localhost:9090", cfg.Server.GRPCAddress)
	assert.Equal(t, "sqlite://test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "/etc/disk.json", cfg.JSONFilePath)
	assert.Equal(t, "boss@example.com", cfg.App.AdminEmail)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "@daily", cfg.Workers.GroupExpirySchedule)
	assert.Equal(t, 2*time.Hour, cfg.App.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.App.RefreshTokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.App.Debug)
}

func TestParseFlags_NoneSetLeavesZeroValues(t *testing.T) {
	cfg, err := parseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_ConfigAlias(t *testing.T) {
	cfg, err := parseFlags([]string{"-config", "cfg.json"})
	require.NoError(t, err)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
}

func TestParseFlags_BadAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nope"})
	assert.Error(t, err)
}
