// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var siteName = models.SettingKey{Type: "basic", Name: "siteName"}

func newMockedSettingService(t *testing.T) (*mockStorages, SettingService) {
	ctrl := gomock.NewController(t)
	m, storages := newMockStorages(ctrl)
	return m, NewSettingService(storages, config.Cache{SettingsSize: 16}, logger.Nop())
}

// ---- cache ----

func TestSettingService_Get_IsCached(t *testing.T) {
	m, svc := newMockedSettingService(t)
	ctx := context.Background()

	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), siteName).
		Return(models.Setting{Type: "basic", Name: "siteName", Value: "DiskNext"}, nil).
		Times(1)

	for range 3 {
		value, err := svc.Get(ctx, siteName)
		require.NoError(t, err)
		assert.Equal(t, "DiskNext", value)
	}
}

func TestSettingService_Get_MissIsNotCached(t *testing.T) {
	m, svc := newMockedSettingService(t)
	ctx := context.Background()

	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), siteName).
		Return(models.Setting{}, store.ErrSettingNotFound).
		Times(2)

	for range 2 {
		_, err := svc.Get(ctx, siteName)
		assert.ErrorIs(t, err, store.ErrSettingNotFound)
	}
}

func TestSettingService_WritesInvalidateCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		write func(m *mockStorages, svc SettingService) error
	}{
		{
			name: "Set",
			write: func(m *mockStorages, svc SettingService) error {
				m.settings.EXPECT().Set(gomock.Any(), gomock.Any(), siteName, "Renamed").Return(nil)
				return svc.Set(ctx, siteName, "Renamed")
			},
		},
		{
			name: "SetMany",
			write: func(m *mockStorages, svc SettingService) error {
				m.settings.EXPECT().Set(gomock.Any(), gomock.Any(), siteName, "Renamed").Return(nil)
				return svc.SetMany(ctx, []models.Setting{{Type: "basic", Name: "siteName", Value: "Renamed"}})
			},
		},
		{
			name: "Delete",
			write: func(m *mockStorages, svc SettingService) error {
				m.settings.EXPECT().Delete(gomock.Any(), gomock.Any(), siteName).Return(nil)
				return svc.Delete(ctx, siteName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, svc := newMockedSettingService(t)

			gomock.InOrder(
				m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), siteName).
					Return(models.Setting{Value: "DiskNext"}, nil),
				m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), siteName).
					Return(models.Setting{Value: "Renamed"}, nil),
			)

			value, err := svc.Get(ctx, siteName)
			require.NoError(t, err)
			assert.Equal(t, "DiskNext", value)

			require.NoError(t, tt.write(m, svc))

			value, err = svc.Get(ctx, siteName)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", value)
		})
	}
}

// ---- reads ----

func TestSettingService_Bool(t *testing.T) {
	m, svc := newMockedSettingService(t)
	ctx := context.Background()

	on := models.SettingKey{Type: "login", Name: "on"}
	off := models.SettingKey{Type: "login", Name: "off"}
	missing := models.SettingKey{Type: "login", Name: "missing"}
	broken := models.SettingKey{Type: "login", Name: "broken"}

	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), on).Return(models.Setting{Value: "1"}, nil)
	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), off).Return(models.Setting{Value: "0"}, nil)
	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), missing).Return(models.Setting{}, store.ErrSettingNotFound)
	m.settings.EXPECT().Get(gomock.Any(), gomock.Any(), broken).Return(models.Setting{}, errors.New("io error"))

	assert.True(t, svc.Bool(ctx, on))
	assert.False(t, svc.Bool(ctx, off))
	assert.False(t, svc.Bool(ctx, missing))
	assert.False(t, svc.Bool(ctx, broken))
}

func TestSettingService_ListByType_HidesAuthValues(t *testing.T) {
	in := newInstallation(t)
	ctx := context.Background()

	auth, err := in.settings.ListByType(ctx, SettingTypeAuth)
	require.NoError(t, err)
	require.NotEmpty(t, auth)
	for _, s := range auth {
		assert.Empty(t, s.Value, s.Name)
	}

	basic, err := in.settings.ListByType(ctx, "basic")
	require.NoError(t, err)
	require.NotEmpty(t, basic)
	for _, s := range basic {
		if s.Name == "siteName" {
			assert.Equal(t, "DiskNext", s.Value)
		}
	}
}

// ---- writes ----

func TestSettingService_Add(t *testing.T) {
	in := newInstallation(t)
	ctx := context.Background()
	key := models.SettingKey{Type: "custom", Name: "limits"}

	require.NoError(t, in.settings.Add(ctx, key, map[string]int{"max": 3}))

	value, err := in.settings.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"max":3}`, value)

	err = in.settings.Add(ctx, key, "again")
	assert.ErrorIs(t, err, store.ErrSettingAlreadyExists)

	assert.ErrorIs(t, in.settings.Add(ctx, models.SettingKey{Name: "untyped"}, 1), ErrInvalidDataProvided)
}

func TestSettingService_SetMany(t *testing.T) {
	in := newInstallation(t)
	ctx := context.Background()

	assert.ErrorIs(t, in.settings.SetMany(ctx, nil), ErrInvalidDataProvided)

	err := in.settings.SetMany(ctx, []models.Setting{
		{Type: "basic", Name: "siteName", Value: "Renamed"},
		{Type: "basic", Name: "no_such_setting", Value: "x"},
	})
	require.ErrorIs(t, err, store.ErrSettingNotFound)

	value, err := in.settings.Get(ctx, siteName)
	require.NoError(t, err)
	assert.Equal(t, "DiskNext", value)

	require.NoError(t, in.settings.SetMany(ctx, []models.Setting{
		{Type: "basic", Name: "siteName", Value: "Renamed"},
		{Type: "register", Name: "register_enabled", Value: "0"},
	}))
	assert.False(t, in.settings.Bool(ctx, SettingRegisterEnabled))
}

func TestEncodeSettingValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "text", "text"},
		{"bytes", []byte("raw"), "raw"},
		{"true", true, "1"},
		{"false", false, "0"},
		{"int", 42, "42"},
		{"int64", int64(1 << 40), "1099511627776"},
		{"float", 1.5, "1.5"},
		{"slice", []int{1, 2}, "[1,2]"},
		{"struct", struct {
			A string `json:"a"`
		}{"x"}, `{"a":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeSettingValue(tt.value)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := encodeSettingValue(make(chan int))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
