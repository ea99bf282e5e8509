// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/store"
	"github.com/MKhiriev/go-disk-next/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settingsCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disk_settings_cache_hits_total",
		Help: "Settings reads served from the in-process cache.",
	})
	settingsCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "disk_settings_cache_misses_total",
		Help: "Settings reads that went to the database.",
	})
)

// settingService caches setting values by key. Writes through the service
// invalidate the affected keys; writes made elsewhere become visible after
// the cache TTL.
type settingService struct {
	tx       store.Transactor
	settings store.SettingRepository
	cache    *expirable.LRU[models.SettingKey, string]
	logger   *logger.Logger
}

// NewSettingService builds a SettingService over the settings repository.
func NewSettingService(storages *store.Storages, cfg config.Cache, logger *logger.Logger) SettingService {
	return &settingService{
		tx:       storages.Transactor,
		settings: storages.SettingRepository,
		cache:    expirable.NewLRU[models.SettingKey, string](cfg.SettingsSize, nil, cfg.SettingsTTL),
		logger:   logger,
	}
}

// Get returns the value stored under key or store.ErrSettingNotFound.
func (s *settingService) Get(ctx context.Context, key models.SettingKey) (string, error) {
	if value, ok := s.cache.Get(key); ok {
		settingsCacheHitsTotal.Inc()
		return value, nil
	}
	settingsCacheMissesTotal.Inc()

	setting, err := s.settings.Get(ctx, s.tx.Conn(), key)
	if err != nil {
		return "", err
	}

	s.cache.Add(key, setting.Value)
	return setting.Value, nil
}

func (s *settingService) Bool(ctx context.Context, key models.SettingKey) bool {
	value, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrSettingNotFound) {
			logger.FromContext(ctx).Err(err).Stringer("key", key).Msg("error reading flag setting")
		}
		return false
	}
	return value == "1"
}

func (s *settingService) ListByType(ctx context.Context, settingType string) ([]models.Setting, error) {
	settings, err := s.settings.ListByType(ctx, s.tx.Conn(), settingType)
	if err != nil {
		return nil, err
	}

	if settingType == SettingTypeAuth {
		for i := range settings {
			settings[i].Value = ""
		}
	}
	return settings, nil
}

func (s *settingService) Set(ctx context.Context, key models.SettingKey, value string) error {
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		return s.settings.Set(ctx, q, key, value)
	})
	s.cache.Remove(key)
	return err
}

func (s *settingService) SetMany(ctx context.Context, settings []models.Setting) error {
	if len(settings) == 0 {
		return ErrInvalidDataProvided
	}

	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		for _, setting := range settings {
			if err := s.settings.Set(ctx, q, setting.Key(), setting.Value); err != nil {
				return fmt.Errorf("%s: %w", setting.Key(), err)
			}
		}
		return nil
	})

	for _, setting := range settings {
		s.cache.Remove(setting.Key())
	}
	return err
}

func (s *settingService) Add(ctx context.Context, key models.SettingKey, value any) error {
	if key.Type == "" || key.Name == "" {
		return ErrInvalidDataProvided
	}

	encoded, err := encodeSettingValue(value)
	if err != nil {
		return err
	}

	return s.tx.WithinTx(ctx, func(q store.Querier) error {
		_, err := s.settings.Add(ctx, q, models.Setting{Type: key.Type, Name: key.Name, Value: encoded})
		return err
	})
}

func (s *settingService) Delete(ctx context.Context, key models.SettingKey) error {
	err := s.tx.WithinTx(ctx, func(q store.Querier) error {
		return s.settings.Delete(ctx, q, key)
	})
	s.cache.Remove(key)
	return err
}

// encodeSettingValue renders value as the text stored in settings.value.
// Scalars use their plain textual form, everything else is JSON.
func encodeSettingValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return string(b), nil
}
