// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-disk-next/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "user", UserCtxKey.String())
}

func TestGetUserFromContext(t *testing.T) {
	t.Run("stored user", func(t *testing.T) {
		u := &models.User{ID: 7, Email: "a@b.c"}
		ctx := WithUser(context.Background(), u)

		got, ok := GetUserFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, u, got)
	})

	t.Run("missing", func(t *testing.T) {
		got, ok := GetUserFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("nil user", func(t *testing.T) {
		ctx := WithUser(context.Background(), nil)
		_, ok := GetUserFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), UserCtxKey, models.User{ID: 1})
		_, ok := GetUserFromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("different key", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), contextKey("other"), &models.User{ID: 1})
		_, ok := GetUserFromContext(ctx)
		assert.False(t, ok)
	})
}
