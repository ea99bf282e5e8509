// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
)

// SigningKey owns the HMAC secret used to sign and verify tokens.
//
// The secret is read from the settings table once at startup. Changing the
// stored value has no effect on a running process; Rotate swaps the
// in-memory copy only.
type SigningKey struct {
	key atomic.Pointer[[]byte]
}

// NewSigningKey wraps key. An empty key is rejected.
func NewSigningKey(key []byte) (*SigningKey, error) {
	if len(key) == 0 {
		return nil, ErrSigningKeyIsEmpty
	}

	k := &SigningKey{}
	k.Rotate(key)
	return k, nil
}

// LoadSigningKey reads auth/secret_key through settings.
func LoadSigningKey(ctx context.Context, settings SettingService) (*SigningKey, error) {
	secret, err := settings.Get(ctx, SettingSecretKey)
	if err != nil {
		return nil, fmt.Errorf("error loading signing key: %w", err)
	}

	return NewSigningKey([]byte(secret))
}

// Bytes returns the current secret.
func (k *SigningKey) Bytes() []byte {
	return *k.key.Load()
}

// Rotate replaces the in-memory secret. Tokens signed with the old secret
// stop validating immediately.
func (k *SigningKey) Rotate(key []byte) {
	cp := make([]byte, len(key))
	copy(cp, key)
	k.key.Store(&cp)
}
