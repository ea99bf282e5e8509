// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides small helpers shared by handlers and services:
// typed context keys, JWT signing and parsing, JSON response writing, the
// outbound HTTP client and trace id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-disk-next/models"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey stores the authenticated *models.User of a request.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext returns the authenticated user stored by the auth
// middleware. ok is false when no user is present.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
