// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidStorageConfigs indicates an empty DSN or an unsupported scheme.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates non-positive token lifetimes, an empty
	// version or a malformed administrator email.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing listen address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates an empty job schedule.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
