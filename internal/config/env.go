// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment. Section prefixes come
// from the envPrefix tags, so the request timeout is SERVER_REQUEST_TIMEOUT
// and the cron spec is WORKERS_GROUP_EXPIRY_SCHEDULE.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}
	return nil
}
