// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// loadEnv decodes the server settings that are present in the environment.
// Groups are selected by the `envPrefix` tags (APP_, STORAGE_DB_, MAIL_, ...);
// unset variables stay zero so later layers can fill them.
func loadEnv() (*StructuredConfig, error) {
	cfg, err := env.ParseAs[StructuredConfig]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingEnv, err)
	}

	return &cfg, nil
}
