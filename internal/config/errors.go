// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates an empty DSN or an unknown DB driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidCacheConfigs indicates an unknown cache driver or a missing Redis URL.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates that neither HTTP nor gRPC address is set.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidMailConfigs indicates an unknown mail driver or missing driver settings.
	ErrInvalidMailConfigs = errors.New("invalid mail configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero flush interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

// ErrReadingEnv wraps failures to decode server settings from the
// process environment.
var ErrReadingEnv = errors.New("error reading environment configuration")
