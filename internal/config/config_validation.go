// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "slices"

// Supported values of the driver settings.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	MailLog  = "log"
	MailSMTP = "smtp"
	MailHTTP = "http"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 || cfg.App.VerifyTokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || !slices.Contains([]string{DriverPostgres, DriverSQLite}, cfg.Storage.DB.Driver) {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Cache.Driver {
	case CacheMemory:
	case CacheRedis:
		if cfg.Storage.Cache.RedisURL == "" {
			return ErrInvalidCacheConfigs
		}
	default:
		return ErrInvalidCacheConfigs
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return ErrInvalidServerConfigs
	}

	switch cfg.Mail.Driver {
	case MailLog:
	case MailSMTP:
		if cfg.Mail.SMTPAddress == "" || cfg.Mail.From == "" {
			return ErrInvalidMailConfigs
		}
	case MailHTTP:
		if cfg.Mail.RelayURL == "" {
			return ErrInvalidMailConfigs
		}
	default:
		return ErrInvalidMailConfigs
	}

	if cfg.Workers.RequestLogFlushInterval <= 0 || cfg.Workers.HealthCheckInterval <= 0 || cfg.Workers.MailQueueSize <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
