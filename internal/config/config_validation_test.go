// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "no sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "no dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown db driver", mutate: func(c *StructuredConfig) { c.Storage.DB.Driver = "mysql" }, wantErr: ErrInvalidStorageConfigs},
		{name: "redis without url", mutate: func(c *StructuredConfig) { c.Storage.Cache.Driver = CacheRedis }, wantErr: ErrInvalidCacheConfigs},
		{name: "redis with url", mutate: func(c *StructuredConfig) {
			c.Storage.Cache.Driver = CacheRedis
			c.Storage.Cache.RedisURL = "redis://localhost:6379"
		}},
		{name: "unknown cache driver", mutate: func(c *StructuredConfig) { c.Storage.Cache.Driver = "memcached" }, wantErr: ErrInvalidCacheConfigs},
		{name: "no listeners", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, wantErr: ErrInvalidServerConfigs},
		{name: "smtp without address", mutate: func(c *StructuredConfig) { c.Mail.Driver = MailSMTP }, wantErr: ErrInvalidMailConfigs},
		{name: "http without relay", mutate: func(c *StructuredConfig) { c.Mail.Driver = MailHTTP }, wantErr: ErrInvalidMailConfigs},
		{name: "zero flush interval", mutate: func(c *StructuredConfig) { c.Workers.RequestLogFlushInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
