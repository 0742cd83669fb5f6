// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// withDotEnv loads variables from ./.env into the process environment.
// Variables that are already set are not overridden; a missing file is fine.
func (b *configBuilder) withDotEnv() *configBuilder {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		b.err = errors.Join(b.err, fmt.Errorf("error loading %s: %w", dotEnvFile, err))
	}

	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := loadEnv()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath != "" {
		jsonCfg, err := parseJSON(jsonPath)
		if err != nil {
			b.err = errors.Join(b.err, err)
			return b
		}
		b.configs = append(b.configs, jsonCfg)
	}

	return b
}

// withDefaults appends the lowest-priority layer with the built-in defaults.
func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:         "go-notes-keeper",
			TokenDuration:       30 * time.Minute,
			VerifyTokenDuration: 24 * time.Hour,
			Version:             "dev",
		},
		Storage: Storage{
			DB:    DB{Driver: DriverPostgres},
			Cache: Cache{Driver: CacheMemory, KeyPrefix: "notes"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Mail: Mail{
			Driver:         MailLog,
			From:           "no-reply@localhost",
			VerifyLinkBase: "http://localhost:8080",
		},
		Workers: Workers{
			RequestLogFlushInterval: 10 * time.Second,
			HealthCheckInterval:     15 * time.Second,
			MailQueueSize:           128,
		},
	}
}
