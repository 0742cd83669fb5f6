// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors the layout of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey        string   `json:"token_sign_key"`
		TokenIssuer         string   `json:"token_issuer"`
		TokenDuration       Duration `json:"token_duration"`
		VerifyTokenDuration Duration `json:"verify_token_duration"`
		PasswordHashCost    int      `json:"password_hash_cost"`
		Version             string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			Driver    string `json:"driver"`
			RedisURL  string `json:"redis_url"`
			KeyPrefix string `json:"key_prefix"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
	} `json:"server,omitempty"`

	Mail struct {
		Driver         string `json:"driver"`
		From           string `json:"from"`
		SMTPAddress    string `json:"smtp_address"`
		SMTPUser       string `json:"smtp_user"`
		SMTPPassword   string `json:"smtp_password"`
		RelayURL       string `json:"relay_url"`
		RelayToken     string `json:"relay_token"`
		VerifyLinkBase string `json:"verify_link_base"`
	} `json:"mail,omitempty"`

	Workers struct {
		RequestLogFlushInterval Duration `json:"request_log_flush_interval"`
		HealthCheckInterval     Duration `json:"health_check_interval"`
		MailQueueSize           int      `json:"mail_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:        jsonCfg.App.TokenSignKey,
			TokenIssuer:         jsonCfg.App.TokenIssuer,
			TokenDuration:       time.Duration(jsonCfg.App.TokenDuration),
			VerifyTokenDuration: time.Duration(jsonCfg.App.VerifyTokenDuration),
			PasswordHashCost:    jsonCfg.App.PasswordHashCost,
			Version:             jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				Driver:    jsonCfg.Storage.Cache.Driver,
				RedisURL:  jsonCfg.Storage.Cache.RedisURL,
				KeyPrefix: jsonCfg.Storage.Cache.KeyPrefix,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
		},
		Mail: Mail{
			Driver:         jsonCfg.Mail.Driver,
			From:           jsonCfg.Mail.From,
			SMTPAddress:    jsonCfg.Mail.SMTPAddress,
			SMTPUser:       jsonCfg.Mail.SMTPUser,
			SMTPPassword:   jsonCfg.Mail.SMTPPassword,
			RelayURL:       jsonCfg.Mail.RelayURL,
			RelayToken:     jsonCfg.Mail.RelayToken,
			VerifyLinkBase: jsonCfg.Mail.VerifyLinkBase,
		},
		Workers: Workers{
			RequestLogFlushInterval: time.Duration(jsonCfg.Workers.RequestLogFlushInterval),
			HealthCheckInterval:     time.Duration(jsonCfg.Workers.HealthCheckInterval),
			MailQueueSize:           jsonCfg.Workers.MailQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
