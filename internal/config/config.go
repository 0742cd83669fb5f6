// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-notes-keeper server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token keys and lifetimes.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the note cache.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Mail holds the outbound verification mail settings.
	Mail Mail `envPrefix:"MAIL_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Cache holds the per-user note cache settings.
	Cache Cache `envPrefix:"CACHE_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an access token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// VerifyTokenDuration specifies how long an email verification link
	// remains valid.
	// Env: APP_VERIFY_TOKEN_DURATION
	VerifyTokenDuration time.Duration `env:"VERIFY_TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt cost factor. Zero means bcrypt.DefaultCost.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists CORS origins. Empty disables CORS headers.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the SQL dialect: "postgres" (default) or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the data source name used to open the database connection.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Cache holds settings for the per-user note cache partitions.
type Cache struct {
	// Driver selects the partition backend: "memory" (default) or "redis".
	// Env: STORAGE_CACHE_DRIVER
	Driver string `env:"DRIVER"`

	// RedisURL is the redis:// URL used when Driver is "redis".
	// Env: STORAGE_CACHE_REDIS_URL
	RedisURL string `env:"REDIS_URL"`

	// KeyPrefix namespaces partition keys in Redis.
	// Env: STORAGE_CACHE_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`
}

// Mail holds outbound verification mail settings.
type Mail struct {
	// Driver selects the delivery backend: "log" (default), "smtp" or "http".
	// Env: MAIL_DRIVER
	Driver string `env:"DRIVER"`

	// From is the sender address.
	// Env: MAIL_FROM
	From string `env:"FROM"`

	// SMTPAddress is host:port of the SMTP server.
	// Env: MAIL_SMTP_ADDRESS
	SMTPAddress string `env:"SMTP_ADDRESS"`

	// SMTPUser and SMTPPassword are the PLAIN auth credentials.
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	// RelayURL is the endpoint of an HTTP mail relay used when Driver is "http".
	// Env: MAIL_RELAY_URL
	RelayURL string `env:"RELAY_URL"`

	// RelayToken is sent as a bearer token to the HTTP relay.
	// Env: MAIL_RELAY_TOKEN
	RelayToken string `env:"RELAY_TOKEN"`

	// VerifyLinkBase is the public base URL placed in verification links
	// (e.g. "http://127.0.0.1:8080").
	// Env: MAIL_VERIFY_LINK_BASE
	VerifyLinkBase string `env:"VERIFY_LINK_BASE"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// RequestLogFlushInterval controls how often aggregated request counts are
	// written to the database.
	// Env: WORKERS_REQUEST_LOG_FLUSH_INTERVAL
	RequestLogFlushInterval time.Duration `env:"REQUEST_LOG_FLUSH_INTERVAL"`

	// HealthCheckInterval controls how often the database is pinged for the
	// gRPC health status.
	// Env: WORKERS_HEALTH_CHECK_INTERVAL
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL"`

	// MailQueueSize is the capacity of the verification mail queue.
	// Env: WORKERS_MAIL_QUEUE_SIZE
	MailQueueSize int `env:"MAIL_QUEUE_SIZE"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields, later ones fill the gaps):
//  1. Environment variables (after loading an optional .env file)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
