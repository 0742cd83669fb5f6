// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether an operation may be retried.
type ErrorClassification int

const (
	// NonRetryable errors will fail again on retry.
	NonRetryable ErrorClassification = iota

	// Retryable errors are transient (lost connection, serialization
	// failure, deadlock).
	Retryable
)

// ErrorClassificator inspects driver errors for a single dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsForeignKeyViolation(err error) bool
}

// PostgresErrorClassifier implements ErrorClassificator for pgx errors.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	if code := postgresErrorCode(err); code != "" {
		return classifyPgCode(code)
	}

	return NonRetryable
}

func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.UniqueViolation
}

func (c *PostgresErrorClassifier) IsForeignKeyViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.ForeignKeyViolation
}

func classifyPgCode(code string) ErrorClassification {
	switch code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.CannotConnectNow:
		return Retryable

	case pgerrcode.TransactionRollback, // 40000
		pgerrcode.SerializationFailure, // 40001
		pgerrcode.DeadlockDetected:     // 40P01
		return Retryable
	}

	return NonRetryable
}

func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
