// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type requestLogRepository struct {
	*DB
	logger *logger.Logger
}

func NewRequestLogRepository(db *DB, logger *logger.Logger) RequestLogRepository {
	logger.Debug().Msg("creating request log repository")
	return &requestLogRepository{
		DB:     db,
		logger: logger,
	}
}

// AddRequestCounts adds every counter in logs to the stored totals.
// Transient failures are retried.
func (r *requestLogRepository) AddRequestCounts(ctx context.Context, logs []models.RequestLog) error {
	if len(logs) == 0 {
		return nil
	}

	query, args, err := buildAddRequestCountsQuery(r.builder, logs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.withRetry(ctx, func() error {
		_, execErr := r.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		r.logger.Err(err).
			Str("func", "requestLogRepository.AddRequestCounts").
			Int("routes", len(logs)).
			Msg("failed to store request counters")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *requestLogRepository) ListRequestLogs(ctx context.Context) ([]models.RequestLog, error) {
	query, args, err := buildListRequestLogsQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	logs := make([]models.RequestLog, 0, 32)
	for rows.Next() {
		var l models.RequestLog
		if err = rows.Scan(&l.Method, &l.Path, &l.Count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return logs, nil
}
