// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// requestLogService aggregates hits in memory; a worker calls Flush
// periodically.
type requestLogService struct {
	requestLogRepository store.RequestLogRepository

	mu      sync.Mutex
	pending map[models.RequestLogKey]int64

	logger *logger.Logger
}

func NewRequestLogService(repo store.RequestLogRepository, logger *logger.Logger) RequestLogService {
	return &requestLogService{
		requestLogRepository: repo,
		pending:              make(map[models.RequestLogKey]int64),
		logger:               logger,
	}
}

func (s *requestLogService) Record(method, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending[models.RequestLogKey{Method: method, Path: path}]++
}

// Flush writes pending counts. On failure the counts are kept for the next
// attempt.
func (s *requestLogService) Flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.pending
	s.pending = make(map[models.RequestLogKey]int64)
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	logs := make([]models.RequestLog, 0, len(batch))
	for key, count := range batch {
		logs = append(logs, models.RequestLog{RequestLogKey: key, Count: count})
	}

	if err := s.requestLogRepository.AddRequestCounts(ctx, logs); err != nil {
		s.mu.Lock()
		for key, count := range batch {
			s.pending[key] += count
		}
		s.mu.Unlock()

		logger.FromContext(ctx).Err(err).Str("func", "requestLogService.Flush").Int("routes", len(logs)).Msg("error flushing request counts")
		return fmt.Errorf("error flushing request counts: %w", err)
	}

	return nil
}

func (s *requestLogService) ListRequestLogs(ctx context.Context) ([]models.RequestLog, error) {
	logs, err := s.requestLogRepository.ListRequestLogs(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "requestLogService.ListRequestLogs").Msg("error listing request logs")
		return nil, fmt.Errorf("error listing request logs: %w", err)
	}
	if logs == nil {
		logs = []models.RequestLog{}
	}
	return logs, nil
}
