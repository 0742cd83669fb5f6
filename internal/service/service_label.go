// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// labelService scopes every operation by owner. A label of another user
// is indistinguishable from a missing one.
type labelService struct {
	labelRepository store.LabelRepository
	validator       validators.Validator

	logger *logger.Logger
}

func NewLabelService(labels store.LabelRepository, validator validators.Validator, logger *logger.Logger) LabelService {
	return &labelService{
		labelRepository: labels,
		validator:       validator,
		logger:          logger,
	}
}

func (s *labelService) CreateLabel(ctx context.Context, userID int64, label models.Label) (models.Label, error) {
	label.UserID = userID
	if err := s.validator.Validate(ctx, label); err != nil {
		return models.Label{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := s.labelRepository.CreateLabel(ctx, label)
	if err != nil {
		return models.Label{}, s.translate(ctx, "labelService.CreateLabel", err)
	}
	return created, nil
}

func (s *labelService) ListLabels(ctx context.Context, userID int64) ([]models.Label, error) {
	labels, err := s.labelRepository.ListLabels(ctx, userID)
	if err != nil {
		return nil, s.translate(ctx, "labelService.ListLabels", err)
	}
	if labels == nil {
		labels = []models.Label{}
	}
	return labels, nil
}

func (s *labelService) UpdateLabel(ctx context.Context, userID, labelID int64, patch models.LabelPatch) (models.Label, error) {
	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Label{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	updated, err := s.labelRepository.UpdateLabel(ctx, labelID, userID, patch)
	if err != nil {
		return models.Label{}, s.translate(ctx, "labelService.UpdateLabel", err)
	}
	return updated, nil
}

func (s *labelService) DeleteLabel(ctx context.Context, userID, labelID int64) error {
	if err := s.labelRepository.DeleteLabel(ctx, labelID, userID); err != nil {
		return s.translate(ctx, "labelService.DeleteLabel", err)
	}
	return nil
}

func (s *labelService) translate(ctx context.Context, fn string, err error) error {
	if errors.Is(err, store.ErrLabelNotFound) || errors.Is(err, store.ErrUserNotFound) {
		return ErrNotFound
	}
	logger.FromContext(ctx).Err(err).Str("func", fn).Msg("label storage error")
	return fmt.Errorf("label storage error: %w", err)
}
