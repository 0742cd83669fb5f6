// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type labelRepository struct {
	*DB
	logger *logger.Logger
}

func NewLabelRepository(db *DB, logger *logger.Logger) LabelRepository {
	logger.Debug().Msg("creating label repository")
	return &labelRepository{
		DB:     db,
		logger: logger,
	}
}

func scanLabel(row rowScanner) (models.Label, error) {
	var l models.Label
	err := row.Scan(&l.LabelID, &l.UserID, &l.Name)
	return l, err
}

func (r *labelRepository) CreateLabel(ctx context.Context, label models.Label) (models.Label, error) {
	query, args, err := buildCreateLabelQuery(r.builder, label)
	if err != nil {
		return models.Label{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanLabel(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.isForeignKeyViolation(err) {
			return models.Label{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "labelRepository.CreateLabel").
			Int64("user_id", label.UserID).
			Msg("failed to insert label")
		return models.Label{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *labelRepository) ListLabels(ctx context.Context, userID int64) ([]models.Label, error) {
	query, args, err := buildListLabelsQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "labelRepository.ListLabels").
			Int64("user_id", userID).
			Msg("failed to list labels")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	labels := make([]models.Label, 0, 8)
	for rows.Next() {
		l, scanErr := scanLabel(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		labels = append(labels, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return labels, nil
}

func (r *labelRepository) UpdateLabel(ctx context.Context, labelID, userID int64, patch models.LabelPatch) (models.Label, error) {
	query, args, err := buildUpdateLabelQuery(r.builder, labelID, userID, patch)
	if err != nil {
		return models.Label{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanLabel(r.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Label{}, ErrLabelNotFound
	case err != nil:
		return models.Label{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *labelRepository) DeleteLabel(ctx context.Context, labelID, userID int64) error {
	query, args, err := buildDeleteLabelQuery(r.builder, labelID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrLabelNotFound
	}

	return nil
}
