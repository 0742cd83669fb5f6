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

type collaboratorRepository struct {
	*DB
	logger *logger.Logger
}

func NewCollaboratorRepository(db *DB, logger *logger.Logger) CollaboratorRepository {
	logger.Debug().Msg("creating collaborator repository")
	return &collaboratorRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *collaboratorRepository) AddCollaborators(ctx context.Context, noteID, ownerID int64, userIDs []int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "collaboratorRepository.AddCollaborators").
			Int64("note_id", noteID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = checkNoteOwner(ctx, tx, r.DB, noteID, ownerID); err != nil {
		return err
	}

	for idx, userID := range userIDs {
		if err = r.addCollaborator(ctx, tx, noteID, ownerID, userID); err != nil {
			log.Warn().Err(err).
				Str("func", "collaboratorRepository.AddCollaborators").
				Int("iteration", idx+1).
				Int("total", len(userIDs)).
				Int64("note_id", noteID).
				Int64("target_id", userID).
				Msg("grant rejected, rolling back")
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "collaboratorRepository.AddCollaborators").
			Int64("note_id", noteID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "collaboratorRepository.AddCollaborators").
		Int64("note_id", noteID).
		Int("count", len(userIDs)).
		Msg("collaborators added")

	return nil
}

func (r *collaboratorRepository) addCollaborator(ctx context.Context, tx execer, noteID, ownerID, userID int64) error {
	if userID == ownerID {
		return fmt.Errorf("%w: user %d", ErrCollaboratorIsOwner, userID)
	}

	exists, err := userExists(ctx, tx, r.DB, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: user %d", ErrUserNotFound, userID)
	}

	query, args, err := buildCollaboratorExistsQuery(r.builder, noteID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	var one int
	switch err = tx.QueryRowContext(ctx, query, args...).Scan(&one); {
	case err == nil:
		return fmt.Errorf("%w: user %d", ErrCollaboratorExists, userID)
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err = buildAddCollaboratorQuery(r.builder, noteID, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		switch {
		case r.isUniqueViolation(err):
			return fmt.Errorf("%w: user %d", ErrCollaboratorExists, userID)
		case r.isForeignKeyViolation(err):
			return fmt.Errorf("%w: user %d", ErrUserNotFound, userID)
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *collaboratorRepository) RemoveCollaborators(ctx context.Context, noteID, ownerID int64, userIDs []int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = checkNoteOwner(ctx, tx, r.DB, noteID, ownerID); err != nil {
		return err
	}

	query, args, err := buildRemoveCollaboratorsQuery(r.builder, noteID, userIDs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "collaboratorRepository.RemoveCollaborators").
			Int64("note_id", noteID).
			Msg("failed to delete collaborators")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	removed, _ := res.RowsAffected()
	log.Info().
		Str("func", "collaboratorRepository.RemoveCollaborators").
		Int64("note_id", noteID).
		Int64("removed", removed).
		Msg("collaborators removed")

	return nil
}

func (r *collaboratorRepository) IsCollaborator(ctx context.Context, noteID, userID int64) (bool, error) {
	query, args, err := buildCollaboratorExistsQuery(r.builder, noteID, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	switch err = r.QueryRowContext(ctx, query, args...).Scan(&one); {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		logger.FromContext(ctx).Err(err).
			Str("func", "collaboratorRepository.IsCollaborator").
			Int64("note_id", noteID).
			Int64("user_id", userID).
			Msg("failed to check collaborator")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

func (r *collaboratorRepository) ListNoteIDsForUser(ctx context.Context, userID int64) ([]int64, error) {
	query, args, err := buildListNoteIDsForUserQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 16)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return ids, nil
}

func (r *collaboratorRepository) ListUsersForNote(ctx context.Context, noteID int64) ([]models.User, error) {
	query, args, err := buildListUsersForNoteQuery(r.builder, noteID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)
	for rows.Next() {
		u, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func (r *collaboratorRepository) DeleteByNote(ctx context.Context, noteID int64) error {
	return deleteCollaboratorsByNote(ctx, r.DB.DB, r.DB, noteID)
}

// deleteCollaboratorsByNote is shared with noteRepository.DeleteNote, which
// runs it inside the note deletion transaction.
func deleteCollaboratorsByNote(ctx context.Context, ex execer, db *DB, noteID int64) error {
	query, args, err := buildDeleteCollaboratorsByNoteQuery(db.builder, noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// checkNoteOwner returns ErrNoteNotFound when the note is missing or owned
// by someone else, so callers cannot probe other users' notes.
func checkNoteOwner(ctx context.Context, ex execer, db *DB, noteID, ownerID int64) error {
	query, args, err := buildNoteOwnerQuery(db.builder, noteID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var actualOwner int64
	switch err = ex.QueryRowContext(ctx, query, args...).Scan(&actualOwner); {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoteNotFound
	case err != nil:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	case actualOwner != ownerID:
		return ErrNoteNotFound
	}

	return nil
}

func userExists(ctx context.Context, ex execer, db *DB, userID int64) (bool, error) {
	query, args, err := buildUserExistsQuery(db.builder, userID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	switch err = ex.QueryRowContext(ctx, query, args...).Scan(&one); {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}
