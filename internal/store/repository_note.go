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

type noteRepository struct {
	*DB
	logger *logger.Logger
}

func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	var reminder, createdAt, updatedAt dbTime

	err := row.Scan(
		&n.NoteID,
		&n.UserID,
		&n.Title,
		&n.Description,
		&n.Color,
		&reminder,
		&createdAt,
		&updatedAt,
	)
	n.Reminder = reminder.Ptr()
	n.CreatedAt = createdAt.Time
	n.UpdatedAt = updatedAt.Time

	return n, err
}

func (r *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateNoteQuery(r.builder, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanNote(r.QueryRowContext(ctx, query, args...))
	if err != nil {
		if r.isForeignKeyViolation(err) {
			return models.Note{}, ErrUserNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("user_id", note.UserID).
			Msg("failed to insert note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "noteRepository.CreateNote").
		Int64("note_id", created.NoteID).
		Int64("user_id", created.UserID).
		Msg("note created")

	return created, nil
}

func (r *noteRepository) GetNote(ctx context.Context, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetNoteQuery(r.builder, noteID)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	note, err := scanNote(r.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	case err != nil:
		log.Err(err).
			Str("func", "noteRepository.GetNote").
			Int64("note_id", noteID).
			Msg("failed to select note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return note, nil
}

func (r *noteRepository) ListOwnedNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	query, args, err := buildListOwnedNotesQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.listNotes(ctx, "noteRepository.ListOwnedNotes", userID, query, args)
}

func (r *noteRepository) ListCollaboratingNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	query, args, err := buildListCollaboratingNotesQuery(r.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.listNotes(ctx, "noteRepository.ListCollaboratingNotes", userID, query, args)
}

func (r *noteRepository) listNotes(ctx context.Context, funcName string, userID int64, query string, args []any) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	var notes []models.Note
	err := r.withRetry(ctx, func() error {
		rows, queryErr := r.QueryContext(ctx, query, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()

		notes = make([]models.Note, 0, 16)
		for rows.Next() {
			note, scanErr := scanNote(rows)
			if scanErr != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
			}
			notes = append(notes, note)
		}

		if rowsErr := rows.Err(); rowsErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", userID).
			Msg("failed to list notes")
		if errors.Is(err, ErrScanningRow) || errors.Is(err, ErrScanningRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return notes, nil
}

func (r *noteRepository) UpdateNote(ctx context.Context, noteID, editorID int64, patch models.NotePatch) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateNoteQuery(r.builder, noteID, editorID, patch)
	if err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanNote(r.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Note{}, ErrNoteNotFound
	case err != nil:
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("note_id", noteID).
			Msg("failed to update note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *noteRepository) DeleteNote(ctx context.Context, noteID, ownerID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err = deleteCollaboratorsByNote(ctx, tx, r.DB, noteID); err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to delete collaborators of note")
		return err
	}

	query, args, err := buildDeleteNoteQuery(r.builder, noteID, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to delete note")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoteNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Str("func", "noteRepository.DeleteNote").
		Int64("note_id", noteID).
		Int64("owner_id", ownerID).
		Msg("note deleted")

	return nil
}
