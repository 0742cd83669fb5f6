// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/cache"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
	"golang.org/x/sync/errgroup"
)

// noteService serves note lists from per-user cache partitions and writes
// through them.
//
// Rules:
//   - a Warm partition is the complete answer for its user;
//   - a Cold partition is recomputed as owned ∪ collaborating and populated;
//   - every mutation hits the store first; the caller's partition is touched
//     only after the store write succeeded;
//   - if the partition cannot be brought in line with the store it is
//     invalidated so the next read recomputes it.
type noteService struct {
	noteRepository store.NoteRepository
	accessService  AccessService
	partitions     *cache.Partitions
	validator      validators.Validator

	logger *logger.Logger
}

func NewNoteService(
	notes store.NoteRepository,
	access AccessService,
	partitions *cache.Partitions,
	validator validators.Validator,
	logger *logger.Logger,
) NoteService {
	return &noteService{
		noteRepository: notes,
		accessService:  access,
		partitions:     partitions,
		validator:      validator,
		logger:         logger,
	}
}

func (s *noteService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	part, err := s.partitions.Lock(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error locking note cache: %w", err)
	}
	defer part.Release()

	cached, warm, err := part.Snapshot(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("func", "noteService.ListNotes").Int64("user_id", userID).Msg("cache read failed, recomputing")
	case warm:
		return cached, nil
	}

	return s.recompute(ctx, part)
}

func (s *noteService) CreateNote(ctx context.Context, userID int64, input models.NoteInput) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, input); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	created, err := s.noteRepository.CreateNote(ctx, models.Note{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Color:       input.Color,
		Reminder:    input.Reminder,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Note{}, ErrNotFound
		}
		log.Err(err).Str("func", "noteService.CreateNote").Int64("user_id", userID).Msg("error creating note")
		return models.Note{}, fmt.Errorf("error creating note: %w", err)
	}

	s.writeThrough(ctx, userID, created)

	return created, nil
}

// UpdateNote requires owner or collaborator access. Only the caller's
// partition is refreshed; other users see the change on their next cold read.
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID int64, patch models.NotePatch) (models.Note, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, patch); err != nil {
		return models.Note{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	level, err := s.accessService.CanAccess(ctx, userID, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if !level.CanWrite() {
		log.Debug().Str("func", "noteService.UpdateNote").Int64("user_id", userID).Int64("note_id", noteID).Msg("update denied")
		return models.Note{}, ErrUnauthorized
	}

	updated, err := s.noteRepository.UpdateNote(ctx, noteID, userID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.Note{}, s.resolveUpdateMiss(ctx, userID, noteID)
		}
		log.Err(err).Str("func", "noteService.UpdateNote").Int64("note_id", noteID).Msg("error updating note")
		return models.Note{}, fmt.Errorf("error updating note: %w", err)
	}

	s.writeThrough(ctx, userID, updated)

	return updated, nil
}

// resolveUpdateMiss tells a deleted note from access revoked after the
// pre-check. The UPDATE matched no row, so nothing was written.
func (s *noteService) resolveUpdateMiss(ctx context.Context, userID, noteID int64) error {
	level, err := s.accessService.CanAccess(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if !level.CanWrite() {
		logger.FromContext(ctx).Debug().
			Str("func", "noteService.UpdateNote").
			Int64("user_id", userID).
			Int64("note_id", noteID).
			Msg("access revoked during update")
		return ErrUnauthorized
	}
	return ErrNotFound
}

// DeleteNote is owner only. Collaborator pairs go in the same transaction as
// the note row.
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID int64) error {
	log := logger.FromContext(ctx)

	level, err := s.accessService.CanAccess(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if !level.CanManage() {
		return ErrUnauthorized
	}

	if err = s.noteRepository.DeleteNote(ctx, noteID, userID); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return ErrNotFound
		}
		log.Err(err).Str("func", "noteService.DeleteNote").Int64("note_id", noteID).Msg("error deleting note")
		return fmt.Errorf("error deleting note: %w", err)
	}

	part, err := s.lockAfterWrite(ctx, userID)
	if err != nil {
		return nil
	}
	defer part.Release()

	if err = part.Remove(ctx, noteID); err != nil {
		log.Warn().Err(err).Str("func", "noteService.DeleteNote").Int64("user_id", userID).Msg("error removing cached note")
		s.invalidate(ctx, part)
	}

	return nil
}

func (s *noteService) InvalidateCache(ctx context.Context, userID int64) error {
	part, err := s.partitions.Lock(ctx, userID)
	if err != nil {
		return fmt.Errorf("error locking note cache: %w", err)
	}
	defer part.Release()

	if err = part.Invalidate(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.InvalidateCache").Int64("user_id", userID).Msg("error invalidating note cache")
		return fmt.Errorf("error invalidating note cache: %w", err)
	}

	return nil
}

// writeThrough puts note into a Warm partition. A Cold partition is warmed by
// a full recomputation instead, which already contains note.
func (s *noteService) writeThrough(ctx context.Context, userID int64, note models.Note) {
	log := logger.FromContext(ctx)

	part, err := s.lockAfterWrite(ctx, userID)
	if err != nil {
		return
	}
	defer part.Release()

	warm, err := part.Warm(ctx)
	if err != nil {
		log.Warn().Err(err).Str("func", "noteService.writeThrough").Int64("user_id", userID).Msg("cache read failed")
		s.invalidate(ctx, part)
		return
	}

	if !warm {
		if _, err = s.recompute(ctx, part); err != nil {
			log.Warn().Err(err).Str("func", "noteService.writeThrough").Int64("user_id", userID).Msg("partition left cold")
		}
		return
	}

	if err = part.Put(ctx, note); err != nil {
		log.Warn().Err(err).Str("func", "noteService.writeThrough").Int64("note_id", note.NoteID).Msg("error caching note")
		s.invalidate(ctx, part)
	}
}

// lockAfterWrite locks the partition once the store already changed. The
// request context may be cancelled by now, but the cache must still follow
// the store, so cancellation is ignored.
func (s *noteService) lockAfterWrite(ctx context.Context, userID int64) (*cache.Partition, error) {
	part, err := s.partitions.Lock(context.WithoutCancel(ctx), userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.lockAfterWrite").Int64("user_id", userID).Msg("error locking note cache")
		return nil, err
	}
	return part, nil
}

// recompute loads owned and collaborating notes concurrently and populates
// the partition with their union.
func (s *noteService) recompute(ctx context.Context, part *cache.Partition) ([]models.Note, error) {
	userID := part.UserID()

	var owned, shared []models.Note
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owned, err = s.noteRepository.ListOwnedNotes(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		shared, err = s.noteRepository.ListCollaboratingNotes(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.recompute").Int64("user_id", userID).Msg("error loading notes")
		return nil, fmt.Errorf("error loading notes: %w", err)
	}

	notes := unionNotes(owned, shared)

	if err := part.Populate(ctx, notes); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "noteService.recompute").Int64("user_id", userID).Msg("error populating note cache")
		s.invalidate(ctx, part)
	}

	return notes, nil
}

func (s *noteService) invalidate(ctx context.Context, part *cache.Partition) {
	if err := part.Invalidate(context.WithoutCancel(ctx)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.invalidate").Int64("user_id", part.UserID()).Msg("error invalidating note cache")
	}
}

// unionNotes merges both lists by note id, ordered by id. Never nil.
func unionNotes(lists ...[]models.Note) []models.Note {
	byID := make(map[int64]models.Note)
	for _, list := range lists {
		for _, n := range list {
			byID[n.NoteID] = n
		}
	}

	notes := make([]models.Note, 0, len(byID))
	for _, n := range byID {
		notes = append(notes, n)
	}
	cache.SortNotes(notes)

	return notes
}
