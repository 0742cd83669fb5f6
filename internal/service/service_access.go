// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type accessService struct {
	noteRepository         store.NoteRepository
	collaboratorRepository store.CollaboratorRepository

	logger *logger.Logger
}

func NewAccessService(notes store.NoteRepository, collaborators store.CollaboratorRepository, logger *logger.Logger) AccessService {
	return &accessService{
		noteRepository:         notes,
		collaboratorRepository: collaborators,
		logger:                 logger,
	}
}

// CanAccess returns AccessOwner for the note owner, AccessCollaborator when
// the (userID, noteID) pair exists and AccessNone otherwise. A missing note
// is ErrNotFound.
func (s *accessService) CanAccess(ctx context.Context, userID, noteID int64) (models.AccessLevel, error) {
	log := logger.FromContext(ctx)

	note, err := s.noteRepository.GetNote(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return models.AccessNone, ErrNotFound
		}
		log.Err(err).Str("func", "accessService.CanAccess").Int64("note_id", noteID).Msg("error loading note")
		return models.AccessNone, fmt.Errorf("error loading note: %w", err)
	}

	if note.UserID == userID {
		return models.AccessOwner, nil
	}

	ok, err := s.collaboratorRepository.IsCollaborator(ctx, noteID, userID)
	if err != nil {
		log.Err(err).Str("func", "accessService.CanAccess").Int64("note_id", noteID).Msg("error checking collaboration")
		return models.AccessNone, fmt.Errorf("error checking collaboration: %w", err)
	}
	if ok {
		return models.AccessCollaborator, nil
	}

	return models.AccessNone, nil
}
