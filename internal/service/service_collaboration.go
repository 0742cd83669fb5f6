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

type collaborationService struct {
	collaboratorRepository store.CollaboratorRepository
	accessService          AccessService
	validator              validators.Validator

	logger *logger.Logger
}

func NewCollaborationService(
	collaborators store.CollaboratorRepository,
	access AccessService,
	validator validators.Validator,
	logger *logger.Logger,
) CollaborationService {
	return &collaborationService{
		collaboratorRepository: collaborators,
		accessService:          access,
		validator:              validator,
		logger:                 logger,
	}
}

// Grant adds every target as a collaborator or none of them. Repeated ids in
// the request count once.
func (s *collaborationService) Grant(ctx context.Context, req models.CollaborationRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err := s.collaboratorRepository.AddCollaborators(ctx, req.NoteID, req.OwnerID, req.TargetSet())
	if err != nil {
		return s.translate(ctx, "collaborationService.Grant", req, err)
	}

	logger.FromContext(ctx).Info().
		Str("func", "collaborationService.Grant").
		Int64("note_id", req.NoteID).
		Ints64("user_ids", req.TargetSet()).
		Msg("collaborators granted")

	return nil
}

// Revoke removes the given pairs. Pairs that do not exist are ignored.
func (s *collaborationService) Revoke(ctx context.Context, req models.CollaborationRequest) error {
	if err := s.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	err := s.collaboratorRepository.RemoveCollaborators(ctx, req.NoteID, req.OwnerID, req.TargetSet())
	if err != nil {
		return s.translate(ctx, "collaborationService.Revoke", req, err)
	}

	return nil
}

func (s *collaborationService) ListCollaboratingNotes(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.collaboratorRepository.ListNoteIDsForUser(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "collaborationService.ListCollaboratingNotes").Int64("user_id", userID).Msg("error listing collaborating notes")
		return nil, fmt.Errorf("error listing collaborating notes: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Collaborators lists the users sharing noteID. Owner only.
func (s *collaborationService) Collaborators(ctx context.Context, noteID, ownerID int64) ([]models.User, error) {
	level, err := s.accessService.CanAccess(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}
	if !level.CanManage() {
		return nil, ErrUnauthorized
	}

	users, err := s.collaboratorRepository.ListUsersForNote(ctx, noteID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "collaborationService.Collaborators").Int64("note_id", noteID).Msg("error listing collaborators")
		return nil, fmt.Errorf("error listing collaborators: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *collaborationService) translate(ctx context.Context, fn string, req models.CollaborationRequest, err error) error {
	switch {
	case errors.Is(err, store.ErrNoteNotFound), errors.Is(err, store.ErrUserNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrCollaboratorExists):
		return fmt.Errorf("%w: %w", ErrAlreadyCollaborator, err)
	case errors.Is(err, store.ErrCollaboratorIsOwner):
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}

	logger.FromContext(ctx).Err(err).Str("func", fn).Int64("note_id", req.NoteID).Msg("collaboration update failed")
	return fmt.Errorf("collaboration update failed: %w", err)
}
