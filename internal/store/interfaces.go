// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/models"
)

// UserRepository persists identities.
type UserRepository interface {
	// CreateUser inserts an unverified user. Returns ErrLoginAlreadyExists
	// when the user name is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByName(ctx context.Context, userName string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	SetVerified(ctx context.Context, userID int64) error
}

// NoteRepository persists notes. Access checks live in the service layer,
// except for writes, which re-check access in the statement itself.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, noteID int64) (models.Note, error)
	ListOwnedNotes(ctx context.Context, userID int64) ([]models.Note, error)
	ListCollaboratingNotes(ctx context.Context, userID int64) ([]models.Note, error)
	// UpdateNote applies patch only while editorID owns the note or
	// collaborates on it. Otherwise it returns ErrNoteNotFound.
	UpdateNote(ctx context.Context, noteID, editorID int64, patch models.NotePatch) (models.Note, error)
	// DeleteNote removes the note's collaborator pairs and the note itself
	// in one transaction.
	DeleteNote(ctx context.Context, noteID, ownerID int64) error
}

// CollaboratorRepository persists the (user, note) sharing index.
type CollaboratorRepository interface {
	// AddCollaborators validates every target and inserts all pairs in one
	// transaction. Any failure leaves the index unchanged.
	AddCollaborators(ctx context.Context, noteID, ownerID int64, userIDs []int64) error
	// RemoveCollaborators deletes the given pairs. Missing pairs are ignored.
	RemoveCollaborators(ctx context.Context, noteID, ownerID int64, userIDs []int64) error
	IsCollaborator(ctx context.Context, noteID, userID int64) (bool, error)
	ListNoteIDsForUser(ctx context.Context, userID int64) ([]int64, error)
	ListUsersForNote(ctx context.Context, noteID int64) ([]models.User, error)
	DeleteByNote(ctx context.Context, noteID int64) error
}

type LabelRepository interface {
	CreateLabel(ctx context.Context, label models.Label) (models.Label, error)
	ListLabels(ctx context.Context, userID int64) ([]models.Label, error)
	UpdateLabel(ctx context.Context, labelID, userID int64, patch models.LabelPatch) (models.Label, error)
	DeleteLabel(ctx context.Context, labelID, userID int64) error
}

// RequestLogRepository accumulates per-route request counters.
type RequestLogRepository interface {
	AddRequestCounts(ctx context.Context, logs []models.RequestLog) error
	ListRequestLogs(ctx context.Context) ([]models.RequestLog, error)
}
