// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"

	"github.com/MKhiriev/go-notes-keeper/internal/mailer"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	// VerifyUser redeems a verification token.
	VerifyUser(ctx context.Context, tokenString string) error
	// Verify marks userID as verified. Verifying twice is not an error.
	Verify(ctx context.Context, userID int64) error
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccessService resolves what a user may do with a note.
type AccessService interface {
	CanAccess(ctx context.Context, userID, noteID int64) (models.AccessLevel, error)
}

// NoteService is the cache-coherent read/write surface for notes. Every
// mutation reaches the store before the caller's cache partition.
type NoteService interface {
	ListNotes(ctx context.Context, userID int64) ([]models.Note, error)
	CreateNote(ctx context.Context, userID int64, input models.NoteInput) (models.Note, error)
	UpdateNote(ctx context.Context, userID, noteID int64, patch models.NotePatch) (models.Note, error)
	DeleteNote(ctx context.Context, userID, noteID int64) error
	// InvalidateCache turns the user's partition Cold.
	InvalidateCache(ctx context.Context, userID int64) error
}

type CollaborationService interface {
	Grant(ctx context.Context, req models.CollaborationRequest) error
	Revoke(ctx context.Context, req models.CollaborationRequest) error
	ListCollaboratingNotes(ctx context.Context, userID int64) ([]int64, error)
	Collaborators(ctx context.Context, noteID, ownerID int64) ([]models.User, error)
}

type LabelService interface {
	CreateLabel(ctx context.Context, userID int64, label models.Label) (models.Label, error)
	ListLabels(ctx context.Context, userID int64) ([]models.Label, error)
	UpdateLabel(ctx context.Context, userID, labelID int64, patch models.LabelPatch) (models.Label, error)
	DeleteLabel(ctx context.Context, userID, labelID int64) error
}

// RequestLogService counts requests per route. Record is cheap and never
// touches the database; Flush persists what was recorded since the last one.
type RequestLogService interface {
	Record(method, path string)
	Flush(ctx context.Context) error
	ListRequestLogs(ctx context.Context) ([]models.RequestLog, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// MailQueue accepts outbound mail without waiting for delivery.
type MailQueue interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
}
