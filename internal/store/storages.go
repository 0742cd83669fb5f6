// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
)

// Storages groups every repository over one database connection.
type Storages struct {
	UserRepository         UserRepository
	NoteRepository         NoteRepository
	CollaboratorRepository CollaboratorRepository
	LabelRepository        LabelRepository
	RequestLogRepository   RequestLogRepository

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		NoteRepository:         NewNoteRepository(db, log),
		CollaboratorRepository: NewCollaboratorRepository(db, log),
		LabelRepository:        NewLabelRepository(db, log),
		RequestLogRepository:   NewRequestLogRepository(db, log),
		db:                     db,
	}
}

// Ping reports database reachability.
func (s *Storages) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storages) Close() error {
	return s.db.Close()
}
