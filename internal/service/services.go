// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-notes-keeper/internal/cache"
	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type Services struct {
	AuthService          AuthService
	AccessService        AccessService
	NoteService          NoteService
	CollaborationService CollaborationService
	LabelService         LabelService
	RequestLogService    RequestLogService
	AppInfoService       AppInfoService
}

func NewServices(
	storages *store.Storages,
	partitions *cache.Partitions,
	mailQueue MailQueue,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	validator := validators.NewModelValidator()
	access := NewAccessService(storages.NoteRepository, storages.CollaboratorRepository, logger)

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:          NewAuthService(storages.UserRepository, mailQueue, validator, cfg.App, cfg.Mail, logger),
		AccessService:        access,
		NoteService:          NewNoteService(storages.NoteRepository, access, partitions, validator, logger),
		CollaborationService: NewCollaborationService(storages.CollaboratorRepository, access, validator, logger),
		LabelService:         NewLabelService(storages.LabelRepository, validator, logger),
		RequestLogService:    NewRequestLogService(storages.RequestLogRepository, logger),
		AppInfoService:       appInfo,
	}, nil
}
