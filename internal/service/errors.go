// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Domain errors returned by the service layer. Storage errors are translated
// into these before leaving the package; anything else is an internal failure.
var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("insufficient permission")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotVerified         = errors.New("user is not verified")
	ErrDuplicateIdentity   = errors.New("user name already exists")
	ErrAlreadyCollaborator = errors.New("user already collaborates on note")
	ErrInvalidTarget       = errors.New("invalid collaboration target")
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
