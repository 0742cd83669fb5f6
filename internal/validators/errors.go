// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidNoteID    = errors.New("invalid note ID")
	ErrEmptyTargets     = errors.New("user IDs list cannot be empty")
)
