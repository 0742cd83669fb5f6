// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Domain errors. The service layer translates them into its own sentinels.
var (
	ErrLoginAlreadyExists = errors.New("login already exists")

	ErrUserNotFound = errors.New("no user was found")

	ErrNoteNotFound = errors.New("note was not found")

	ErrLabelNotFound = errors.New("label was not found")

	ErrCollaboratorExists = errors.New("user already collaborates on note")

	ErrCollaboratorIsOwner = errors.New("note owner cannot be a collaborator")
)

// Infrastructure errors.
var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	ErrBuildingSQLQuery = errors.New("error building sql query")

	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	ErrCommitingTransaction = errors.New("failed to commit transaction")

	ErrScanningRow = errors.New("failed to scan row")

	ErrScanningRows = errors.New("failed to iterate rows")
)
