// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccessLevel describes what a user may do with a note.
type AccessLevel int

const (
	// AccessNone means the user neither owns nor collaborates on the note.
	AccessNone AccessLevel = iota
	// AccessCollaborator means the user may read and update the note.
	AccessCollaborator
	// AccessOwner means the user may read, update, delete the note and
	// manage its collaborators.
	AccessOwner
)

// String implements [fmt.Stringer].
func (a AccessLevel) String() string {
	switch a {
	case AccessOwner:
		return "owner"
	case AccessCollaborator:
		return "collaborator"
	default:
		return "none"
	}
}

// CanWrite reports whether the level permits updating note fields.
func (a AccessLevel) CanWrite() bool {
	return a == AccessOwner || a == AccessCollaborator
}

// CanManage reports whether the level permits deleting the note and
// granting or revoking collaborators.
func (a AccessLevel) CanManage() bool {
	return a == AccessOwner
}
