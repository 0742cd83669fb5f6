// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Note is a single note owned by exactly one user. Ownership never changes
// after creation; title, description and color may be changed by the owner
// and by collaborators.
type Note struct {
	NoteID      int64      `json:"note_id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Color       string     `json:"color"`
	Reminder    *time.Time `json:"reminder,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NoteInput is the body of a create-note request.
type NoteInput struct {
	Title       string     `json:"title" validate:"required,max=256"`
	Description string     `json:"description" validate:"max=10000"`
	Color       string     `json:"color" validate:"required,max=32"`
	Reminder    *time.Time `json:"reminder,omitempty"`
}

// NotePatch lists exactly the mutable fields of a [Note].
// A nil field is left unchanged.
type NotePatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=256"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
	Color       *string `json:"color,omitempty" validate:"omitempty,min=1,max=32"`
}

// IsEmpty reports whether the patch changes nothing.
func (p NotePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Color == nil
}
