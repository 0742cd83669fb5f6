// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Label is a user-owned tag. Labels have no collaboration concept.
type Label struct {
	LabelID int64  `json:"label_id"`
	UserID  int64  `json:"user_id"`
	Name    string `json:"name" validate:"required,max=64"`
}

// LabelPatch lists the mutable fields of a [Label].
type LabelPatch struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
}

// IsEmpty reports whether the patch changes nothing.
func (p LabelPatch) IsEmpty() bool {
	return p.Name == nil
}
