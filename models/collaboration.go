// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CollaborationRequest asks to grant or revoke access to a note for a set of
// users. Only the note owner may issue it.
type CollaborationRequest struct {
	NoteID  int64   `json:"-"`
	OwnerID int64   `json:"-"`
	UserIDs []int64 `json:"user_ids" validate:"required,min=1,dive,gt=0"`
}

// TargetSet returns UserIDs with duplicates removed, preserving the order of
// first appearance.
func (r CollaborationRequest) TargetSet() []int64 {
	seen := make(map[int64]struct{}, len(r.UserIDs))
	targets := make([]int64, 0, len(r.UserIDs))
	for _, id := range r.UserIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		targets = append(targets, id)
	}
	return targets
}
