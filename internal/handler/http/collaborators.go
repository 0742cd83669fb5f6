// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

func (h *Handler) listCollaborators(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "list collaborators")
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		writeError(w, r, err, "list collaborators")
		return
	}

	users, err := h.services.CollaborationService.Collaborators(r.Context(), noteID, userID)
	if err != nil {
		writeError(w, r, err, "error listing collaborators")
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) grantCollaborators(w http.ResponseWriter, r *http.Request) {
	req, ok := h.collaborationRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.CollaborationService.Grant(r.Context(), req); err != nil {
		writeError(w, r, err, "error granting collaborators")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) revokeCollaborators(w http.ResponseWriter, r *http.Request) {
	req, ok := h.collaborationRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.CollaborationService.Revoke(r.Context(), req); err != nil {
		writeError(w, r, err, "error revoking collaborators")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// collaborationRequest reads the body of a grant or revoke call. On failure
// the error response has already been written.
func (h *Handler) collaborationRequest(w http.ResponseWriter, r *http.Request) (models.CollaborationRequest, bool) {
	var req models.CollaborationRequest

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "collaboration request")
		return req, false
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		writeError(w, r, err, "collaboration request")
		return req, false
	}
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err, "invalid collaboration body")
		return req, false
	}

	req.NoteID = noteID
	req.OwnerID = userID
	return req, true
}
