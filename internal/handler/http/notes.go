// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "create note")
		return
	}

	var input models.NoteInput
	if err = decodeBody(r, &input); err != nil {
		writeError(w, r, err, "invalid note body")
		return
	}

	note, err := h.services.NoteService.CreateNote(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err, "error creating note")
		return
	}

	utils.WriteJSON(w, note, http.StatusCreated)
}

// listNotes returns every note the caller owns or collaborates on.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "list notes")
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error listing notes")
		return
	}

	utils.WriteJSON(w, notes, http.StatusOK)
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "update note")
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		writeError(w, r, err, "update note")
		return
	}

	var patch models.NotePatch
	if err = decodeBody(r, &patch); err != nil {
		writeError(w, r, err, "invalid note patch")
		return
	}

	note, err := h.services.NoteService.UpdateNote(r.Context(), userID, noteID, patch)
	if err != nil {
		writeError(w, r, err, "error updating note")
		return
	}

	utils.WriteJSON(w, note, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "delete note")
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		writeError(w, r, err, "delete note")
		return
	}

	if err = h.services.NoteService.DeleteNote(r.Context(), userID, noteID); err != nil {
		writeError(w, r, err, "error deleting note")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// invalidateNotesCache drops the caller's cached note view. The next list
// recomputes it from the database.
func (h *Handler) invalidateNotesCache(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "invalidate cache")
		return
	}

	if err = h.services.NoteService.InvalidateCache(r.Context(), userID); err != nil {
		writeError(w, r, err, "error invalidating notes cache")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
