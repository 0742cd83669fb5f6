// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

func (h *Handler) createLabel(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "create label")
		return
	}

	var label models.Label
	if err = decodeBody(r, &label); err != nil {
		writeError(w, r, err, "invalid label body")
		return
	}

	created, err := h.services.LabelService.CreateLabel(r.Context(), userID, label)
	if err != nil {
		writeError(w, r, err, "error creating label")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) listLabels(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "list labels")
		return
	}

	labels, err := h.services.LabelService.ListLabels(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "error listing labels")
		return
	}

	utils.WriteJSON(w, labels, http.StatusOK)
}

func (h *Handler) updateLabel(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "update label")
		return
	}
	labelID, err := pathID(r, "labelID")
	if err != nil {
		writeError(w, r, err, "update label")
		return
	}

	var patch models.LabelPatch
	if err = decodeBody(r, &patch); err != nil {
		writeError(w, r, err, "invalid label patch")
		return
	}

	label, err := h.services.LabelService.UpdateLabel(r.Context(), userID, labelID, patch)
	if err != nil {
		writeError(w, r, err, "error updating label")
		return
	}

	utils.WriteJSON(w, label, http.StatusOK)
}

func (h *Handler) deleteLabel(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeError(w, r, err, "delete label")
		return
	}
	labelID, err := pathID(r, "labelID")
	if err != nil {
		writeError(w, r, err, "delete label")
		return
	}

	if err = h.services.LabelService.DeleteLabel(r.Context(), userID, labelID); err != nil {
		writeError(w, r, err, "error deleting label")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
