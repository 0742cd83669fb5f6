// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
)

type requestLogResponse struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Count  int64  `json:"count"`
}

// listRequestLogs reports the persisted per-endpoint hit counters.
func (h *Handler) listRequestLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.services.RequestLogService.ListRequestLogs(r.Context())
	if err != nil {
		writeError(w, r, err, "error listing request logs")
		return
	}

	resp := make([]requestLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, requestLogResponse{Method: l.Method, Path: l.Path, Count: l.Count})
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}
