// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

func (h *Handler) getBuildInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	build := h.services.AppInfoService.GetBuildInfo(ctx)
	build.Version = h.services.AppInfoService.GetAppVersion(ctx)

	utils.WriteJSON(w, build, http.StatusOK)
}
