// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/models"
)

type verifyResponse struct {
	Verified bool `json:"verified"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var user models.User
	if err := decodeBody(r, &user); err != nil {
		writeError(w, r, err, "invalid registration body")
		return
	}

	registered, err := h.services.AuthService.RegisterUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err, "error registering user")
		return
	}

	log.Info().Int64("user_id", registered.UserID).Msg("user registered")
	utils.WriteJSON(w, registered, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := decodeBody(r, &credentials); err != nil {
		writeError(w, r, err, "invalid login body")
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), credentials)
	if err != nil {
		writeError(w, r, err, "error logging in")
		return
	}

	log.Debug().Int64("user_id", token.UserID).Msg("user logged in")
	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.NewAuthResponse(token), http.StatusOK)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		writeError(w, r, ErrMissingToken, "verification without token")
		return
	}

	if err := h.services.AuthService.VerifyUser(r.Context(), tokenString); err != nil {
		writeError(w, r, err, "error verifying user")
		return
	}

	utils.WriteJSON(w, verifyResponse{Verified: true}, http.StatusOK)
}
