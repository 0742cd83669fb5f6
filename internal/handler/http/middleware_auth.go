// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
)

// auth accepts requests carrying a valid access token in the
// "Authorization: Bearer" header and stores the token subject in the
// request context. Everything else is answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, errorResponse{Error: ErrEmptyAuthorizationHeader.Error()}, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Warn().Err(err).Send()
			utils.WriteJSON(w, errorResponse{Error: err.Error()}, http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err, "error occurred during parsing token")
			return
		}

		ctx := utils.WithUserID(r.Context(), token.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromRequest(r *http.Request) (int64, error) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return 0, ErrNoUserInContext
	}
	return userID, nil
}
