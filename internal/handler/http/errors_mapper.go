// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
)

// errorStatuses is checked in order. An error can wrap several sentinels, so
// the most specific kinds come first.
var errorStatuses = []struct {
	err    error
	status int
}{
	{context.DeadlineExceeded, http.StatusGatewayTimeout},

	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{ErrMissingToken, http.StatusBadRequest},
	{ErrNoUserInContext, http.StatusUnauthorized},
	{errRouteNotFound, http.StatusNotFound},

	{service.ErrInvalidTarget, http.StatusBadRequest},
	{service.ErrAlreadyCollaborator, http.StatusConflict},
	{service.ErrDuplicateIdentity, http.StatusConflict},
	{service.ErrNotVerified, http.StatusForbidden},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrUnauthorized, http.StatusForbidden},
	{service.ErrNotFound, http.StatusNotFound},
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
}

// classifyError returns the status of the first known sentinel wrapped by
// err, and that sentinel. Unknown errors are 500 with a nil kind.
func classifyError(err error) (status int, kind error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err
		}
	}
	return http.StatusInternalServerError, nil
}

// statusFromError returns the HTTP status for err. Unknown errors are 500.
func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError logs err and answers with its mapped status. Internal failures
// are answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	if status == http.StatusInternalServerError {
		log.Err(err).Msg(msg)
		utils.WriteJSON(w, errorResponse{Error: http.StatusText(status)}, status)
		return
	}

	log.Warn().Err(err).Int("status", status).Msg(msg)
	utils.WriteJSON(w, errorResponse{Error: publicMessage(err)}, status)
}

// publicMessage hides wrapped storage details. Validation failures keep
// their field messages.
func publicMessage(err error) string {
	_, kind := classifyError(err)
	switch kind {
	case nil, service.ErrInvalidDataProvided, ErrInvalidJSON:
		return err.Error()
	default:
		return kind.Error()
	}
}
