// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request has no "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoUserInContext means an authenticated handler was reached without
	// the auth middleware.
	ErrNoUserInContext = errors.New("no authenticated user in request context")

	ErrInvalidPathParam = errors.New("invalid path parameter")
	ErrInvalidJSON      = errors.New("invalid JSON was passed")
	ErrMissingToken     = errors.New("missing `token` query parameter")

	errRouteNotFound = errors.New("route not found")
)
