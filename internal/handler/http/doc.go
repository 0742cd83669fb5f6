// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the notes server.
//
// Routes are served by chi. Every request gets a trace id and a child
// logger, is counted for the request log and prometheus, and, on the
// authenticated routes, carries the caller's user id in its context.
// Service errors are turned into status codes by statusFromError.
package http
