// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mock"
	"github.com/MKhiriev/go-notes-keeper/internal/service"
	"github.com/MKhiriev/go-notes-keeper/models"
)

const (
	testUserID = int64(7)
	goodToken  = "good.jwt.token"
)

// ── harness ─────────────────────────────────────────────────────────────────

type testEnv struct {
	auth    *mock.MockAuthService
	notes   *mock.MockNoteService
	collab  *mock.MockCollaborationService
	labels  *mock.MockLabelService
	reqLog  *mock.MockRequestLogService
	appInfo *mock.MockAppInfoService

	reg     *prometheus.Registry
	handler *Handler
	router  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		auth:    mock.NewMockAuthService(ctrl),
		notes:   mock.NewMockNoteService(ctrl),
		collab:  mock.NewMockCollaborationService(ctrl),
		labels:  mock.NewMockLabelService(ctrl),
		reqLog:  mock.NewMockRequestLogService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
		reg:     prometheus.NewRegistry(),
	}

	env.auth.EXPECT().ParseToken(gomock.Any(), goodToken).
		Return(models.Token{UserID: testUserID}, nil).AnyTimes()
	env.auth.EXPECT().ParseToken(gomock.Any(), gomock.Not(goodToken)).
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).AnyTimes()
	env.reqLog.EXPECT().Record(gomock.Any(), gomock.Any()).AnyTimes()

	h := NewHandler(&service.Services{
		AuthService:          env.auth,
		NoteService:          env.notes,
		CollaborationService: env.collab,
		LabelService:         env.labels,
		RequestLogService:    env.reqLog,
		AppInfoService:       env.appInfo,
	}, config.Server{}, env.reg, logger.Nop())
	env.handler = h
	env.router = h.Init()

	return env
}

// do sends a request through the full router. A non-empty token is sent as
// a bearer credential.
func (e *testEnv) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func strPtr(s string) *string { return &s }
