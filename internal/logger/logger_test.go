// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewLogger("test"))
}

// TestNew_EntryFields verifies the role, time and caller fields.
func TestNew_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "server")

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNew_EntryFields")
	assert.Equal(t, "hello", entry["message"])
}

func TestNew_GlobalLevelIsDebug(t *testing.T) {
	New(&bytes.Buffer{}, "level")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// ── GetChildLogger ────────────────────────────────────────────────────────────

func TestGetChildLogger_InheritsFieldsWithoutLeaking(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "parent-role")

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)

	child.Logger = child.With().Str("trace_id", "abc").Logger()
	child.Info().Msg("child")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent-role", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "trace_id")
}

// ── context helpers ───────────────────────────────────────────────────────────

func TestFromContext_NotNilWithoutLogger(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

func TestWithContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "ctx")
	l.Logger = l.With().Str("ctx-key", "ctx-value").Logger()

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Info().Msg("from context")

	assert.Equal(t, "ctx-value", decodeEntry(t, &buf)["ctx-key"])
}

func TestFromRequest_ReturnsAttachedLogger(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("req-key", "req-value").Logger()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "req-value", decodeEntry(t, &buf)["req-key"])
}
