package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, nil))

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	log.InfoContext(ctx, "hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-42", rec["request_id"])
	assert.Equal(t, "v", rec["k"])
	assert.NotContains(t, rec, "trace_id")
}

func TestHandler_WithAttrsKeepsEnrichment(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, nil)).With("component", "test")

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")
	log.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "test", rec["component"])
	assert.Equal(t, "req-7", rec["request_id"])
}

func TestNewLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandlerWithWriter(&buf, nil))

	h := NewLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http request", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, len("short and stout"), line["bytes"])
}
