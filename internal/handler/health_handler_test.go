package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Health(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	t.Run("healthy database reports ok", func(t *testing.T) {
		h := NewHealthHandler(stubHealthChecker{})

		rec := httptest.NewRecorder()
		h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "up", body["database"])
	})

	t.Run("unreachable database reports 503", func(t *testing.T) {
		h := NewHealthHandler(stubHealthChecker{err: errors.New("connection refused")})

		rec := httptest.NewRecorder()
		h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body["status"])
	})
}
