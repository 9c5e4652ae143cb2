package status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/withgossing/bank-app/internal/logging"
)

type stubPinger struct {
	err   error
	calls int
}

func (s *stubPinger) Ping(ctx context.Context) error {
	s.calls++
	return s.err
}

func createTestLogData(t *testing.T) *logging.LogData {
	t.Helper()
	logger, err := logging.SetupLogging("info")
	require.NoError(t, err)
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	store := &stubPinger{}
	statusHandler := NewHandler(store)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData(t))
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, 1, store.calls)
}

func TestHandler_BadMethod(t *testing.T) {
	store := &stubPinger{}
	statusHandler := NewHandler(store)
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData(t))
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
	assert.Zero(t, store.calls)
}

func TestHandler_StorageDown(t *testing.T) {
	statusHandler := NewHandler(&stubPinger{err: errors.New("connection refused")})
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData(t))
	assert.ErrorContains(t, err, "connection refused")

	res := w.Result()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}
