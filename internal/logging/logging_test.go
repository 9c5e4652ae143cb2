package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferedLogger(t *testing.T) (*logrus.Logger, *bytes.Buffer) {
	t.Helper()
	logger, err := SetupLogging("info")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	logger.Out = buf
	return logger, buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestSetupLogging(t *testing.T) {
	logger, err := SetupLogging("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.Level)

	_, err = SetupLogging("loud")
	assert.Error(t, err)
}

func TestLogData_Log(t *testing.T) {
	logger, buf := bufferedLogger(t)

	logData := NewLogData(logger)
	logData.AddData("accountNumber", "110-000001-01")
	endTimer := logData.AddTiming("duration")
	endTimer()
	logData.Log().Info("done")

	line := lastLine(t, buf)
	assert.Equal(t, "info", line["loglevel"])
	assert.Equal(t, "110-000001-01", line["accountNumber"])
	assert.Contains(t, line, "duration")
}

func TestGetLogData(t *testing.T) {
	logger, _ := bufferedLogger(t)
	logData := NewLogData(logger)

	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
	assert.NotNil(t, GetLogData(context.Background()))
}

func TestLoggingWrapper(t *testing.T) {
	logger, buf := bufferedLogger(t)

	ok := LoggingWrapper("ok", logger, func(w http.ResponseWriter, _ *http.Request, l *LogData) error {
		l.AddData("key", "value")
		w.WriteHeader(http.StatusNoContent)
		return nil
	})
	rec := httptest.NewRecorder()
	ok(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "Handler.ok.Complete", lastLine(t, buf)["msg"])

	failing := LoggingWrapper("failing", logger, func(http.ResponseWriter, *http.Request, *LogData) error {
		return errors.New("boom")
	})
	failing(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	line := lastLine(t, buf)
	assert.Equal(t, "Handler.failing.Error", line["msg"])
	assert.Equal(t, "boom", line["error"])
}
