package logger_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/joboy-dev/portfolio.api/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zapcore.ErrorLevel, logger.ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("unknown"))
}

func TestNewZapLoggerWithLevel_AtomicLevelChange(t *testing.T) {
	l, level, err := logger.NewZapLoggerWithLevel(logger.Config{Level: "error", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	level.SetLevel(zapcore.DebugLevel)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestWithEchoLogger_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"app not found", apperrors.RecordNotFound("skills"), http.StatusNotFound, "Record not found in table `skills`"},
		{"forbidden", apperrors.Forbidden("You do not have access to use this resource"), http.StatusForbidden, "You do not have access to use this resource"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "bad body"), http.StatusBadRequest, "bad body"},
		{"unhandled", stderrors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			logger.WithEchoLogger(e, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/skills/x", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			e.HTTPErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, float64(tt.wantStatus), body["status_code"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestWithEchoLogger_RouteErrorsCarryCode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := echo.New()
	logger.WithEchoLogger(e, zap.New(core))
	e.GET("/api/v1/skills", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/skills", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	entries := logs.FilterMessage("HTTP error").All()
	require.Len(t, entries, 2)
	assert.Equal(t, apperrors.ErrNotFound, entries[0].ContextMap()["error_code"])
	assert.Equal(t, apperrors.ErrMethodNotAllowed, entries[1].ContextMap()["error_code"])
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestGormLogger_Trace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	gl := logger.NewGormLogger(zap.New(core), gormlogger.Warn, 10*time.Millisecond, true)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	// Record not found is ignored
	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	// Other errors are logged
	gl.Trace(context.Background(), time.Now(), sql, stderrors.New("syntax error"))
	assert.Equal(t, 1, logs.FilterMessage("GORM Trace Error").Len())

	// Slow query
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("GORM Slow Query").Len())

	// Fast query below Info level is not logged
	gl.Trace(context.Background(), time.Now(), sql, nil)
	assert.Equal(t, 2, logs.Len())

	// LogMode returns a copy
	info := gl.LogMode(gormlogger.Info)
	info.Trace(context.Background(), time.Now(), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("GORM Query").Len())
	assert.Equal(t, gormlogger.Warn, gl.LogLevel)
}
