package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToHTTPError_Taxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", apperrors.RecordNotFound("projects"), http.StatusNotFound, "Record not found in table `projects`"},
		{"validation", apperrors.Validation("email already exists"), http.StatusBadRequest, "email already exists"},
		{"invalid credentials", apperrors.InvalidCredentials(), http.StatusBadRequest, "Invalid user credentials"},
		{"account inactive", apperrors.AccountInactive(), http.StatusBadRequest, "Account is inactive"},
		{"no password", apperrors.NoPasswordSet(), http.StatusBadRequest, apperrors.NoPasswordSet().Message()},
		{"upload rejected", apperrors.UploadRejected("File is empty"), http.StatusBadRequest, "File is empty"},
		{"invalid token", apperrors.InvalidToken("Invalid token", stderrors.New("expired")), http.StatusUnauthorized, "Invalid token"},
		{"forbidden", apperrors.Forbidden("nope"), http.StatusForbidden, "nope"},
		{"plain error hides details", stderrors.New("db exploded"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := apperrors.ToHTTPError(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestWrap_KeepsCode(t *testing.T) {
	base := apperrors.RecordNotFound("users")
	wrapped := fmt.Errorf("lookup: %w", apperrors.Wrap(base, "사용자 조회 실패"))

	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(wrapped))
	assert.True(t, apperrors.HasCode(wrapped, apperrors.ErrNotFound))
	assert.False(t, apperrors.HasCode(nil, apperrors.ErrNotFound))
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(stderrors.New("x")))
}

func TestFromHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"forbidden", echo.NewHTTPError(http.StatusForbidden, "denied"), apperrors.ErrUnauthorized},
		{"unknown route", echo.ErrNotFound, apperrors.ErrNotFound},
		{"wrong method", echo.ErrMethodNotAllowed, apperrors.ErrMethodNotAllowed},
		{"body too large", echo.ErrStatusRequestEntityTooLarge, apperrors.ErrPayloadTooLarge},
		{"app error kept", apperrors.Validation("bad"), apperrors.ErrInvalidArgument},
		{"plain error", stderrors.New("db exploded"), apperrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(apperrors.FromHTTPError(tt.err)))
		})
	}

	assert.Equal(t, "denied", apperrors.FromHTTPError(echo.NewHTTPError(http.StatusForbidden, "denied")).Error())
	assert.Nil(t, apperrors.FromHTTPError(nil))
}

func TestLogError_LevelAndCode(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	apperrors.LogError(logger, echo.ErrMethodNotAllowed, "HTTP error", zap.String("path", "/api/v1/skills"))
	apperrors.LogError(logger, stderrors.New("db exploded"), "HTTP error")
	apperrors.LogError(logger, nil, "HTTP error")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, apperrors.ErrMethodNotAllowed, fields["error_code"])
	assert.Equal(t, int64(http.StatusMethodNotAllowed), fields["status"])
	assert.Equal(t, "/api/v1/skills", fields["path"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, apperrors.ErrInternal, entries[1].ContextMap()["error_code"])
}
