package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// LogError 응답 상태와 에러 코드를 붙여 기록합니다. 5xx만 Error 레벨이고
// 클라이언트 에러는 Debug 레벨로 남깁니다.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	status := ToHTTPError(err).Code
	all := make([]zap.Field, 0, len(fields)+3)
	all = append(all,
		zap.Error(err),
		zap.Int("status", status),
		zap.String("error_code", CodeOf(FromHTTPError(err))),
	)
	all = append(all, fields...)

	if status >= http.StatusInternalServerError {
		logger.Error(msg, all...)
		return
	}
	logger.Debug(msg, all...)
}
