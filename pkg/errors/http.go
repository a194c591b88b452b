package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	return GetCodeMapping(code)
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		httpStatus := ToHTTPStatus(appErr.Code())
		// 5xx 응답에는 내부 에러 내용을 노출하지 않습니다
		if httpStatus >= http.StatusInternalServerError {
			return echo.NewHTTPError(httpStatus, http.StatusText(httpStatus)).SetInternal(err)
		}
		return echo.NewHTTPError(httpStatus, appErr.Message()).SetInternal(err)
	}

	// Echo 에러인 경우 그대로 반환
	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		return echoErr
	}

	// 기본 에러는 500으로 처리
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}

// FromHTTPError 라우터가 직접 만든 echo 에러(404, 405, 413 등)에 내부 코드를 붙입니다.
// AppError는 그대로 두고, 나머지는 ErrInternal로 감쌉니다.
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return NewAppError(httpStatusToCode(echoErr.Code), msg, echoErr.Internal)
	}

	return NewAppError(ErrInternal, http.StatusText(http.StatusInternalServerError), err)
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnsupportedMediaType:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case http.StatusConflict:
		return ErrConflict
	case http.StatusRequestEntityTooLarge:
		return ErrPayloadTooLarge
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	default:
		return ErrInternal
	}
}
