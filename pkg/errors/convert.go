package errors

// 코드 매핑 테이블 (에러 코드 -> HTTP 상태 코드)
var codeMapping = map[string]int{
	ErrInternal:           500,
	ErrNotFound:           404,
	ErrInvalidArgument:    400,
	ErrUnauthenticated:    401,
	ErrUnauthorized:       403,
	ErrConflict:           409,
	ErrTimeout:            504,
	ErrNotImplemented:     501,
	ErrMethodNotAllowed:   405,
	ErrPayloadTooLarge:    413,
	ErrInvalidCredentials: 400,
	ErrAccountInactive:    400,
	ErrNoPasswordSet:      400,
	ErrUploadRejected:     400,
}

// GetCodeMapping은 특정 에러 코드에 대한 HTTP 상태 코드를 반환합니다
func GetCodeMapping(code string) int {
	if status, ok := codeMapping[code]; ok {
		return status
	}
	return 500 // 기본값으로 Internal Server Error
}
