package errors

// 공통 에러 코드 정의
const (
	// 일반적인 에러 코드
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"

	// 라우팅/요청 본문 에러 코드
	ErrMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrPayloadTooLarge  = "PAYLOAD_TOO_LARGE"

	// 인증/업로드 도메인 에러 코드
	ErrInvalidCredentials = "INVALID_CREDENTIALS"
	ErrAccountInactive    = "ACCOUNT_INACTIVE"
	ErrNoPasswordSet      = "NO_PASSWORD_SET"
	ErrUploadRejected     = "UPLOAD_REJECTED"
)
