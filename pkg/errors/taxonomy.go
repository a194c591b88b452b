package errors

import "fmt"

// NotFound 레코드 조회 실패
func NotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

// RecordNotFound 테이블 이름을 포함한 조회 실패 에러
func RecordNotFound(table string) *AppError {
	return NotFound(fmt.Sprintf("Record not found in table `%s`", table))
}

// Validation 입력값 또는 유일성 제약 위반
func Validation(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

// InvalidCredentials 잘못된 로그인 정보
func InvalidCredentials() *AppError {
	return NewAppError(ErrInvalidCredentials, "Invalid user credentials", nil)
}

// AccountInactive 비활성화된 계정
func AccountInactive() *AppError {
	return NewAppError(ErrAccountInactive, "Account is inactive", nil)
}

// NoPasswordSet 비밀번호가 없는 계정
func NoPasswordSet() *AppError {
	return NewAppError(ErrNoPasswordSet,
		"You do not have a password. Try magic login or another available authentication method", nil)
}

// InvalidToken 서명, 만료, 타입, 블랙리스트 검증 실패
func InvalidToken(message string, err error) *AppError {
	return NewAppError(ErrUnauthenticated, message, err)
}

// Forbidden 권한 부족
func Forbidden(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, nil)
}

// UploadRejected 허용되지 않은 파일 업로드
func UploadRejected(message string) *AppError {
	return NewAppError(ErrUploadRejected, message, nil)
}
