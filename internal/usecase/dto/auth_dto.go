package dto

import (
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
)

// RegisterParams 회원가입 매개변수
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginParams 로그인 매개변수
type LoginParams struct {
	Email    string
	Password string
}

// AuthTokens 액세스 토큰과 리프레시 토큰 쌍
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// AuthResult 인증 성공 결과
type AuthResult struct {
	Tokens *AuthTokens
	User   *entity.User
}

// IssuedToken 이메일로 전달되는 일회용 토큰 발급 결과
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// UpdateMeParams 내 정보 수정 매개변수. nil 필드는 변경하지 않습니다.
type UpdateMeParams struct {
	Email          *string
	FirstName      *string
	LastName       *string
	ProfilePicture *string
	OldPassword    *string
	Password       *string
}

// GoogleProfile Google id_token에서 읽은 사용자 정보
type GoogleProfile struct {
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}
