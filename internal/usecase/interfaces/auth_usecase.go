package interfaces

import (
	"context"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
)

// AuthUseCase 인증 관련 유스케이스 인터페이스
type AuthUseCase interface {
	// Register 사용자 회원가입 후 토큰 쌍 발급
	Register(ctx context.Context, params dto.RegisterParams) (*dto.AuthResult, error)

	// Login 이메일과 비밀번호로 로그인
	Login(ctx context.Context, params dto.LoginParams) (*dto.AuthResult, error)

	// RequestMagicLink 매직 링크 토큰 발급 및 메일 발송
	RequestMagicLink(ctx context.Context, email string) (*dto.IssuedToken, error)

	// VerifyMagicLink 매직 링크 토큰으로 로그인
	VerifyMagicLink(ctx context.Context, token string) (*dto.AuthResult, error)

	// RequestPasswordReset 비밀번호 재설정 토큰 발급 및 메일 발송
	RequestPasswordReset(ctx context.Context, email string) (*dto.IssuedToken, error)

	// ResetPassword 재설정 토큰으로 비밀번호 변경
	ResetPassword(ctx context.Context, token, password string) error

	// Refresh 토큰 쌍 갱신
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, error)

	// Logout 로그아웃
	Logout(ctx context.Context, user *entity.User) error

	// CurrentUser 액세스 토큰의 사용자 조회
	CurrentUser(ctx context.Context, accessToken string) (*entity.User, error)

	// RequireSuperuser 관리자 권한 확인
	RequireSuperuser(user *entity.User) error

	// LoginUser 검증이 끝난 사용자의 마지막 로그인 시간을 갱신하고 토큰 쌍을 발급합니다
	LoginUser(ctx context.Context, user *entity.User) (*dto.AuthResult, error)
}

// OAuthUseCase Google 로그인 유스케이스 인터페이스
type OAuthUseCase interface {
	// AuthCodeURL state를 저장하고 Google 동의 화면 URL을 반환합니다
	AuthCodeURL(ctx context.Context) (url string, state string, err error)

	// Callback 인가 코드를 교환하고 로그인합니다
	Callback(ctx context.Context, code, state string) (*dto.AuthResult, error)

	// LoginWithIDToken 클라이언트가 받은 id_token으로 로그인합니다
	LoginWithIDToken(ctx context.Context, idToken string) (*dto.AuthResult, error)
}

// UserUseCase 사용자 관리 유스케이스 인터페이스
type UserUseCase interface {
	List(ctx context.Context, query dto.ListQuery) (*dto.Page[entity.User], error)
	Get(ctx context.Context, id string) (*entity.User, error)

	// UpdateMe 이메일, 이름, 비밀번호 변경
	UpdateMe(ctx context.Context, user *entity.User, params dto.UpdateMeParams) (*entity.User, error)

	// Deactivate 계정 비활성화 후 토큰 폐기
	Deactivate(ctx context.Context, user *entity.User) error

	// RequestReactivation 재활성화 토큰 발급 및 메일 발송
	RequestReactivation(ctx context.Context, email string) (*dto.IssuedToken, error)

	// Reactivate 재활성화 토큰으로 계정 활성화
	Reactivate(ctx context.Context, token string) (*entity.User, error)

	// DeleteAccount 본인 계정 소프트 삭제
	DeleteAccount(ctx context.Context, user *entity.User) error

	// Delete 관리자의 사용자 삭제
	Delete(ctx context.Context, id string) error

	// EnsureSuperuser 관리자 계정을 생성하거나 기존 계정을 승격합니다
	EnsureSuperuser(ctx context.Context, email, password string) (*entity.User, error)
}
