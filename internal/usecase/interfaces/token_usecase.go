package interfaces

import (
	"context"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
)

// TokenUseCase 토큰 수명 주기 유스케이스 인터페이스
type TokenUseCase interface {
	// Issue 같은 사용자와 유형의 기존 토큰을 폐기한 뒤 새 토큰을 발급합니다
	Issue(ctx context.Context, tokenType entity.TokenType, userID string, ttl time.Duration, extra map[string]interface{}) (*dto.IssuedToken, error)

	// Verify 서명, 만료, 블랙리스트, 유형을 검증합니다. failure는 일반 실패 시 응답 메시지입니다
	Verify(ctx context.Context, token string, expected entity.TokenType, failure string) (*dto.TokenClaims, error)

	// VerifyAnonymous user_id 없이 발급된 토큰도 허용합니다
	VerifyAnonymous(ctx context.Context, token string, expected entity.TokenType, failure string) (*dto.TokenClaims, error)

	// Revoke 토큰을 블랙리스트에 추가하고 유효 토큰 행을 삭제합니다
	Revoke(ctx context.Context, token, userID string) error

	// IssuePair 액세스 토큰과 리프레시 토큰을 함께 발급합니다
	IssuePair(ctx context.Context, userID string) (*dto.AuthTokens, error)

	// Refresh 리프레시 토큰을 검증하고 두 토큰을 모두 교체합니다
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, string, error)

	// Logout 사용자의 유효한 액세스/리프레시 토큰을 폐기합니다
	Logout(ctx context.Context, userID string) error

	// TTL 토큰 유형별 유효 기간
	TTL(tokenType entity.TokenType) time.Duration
}
