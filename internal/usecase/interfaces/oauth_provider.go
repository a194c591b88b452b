package interfaces

import (
	"context"

	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
)

// GoogleProvider Google OAuth 연동 (인가 URL, 코드 교환, id_token 검증)
type GoogleProvider interface {
	// AuthCodeURL state가 포함된 동의 화면 URL
	AuthCodeURL(state string) string

	// Exchange 인가 코드를 교환하여 id_token을 반환합니다
	Exchange(ctx context.Context, code string) (string, error)

	// VerifyIDToken id_token 서명과 대상을 검증하고 프로필을 반환합니다
	VerifyIDToken(ctx context.Context, idToken string) (*dto.GoogleProfile, error)
}
