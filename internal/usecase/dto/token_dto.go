package dto

import (
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
)

// TokenClaims 검증된 토큰의 클레임
type TokenClaims struct {
	UserID    string
	Type      entity.TokenType
	ID        string
	ExpiresAt time.Time
	// Extra user_id, type, exp, jti를 제외한 추가 클레임
	Extra map[string]interface{}
}
