package middleware

import (
	"strings"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 컨텍스트 키 상수
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// JWTAuthMiddleware는 Bearer 액세스 토큰 인증을 처리하는 미들웨어입니다.
// 토큰 검증과 사용자 조회는 AuthUseCase에 위임합니다.
type JWTAuthMiddleware struct {
	authUseCase interfaces.AuthUseCase
	logger      *zap.Logger
}

// NewJWTAuthMiddleware는 새로운 JWT 인증 미들웨어를 생성합니다.
func NewJWTAuthMiddleware(authUseCase interfaces.AuthUseCase, logger *zap.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// Handle는 토큰이 없거나 유효하지 않으면 401을 반환합니다.
func (m *JWTAuthMiddleware) Handle() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.authenticate(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// Optional는 유효한 토큰이 있을 때만 사용자를 설정하고, 실패해도 요청을 계속 처리합니다.
func (m *JWTAuthMiddleware) Optional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if bearerToken(c) != "" {
				_ = m.authenticate(c)
			}
			return next(c)
		}
	}
}

// Superuser는 인증 후 관리자 권한을 확인합니다.
func (m *JWTAuthMiddleware) Superuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := m.authenticate(c); err != nil {
				return err
			}
			user, _ := CurrentUser(c)
			if err := m.authUseCase.RequireSuperuser(user); err != nil {
				m.logger.Warn("관리자 권한 없음",
					zap.String("user_id", user.ID),
					zap.String("path", c.Request().URL.Path),
				)
				return err
			}
			return next(c)
		}
	}
}

func (m *JWTAuthMiddleware) authenticate(c echo.Context) error {
	// 1. 요청 헤더에서 토큰 추출
	accessToken := bearerToken(c)
	if accessToken == "" {
		return apperrors.InvalidToken(constants.MsgCredentials, nil)
	}

	// 2. 토큰 검증 및 사용자 조회
	user, err := m.authUseCase.CurrentUser(c.Request().Context(), accessToken)
	if err != nil {
		m.logger.Info("인증 실패",
			zap.String("error", err.Error()),
			zap.String("ip", c.RealIP()),
			zap.String("path", c.Request().URL.Path),
		)
		return err
	}

	// 3. 검증된 사용자 정보를 컨텍스트에 저장
	c.Set(UserIDKey, user.ID)
	c.Set(UserKey, user)
	return nil
}

// bearerToken Authorization 헤더의 Bearer 토큰. 형식이 다르면 빈 문자열
func bearerToken(c echo.Context) string {
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser 인증 미들웨어가 설정한 사용자
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(UserKey).(*entity.User)
	return user, ok && user != nil
}

// IsSuperuser 현재 요청이 관리자 요청인지 여부
func IsSuperuser(c echo.Context) bool {
	user, ok := CurrentUser(c)
	return ok && user.IsSuperuser
}
