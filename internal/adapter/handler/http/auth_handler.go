package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RefreshCookie 리프레시 토큰 쿠키 이름
const RefreshCookie = "refresh_token"

// AuthHandlerConfig 인증 핸들러 설정
type AuthHandlerConfig struct {
	// Debug 켜져 있으면 메일로 보내는 일회용 토큰을 응답에도 포함합니다
	Debug              bool
	RefreshTokenExpiry time.Duration
	CookieDomain       string
	// FrontendRedirectURL 설정 시 Google 콜백은 JSON 대신 이 주소로 리다이렉트합니다
	FrontendRedirectURL string
}

// AuthHandler 인증 HTTP 핸들러
type AuthHandler struct {
	authUseCase  interfaces.AuthUseCase
	oauthUseCase interfaces.OAuthUseCase
	config       AuthHandlerConfig
	logger       *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(
	authUseCase interfaces.AuthUseCase,
	oauthUseCase interfaces.OAuthUseCase,
	config AuthHandlerConfig,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase:  authUseCase,
		oauthUseCase: oauthUseCase,
		config:       config,
		logger:       logger,
	}
}

// RegisterRequest 회원가입 요청
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailRequest 매직 링크, 비밀번호 재설정, 재활성화 요청
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordRequest 새 비밀번호
type PasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

// GoogleIDTokenRequest 클라이언트에서 받은 Google id_token
type GoogleIDTokenRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshRequest 쿠키가 없을 때 본문으로 받는 리프레시 토큰
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse 토큰 쌍과 사용자
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user,omitempty"`
}

// TokenResponse 디버그 모드에서만 채워지는 일회용 토큰
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register 인증 라우트 등록
func (h *AuthHandler) Register(g *echo.Group, auth echo.MiddlewareFunc) {
	r := g.Group("/auth")
	r.POST("/register", h.SignUp)
	r.POST("/login", h.Login)
	r.POST("/magic", h.RequestMagicLink)
	r.POST("/magic/verify", h.VerifyMagicLink)
	r.GET("/google/initiate", h.GoogleInitiate)
	r.GET("/google/callback", h.GoogleCallback)
	r.POST("/google", h.GoogleIDToken)
	r.POST("/password-reset/request", h.RequestPasswordReset)
	r.POST("/password-reset", h.ResetPassword)
	r.GET("/refresh-access-token", h.Refresh)
	r.POST("/refresh-access-token", h.Refresh)
	r.POST("/logout", h.Logout, auth)
}

// SignUp handles POST /auth/register
// @Summary 회원가입
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} Response
// @Failure 400 {object} Response
// @Router /auth/register [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	var req RegisterRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	result, err := h.authUseCase.Register(c.Request().Context(), dto.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	h.logger.Info("회원가입 완료", zap.String("user_id", result.User.ID))
	return h.respondAuth(c, http.StatusCreated, "Signed up successfully", result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	result, err := h.authUseCase.Login(c.Request().Context(), dto.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return h.respondAuth(c, http.StatusOK, "Logged in successfully", result)
}

// RequestMagicLink handles POST /auth/magic
func (h *AuthHandler) RequestMagicLink(c echo.Context) error {
	var req EmailRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	issued, err := h.authUseCase.RequestMagicLink(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Magic link sent successfully", h.issuedToken(issued))
}

// VerifyMagicLink handles POST /auth/magic/verify?token=
func (h *AuthHandler) VerifyMagicLink(c echo.Context) error {
	result, err := h.authUseCase.VerifyMagicLink(c.Request().Context(), c.QueryParam("token"))
	if err != nil {
		return err
	}
	return h.respondAuth(c, http.StatusOK, "Logged in successfully", result)
}

// GoogleInitiate handles GET /auth/google/initiate
// state는 Redis와 브라우저 세션 양쪽에 기록됩니다.
func (h *AuthHandler) GoogleInitiate(c echo.Context) error {
	authURL, state, err := h.oauthUseCase.AuthCodeURL(c.Request().Context())
	if err != nil {
		return err
	}
	if err := middleware.SaveOAuthState(c, state); err != nil {
		h.logger.Warn("OAuth state 세션 저장 실패", zap.Error(err))
	}
	return c.Redirect(http.StatusFound, authURL)
}

// GoogleCallback handles GET /auth/google/callback?code=&state=
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	state := c.QueryParam("state")
	if sessionState := middleware.PopOAuthState(c); sessionState != "" && sessionState != state {
		h.logger.Warn("OAuth state 불일치", zap.String("ip", c.RealIP()))
		return apperrors.Validation("Invalid OAuth state")
	}

	result, err := h.oauthUseCase.Callback(c.Request().Context(), c.QueryParam("code"), state)
	if err != nil {
		return err
	}

	if h.config.FrontendRedirectURL == "" {
		return h.respondAuth(c, http.StatusOK, "Logged in successfully", result)
	}

	target, err := url.Parse(h.config.FrontendRedirectURL)
	if err != nil {
		return apperrors.Wrap(err, "invalid frontend redirect url")
	}
	q := target.Query()
	q.Set("access_token", result.Tokens.AccessToken)
	target.RawQuery = q.Encode()

	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return c.Redirect(http.StatusFound, target.String())
}

// GoogleIDToken handles POST /auth/google
func (h *AuthHandler) GoogleIDToken(c echo.Context) error {
	var req GoogleIDTokenRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	result, err := h.oauthUseCase.LoginWithIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return h.respondAuth(c, http.StatusOK, "Logged in successfully", result)
}

// RequestPasswordReset handles POST /auth/password-reset/request
func (h *AuthHandler) RequestPasswordReset(c echo.Context) error {
	var req EmailRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	issued, err := h.authUseCase.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset link sent successfully", h.issuedToken(issued))
}

// ResetPassword handles POST /auth/password-reset?token=
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req PasswordRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.authUseCase.ResetPassword(c.Request().Context(), c.QueryParam("token"), req.Password); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Password reset successful", nil)
}

// Refresh handles GET|POST /auth/refresh-access-token
// 쿠키를 우선 사용하고, 없으면 본문의 refresh_token을 사용합니다.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(RefreshCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" && c.Request().Method == http.MethodPost {
		var req RefreshRequest
		if err := c.Bind(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return apperrors.InvalidToken(constants.MsgCredentials, nil)
	}

	tokens, err := h.authUseCase.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return err
	}

	h.setRefreshCookie(c, tokens.RefreshToken)
	return respond(c, http.StatusOK, "Access token refreshed successfully", AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.authUseCase.Logout(c.Request().Context(), user); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/",
		Domain:   h.config.CookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	return respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) respondAuth(c echo.Context, status int, message string, result *dto.AuthResult) error {
	h.setRefreshCookie(c, result.Tokens.RefreshToken)
	return respond(c, status, message, AuthResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		User:         result.User,
	})
}

func (h *AuthHandler) setRefreshCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.config.CookieDomain,
		Expires:  time.Now().Add(h.config.RefreshTokenExpiry),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// issuedToken 디버그 모드가 아니면 nil
func (h *AuthHandler) issuedToken(issued *dto.IssuedToken) interface{} {
	if !h.config.Debug || issued == nil {
		return nil
	}
	return TokenResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt}
}
