package http

import (
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler 사용자 HTTP 핸들러
type UserHandler struct {
	userUseCase interfaces.UserUseCase
	debug       bool
	logger      *zap.Logger
}

// NewUserHandler debug가 켜져 있으면 재활성화 토큰을 응답에 포함합니다.
func NewUserHandler(userUseCase interfaces.UserUseCase, debug bool, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		debug:       debug,
		logger:      logger,
	}
}

// UpdateMeRequest 내 정보 수정 요청
type UpdateMeRequest struct {
	Email          *string `json:"email" validate:"omitempty,email"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	ProfilePicture *string `json:"profile_picture"`
	OldPassword    *string `json:"old_password"`
	Password       *string `json:"password"`
}

// Register 사용자 라우트 등록
func (h *UserHandler) Register(g *echo.Group, auth, superuser echo.MiddlewareFunc) {
	r := g.Group("/users")
	r.GET("", h.List, superuser)
	r.GET("/me", h.Me, auth)
	r.PATCH("/me", h.UpdateMe, auth)
	r.POST("/deactivate-account", h.Deactivate, auth)
	r.POST("/reactivate-account/request", h.RequestReactivation)
	r.GET("/reactivate-account", h.Reactivate)
	r.DELETE("/delete-account", h.DeleteAccount, auth)
	r.GET("/:id", h.Get, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// List handles GET /users
func (h *UserHandler) List(c echo.Context) error {
	page, err := h.userUseCase.List(c.Request().Context(), listQuery(c, entity.User{}.QuerySpec()))
	if err != nil {
		return err
	}
	return respondPage(c, "/users", page)
}

// Me handles GET /users/me
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", user)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User fetched successfully", user)
}

// UpdateMe handles PATCH /users/me
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateMeRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	updated, err := h.userUseCase.UpdateMe(c.Request().Context(), user, dto.UpdateMeParams{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		ProfilePicture: req.ProfilePicture,
		OldPassword:    req.OldPassword,
		Password:       req.Password,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Details updated successfully", updated)
}

// Deactivate handles POST /users/deactivate-account
func (h *UserHandler) Deactivate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.userUseCase.Deactivate(c.Request().Context(), user); err != nil {
		return err
	}

	h.logger.Info("계정 비활성화", zap.String("user_id", user.ID))
	return respond(c, http.StatusOK, "Account deactivated", nil)
}

// RequestReactivation handles POST /users/reactivate-account/request
func (h *UserHandler) RequestReactivation(c echo.Context) error {
	var req EmailRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	issued, err := h.userUseCase.RequestReactivation(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	var data interface{}
	if h.debug && issued != nil {
		data = TokenResponse{Token: issued.Token, ExpiresAt: issued.ExpiresAt}
	}
	return respond(c, http.StatusOK, "Account reactivation token sent", data)
}

// Reactivate handles GET /users/reactivate-account?token=
func (h *UserHandler) Reactivate(c echo.Context) error {
	if _, err := h.userUseCase.Reactivate(c.Request().Context(), c.QueryParam("token")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Account reactivated successfully", nil)
}

// DeleteAccount handles DELETE /users/delete-account
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.userUseCase.DeleteAccount(c.Request().Context(), user); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Account deleted", nil)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User deleted", nil)
}

func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperrors.InvalidToken(constants.MsgCredentials, nil)
	}
	return user, nil
}
