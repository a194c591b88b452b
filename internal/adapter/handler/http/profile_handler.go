package http

import (
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProfileHandler 단일 프로필 HTTP 핸들러
type ProfileHandler struct {
	profileUseCase interfaces.ProfileUseCase
	logger         *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler instance
func NewProfileHandler(profileUseCase interfaces.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// Register 프로필 라우트 등록
func (h *ProfileHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group("/profile")
	r.POST("", h.Create, superuser)
	r.GET("", h.Get)
	r.PATCH("", h.Update, superuser)
	r.DELETE("", h.Delete, superuser)
	r.POST("/image", h.UploadImage, superuser)
}

// Create handles POST /profile
func (h *ProfileHandler) Create(c echo.Context) error {
	var profile entity.Profile
	if err := bindValid(c, &profile); err != nil {
		return err
	}
	profile.Record = entity.Record{}

	view, err := h.profileUseCase.Create(c.Request().Context(), &profile)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Profile created successfully", view)
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c echo.Context) error {
	view, err := h.profileUseCase.Get(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Fetched profile successfully", view)
}

// Update handles PATCH /profile
func (h *ProfileHandler) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	view, err := h.profileUseCase.Update(c.Request().Context(), fields)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Profile updated successfully", view)
}

// Delete handles DELETE /profile
func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.profileUseCase.Delete(c.Request().Context()); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}

// UploadImage handles POST /profile/image (multipart 필드 file)
func (h *ProfileHandler) UploadImage(c echo.Context) error {
	uploads, closeAll, err := formUploads(c, "file")
	defer closeAll()
	if err != nil {
		return err
	}

	view, err := h.profileUseCase.UploadImage(c.Request().Context(), uploads[0])
	if err != nil {
		return err
	}

	h.logger.Info("프로필 이미지 변경", zap.String("image_url", view.ImageURL))
	return respond(c, http.StatusOK, "Profile image uploaded successfully", view)
}
