package http

import (
	"fmt"
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FileHandler 파일 업로드와 메타데이터 HTTP 핸들러
type FileHandler struct {
	fileUseCase interfaces.FileUseCase
	logger      *zap.Logger
}

// NewFileHandler creates a new FileHandler instance
func NewFileHandler(fileUseCase interfaces.FileUseCase, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
		logger:      logger,
	}
}

// Register 파일 라우트는 모두 관리자 전용입니다.
func (h *FileHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group("/files", superuser)
	r.POST("", h.Upload)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PATCH("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
}

// Upload handles POST /files
// 멀티파트 필드: files(하나 이상), model_name, model_id, file_name, label, description
func (h *FileHandler) Upload(c echo.Context) error {
	uploads, closeAll, err := formUploads(c, "files")
	defer closeAll()
	if err != nil {
		return err
	}

	files, err := h.fileUseCase.Upload(c.Request().Context(), dto.FileUploadParams{
		Files:       uploads,
		ModelName:   c.FormValue("model_name"),
		ModelID:     c.FormValue("model_id"),
		Name:        c.FormValue("file_name"),
		Label:       optionalForm(c, "label"),
		Description: optionalForm(c, "description"),
	})
	if err != nil {
		return err
	}

	h.logger.Info("파일 업로드 완료",
		zap.Int("count", len(files)),
		zap.String("model_name", c.FormValue("model_name")),
	)
	if len(files) == 1 {
		return respond(c, http.StatusCreated, "File created successfully", files[0])
	}
	return respond(c, http.StatusCreated, "Files uploaded successfully", files)
}

// List handles GET /files
func (h *FileHandler) List(c echo.Context) error {
	page, err := h.fileUseCase.List(c.Request().Context(), listQuery(c, entity.File{}.QuerySpec()))
	if err != nil {
		return err
	}
	return respondPage(c, "/files", page)
}

// Get handles GET /files/:id
func (h *FileHandler) Get(c echo.Context) error {
	file, err := h.fileUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Fetched file successfully", file)
}

// Update handles PATCH /files/:id
func (h *FileHandler) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	file, err := h.fileUseCase.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "File updated successfully", file)
}

// Delete handles DELETE /files/:id
func (h *FileHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.fileUseCase.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("Deleted %s successfully", id), nil)
}
