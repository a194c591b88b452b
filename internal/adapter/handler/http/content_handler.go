package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// model 핸들러가 다루는 엔티티 제약
type model[T any] interface {
	*T
	entity.Model
}

// ContentHandler 위치 순서를 갖는 콘텐츠 리소스의 공통 CRUD 핸들러
// (skills, experiences, education, awards, certifications, services)
type ContentHandler[T any, PT model[T]] struct {
	useCase  interfaces.ContentUseCase[T]
	label    string
	endpoint string
	logger   *zap.Logger
}

// NewContentHandler label은 응답 메시지에 쓰는 단수 이름입니다 (예: Skill).
func NewContentHandler[T any, PT model[T]](
	useCase interfaces.ContentUseCase[T],
	label string,
	endpoint string,
	logger *zap.Logger,
) *ContentHandler[T, PT] {
	return &ContentHandler[T, PT]{
		useCase:  useCase,
		label:    label,
		endpoint: endpoint,
		logger:   logger,
	}
}

// Register 읽기는 공개, 쓰기는 관리자 전용
func (h *ContentHandler[T, PT]) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group(h.endpoint)
	r.POST("", h.Create, superuser)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PATCH("/:id", h.Update, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// Create handles POST /{resource}
func (h *ContentHandler[T, PT]) Create(c echo.Context) error {
	record := new(T)
	if err := bindValid(c, record); err != nil {
		return err
	}
	*PT(record).Base() = entity.Record{}

	created, err := h.useCase.Create(c.Request().Context(), record)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, fmt.Sprintf("%s created successfully", h.label), created)
}

// List handles GET /{resource}
func (h *ContentHandler[T, PT]) List(c echo.Context) error {
	page, err := h.useCase.List(c.Request().Context(), listQuery(c, PT(new(T)).QuerySpec()))
	if err != nil {
		return err
	}
	return respondPage(c, h.endpoint, page)
}

// Get handles GET /{resource}/:id (id, unique_id 또는 slug)
func (h *ContentHandler[T, PT]) Get(c echo.Context) error {
	record, err := h.useCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("Fetched %s successfully", strings.ToLower(h.label)), record)
}

// Update handles PATCH /{resource}/:id
func (h *ContentHandler[T, PT]) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	updated, err := h.useCase.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("%s updated successfully", h.label), updated)
}

// Delete handles DELETE /{resource}/:id
func (h *ContentHandler[T, PT]) Delete(c echo.Context) error {
	if err := h.useCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}
