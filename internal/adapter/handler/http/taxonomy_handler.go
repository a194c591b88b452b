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

// TaxonomyRequest 태그 또는 카테고리 생성 요청
type TaxonomyRequest struct {
	Name        string  `json:"name" validate:"required"`
	ModelType   string  `json:"model_type" validate:"required"`
	Description *string `json:"description"`
}

// TaxonomyUpdateRequest 부분 수정 요청
type TaxonomyUpdateRequest struct {
	Name        *string `json:"name"`
	ModelType   *string `json:"model_type"`
	Description *string `json:"description"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
}

// AttachRequest 연결/해제 요청. ids에는 식별자 또는 이름을 섞어 보낼 수 있습니다.
type AttachRequest struct {
	TagIDs      []string `json:"tag_ids"`
	CategoryIDs []string `json:"category_ids"`
	EntityID    string   `json:"entity_id" validate:"required"`
	ModelType   string   `json:"model_type" validate:"required"`
}

func (r AttachRequest) ids() []string {
	return append(append([]string{}, r.TagIDs...), r.CategoryIDs...)
}

// TaxonomyHandler 태그와 카테고리가 공유하는 HTTP 핸들러
type TaxonomyHandler struct {
	useCase  interfaces.TaxonomyUseCase
	spec     entity.QuerySpec
	endpoint string
	label    string
	// attachLabel 연결 응답 메시지의 주어 (Tag(s), Categories)
	attachLabel string
	logger      *zap.Logger
}

// NewTagHandler /tags 핸들러
func NewTagHandler(useCase interfaces.TaxonomyUseCase, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		useCase:     useCase,
		spec:        entity.Tag{}.QuerySpec(),
		endpoint:    "/tags",
		label:       "Tag",
		attachLabel: "Tag(s)",
		logger:      logger,
	}
}

// NewCategoryHandler /categories 핸들러
func NewCategoryHandler(useCase interfaces.TaxonomyUseCase, logger *zap.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{
		useCase:     useCase,
		spec:        entity.Category{}.QuerySpec(),
		endpoint:    "/categories",
		label:       "Category",
		attachLabel: "Categories",
		logger:      logger,
	}
}

// Register 모든 라우트가 관리자 전용입니다.
func (h *TaxonomyHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group(h.endpoint, superuser)
	r.POST("", h.Create)
	r.GET("", h.List)
	r.POST("/attach", h.Attach)
	r.POST("/detatch", h.Detach)
	r.GET("/:id", h.Get)
	r.PATCH("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
}

// Create handles POST /tags, POST /categories
func (h *TaxonomyHandler) Create(c echo.Context) error {
	var req TaxonomyRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := h.useCase.Create(c.Request().Context(), dto.TaxonomyInput{
		Name:        req.Name,
		ModelType:   req.ModelType,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, fmt.Sprintf("%s created successfully", h.label), item)
}

func (h *TaxonomyHandler) List(c echo.Context) error {
	page, err := h.useCase.List(c.Request().Context(), listQuery(c, h.spec))
	if err != nil {
		return err
	}
	return respondPage(c, h.endpoint, page)
}

func (h *TaxonomyHandler) Get(c echo.Context) error {
	item, err := h.useCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("Fetched %s successfully", h.endpoint[1:]), item)
}

func (h *TaxonomyHandler) Update(c echo.Context) error {
	var req TaxonomyUpdateRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	item, err := h.useCase.Update(c.Request().Context(), c.Param("id"), dto.TaxonomyUpdate{
		Name:        req.Name,
		ModelType:   req.ModelType,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("%s updated successfully", h.label), item)
}

func (h *TaxonomyHandler) Delete(c echo.Context) error {
	if err := h.useCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}

// Attach handles POST {endpoint}/attach
func (h *TaxonomyHandler) Attach(c echo.Context) error {
	var req AttachRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.useCase.Attach(c.Request().Context(), req.ids(), req.ModelType, req.EntityID); err != nil {
		return err
	}

	h.logger.Info("연결 완료",
		zap.String("kind", h.endpoint[1:]),
		zap.String("model_type", req.ModelType),
		zap.String("entity_id", req.EntityID),
	)
	return respond(c, http.StatusOK, fmt.Sprintf("%s attached to entity successfully", h.attachLabel), nil)
}

// Detach handles POST {endpoint}/detatch
func (h *TaxonomyHandler) Detach(c echo.Context) error {
	var req AttachRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if err := h.useCase.Detach(c.Request().Context(), req.ids(), req.ModelType, req.EntityID); err != nil {
		return err
	}
	return respond(c, http.StatusOK, fmt.Sprintf("%s detatched from entity successfully", h.attachLabel), nil)
}
