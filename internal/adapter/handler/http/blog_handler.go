package http

import (
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BlogHandler 블로그 HTTP 핸들러
type BlogHandler struct {
	blogUseCase interfaces.BlogUseCase
	logger      *zap.Logger
}

// NewBlogHandler creates a new BlogHandler instance
func NewBlogHandler(blogUseCase interfaces.BlogUseCase, logger *zap.Logger) *BlogHandler {
	return &BlogHandler{
		blogUseCase: blogUseCase,
		logger:      logger,
	}
}

// CreateBlogRequest 블로그 생성 요청
type CreateBlogRequest struct {
	entity.Blog
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
}

// Register 블로그 라우트 등록. 목록과 조회는 관리자가 아니면 게시된 글만 보입니다.
func (h *BlogHandler) Register(g *echo.Group, optional, superuser echo.MiddlewareFunc) {
	r := g.Group("/blogs")
	r.POST("", h.Create, superuser)
	r.GET("", h.List, optional)
	r.GET("/:id", h.Get, optional)
	r.PATCH("/:id", h.Update, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// Create handles POST /blogs
func (h *BlogHandler) Create(c echo.Context) error {
	var req CreateBlogRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	blog := req.Blog
	blog.Record = entity.Record{}

	view, err := h.blogUseCase.Create(c.Request().Context(), &blog, req.Tags, req.Categories)
	if err != nil {
		return err
	}

	h.logger.Info("블로그 생성", zap.String("blog_id", view.ID))
	return respond(c, http.StatusCreated, "Blog created successfully", view)
}

// List handles GET /blogs
func (h *BlogHandler) List(c echo.Context) error {
	query := listQuery(c, entity.Blog{}.QuerySpec())
	if !middleware.IsSuperuser(c) {
		if query.Filters == nil {
			query.Filters = make(map[string]interface{})
		}
		query.Filters["is_published"] = true
	}

	page, err := h.blogUseCase.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondPage(c, "/blogs", page)
}

// Get handles GET /blogs/:id
func (h *BlogHandler) Get(c echo.Context) error {
	view, err := h.blogUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !view.IsPublished && !middleware.IsSuperuser(c) {
		return apperrors.RecordNotFound(view.TableName())
	}
	return respond(c, http.StatusOK, "Fetched blog successfully", view)
}

// Update handles PATCH /blogs/:id
func (h *BlogHandler) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	view, err := h.blogUseCase.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Blog updated successfully", view)
}

// Delete handles DELETE /blogs/:id
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.blogUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}
