package http

import (
	"net/http"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProjectHandler 프로젝트 HTTP 핸들러
type ProjectHandler struct {
	projectUseCase interfaces.ProjectUseCase
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(projectUseCase interfaces.ProjectUseCase, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectUseCase: projectUseCase,
		logger:         logger,
	}
}

// CreateProjectRequest 프로젝트 생성 요청. 키/값 필드는 [{key, value}] 목록으로 받습니다.
type CreateProjectRequest struct {
	entity.Project
	TechnicalDetails       []dto.KeyValue `json:"technical_details" validate:"dive"`
	ChallengesAndSolutions []dto.KeyValue `json:"challenges_and_solutions" validate:"dive"`
	Tags                   []string       `json:"tags"`
}

// Register 프로젝트 라우트 등록
func (h *ProjectHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group("/projects")
	r.POST("", h.Create, superuser)
	r.GET("", h.List)
	r.GET("/featured", h.Featured)
	r.GET("/:id", h.Get)
	r.PATCH("/:id", h.Update, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// Create handles POST /projects
// @Summary 프로젝트 생성
// @Tags projects
// @Accept json
// @Produce json
// @Success 201 {object} Response
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	project := req.Project
	project.Record = entity.Record{}

	view, err := h.projectUseCase.Create(c.Request().Context(), &project, dto.ProjectDetails{
		TechnicalDetails:       req.TechnicalDetails,
		ChallengesAndSolutions: req.ChallengesAndSolutions,
		Tags:                   req.Tags,
	})
	if err != nil {
		return err
	}

	h.logger.Info("프로젝트 생성", zap.String("project_id", view.ID))
	return respond(c, http.StatusCreated, "Project created successfully", view)
}

// List handles GET /projects (tags: 쉼표로 구분된 태그 이름)
func (h *ProjectHandler) List(c echo.Context) error {
	query := listQuery(c, entity.Project{}.QuerySpec())
	page, err := h.projectUseCase.List(c.Request().Context(), query, splitList(c.QueryParam("tags")))
	if err != nil {
		return err
	}
	return respondPage(c, "/projects", page)
}

// Featured handles GET /projects/featured
func (h *ProjectHandler) Featured(c echo.Context) error {
	views, err := h.projectUseCase.Featured(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Fetched featured projects successfully", views)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c echo.Context) error {
	view, err := h.projectUseCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Fetched project successfully", view)
}

// Update handles PATCH /projects/:id
// technical_details, challenges_and_solutions는 기존 값에 병합되고
// *_keys_to_remove의 키는 제거됩니다.
func (h *ProjectHandler) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}

	var details dto.ProjectDetails
	targets := []struct {
		name   string
		target interface{}
	}{
		{"technical_details", &details.TechnicalDetails},
		{"technical_details_keys_to_remove", &details.TechnicalDetailsRemove},
		{"challenges_and_solutions", &details.ChallengesAndSolutions},
		{"challenges_and_solutions_keys_to_remove", &details.ChallengesAndSolutionsRemove},
		{"tags", &details.Tags},
	}
	for _, t := range targets {
		if _, err := takeJSON(fields, t.name, t.target); err != nil {
			return err
		}
	}

	view, err := h.projectUseCase.Update(c.Request().Context(), c.Param("id"), fields, details)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Project updated successfully", view)
}

// Delete handles DELETE /projects/:id
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.projectUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}
