package http

import (
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers /api/v1 아래에 등록되는 모든 핸들러 묶음
type Handlers struct {
	Auth          *AuthHandler
	User          *UserHandler
	Profile       *ProfileHandler
	Project       *ProjectHandler
	Blog          *BlogHandler
	Skill         *ContentHandler[entity.Skill, *entity.Skill]
	Experience    *ContentHandler[entity.Experience, *entity.Experience]
	Education     *ContentHandler[entity.Education, *entity.Education]
	Award         *ContentHandler[entity.Award, *entity.Award]
	Certification *ContentHandler[entity.Certification, *entity.Certification]
	Service       *ContentHandler[entity.Service, *entity.Service]
	Testimonial   *TestimonialHandler
	Message       *MessageHandler
	Tag           *TaxonomyHandler
	Category      *TaxonomyHandler
	File          *FileHandler
	Log           *LogHandler
}

// RegisterRoutes 인증 미들웨어를 적용하여 라우트를 등록합니다.
func (h *Handlers) RegisterRoutes(api *echo.Group, jwt *middleware.JWTAuthMiddleware) {
	auth := jwt.Handle()
	optional := jwt.Optional()
	superuser := jwt.Superuser()

	h.Auth.Register(api, auth)
	h.User.Register(api, auth, superuser)
	h.Profile.Register(api, superuser)
	h.Project.Register(api, superuser)
	h.Blog.Register(api, optional, superuser)

	for _, content := range []interface {
		Register(*echo.Group, echo.MiddlewareFunc)
	}{h.Skill, h.Experience, h.Education, h.Award, h.Certification, h.Service} {
		content.Register(api, superuser)
	}

	h.Testimonial.Register(api, optional, superuser)
	h.Message.Register(api, superuser)
	h.Tag.Register(api, superuser)
	h.Category.Register(api, superuser)
	h.File.Register(api, superuser)
	h.Log.Register(api, superuser)
}
