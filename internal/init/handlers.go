package init

import (
	"github.com/joboy-dev/portfolio.api/internal/adapter/handler/http"
	"github.com/joboy-dev/portfolio.api/internal/config"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"go.uber.org/zap"
)

// NewHandlers 유스케이스를 HTTP 핸들러에 주입합니다.
func NewHandlers(useCases *UseCases, cfg *config.Config, logger *zap.Logger) *http.Handlers {
	debug := cfg.Server.HTTP.Debug

	return &http.Handlers{
		Auth: http.NewAuthHandler(useCases.AuthUseCase, useCases.OAuthUseCase, http.AuthHandlerConfig{
			Debug:               debug,
			RefreshTokenExpiry:  cfg.JWT.RefreshTokenExpiry,
			CookieDomain:        cfg.Auth.CookieDomain,
			FrontendRedirectURL: cfg.OAuth.Google.FrontendRedirectURL,
		}, logger),
		User:          http.NewUserHandler(useCases.UserUseCase, debug, logger),
		Profile:       http.NewProfileHandler(useCases.ProfileUseCase, logger),
		Project:       http.NewProjectHandler(useCases.ProjectUseCase, logger),
		Blog:          http.NewBlogHandler(useCases.BlogUseCase, logger),
		Skill:         http.NewContentHandler[entity.Skill](useCases.Skills, "Skill", "/skills", logger),
		Experience:    http.NewContentHandler[entity.Experience](useCases.Experiences, "Experience", "/experiences", logger),
		Education:     http.NewContentHandler[entity.Education](useCases.Education, "Education", "/education", logger),
		Award:         http.NewContentHandler[entity.Award](useCases.Awards, "Award", "/awards", logger),
		Certification: http.NewContentHandler[entity.Certification](useCases.Certifications, "Certification", "/certifications", logger),
		Service:       http.NewContentHandler[entity.Service](useCases.Services, "Service", "/services", logger),
		Testimonial:   http.NewTestimonialHandler(useCases.NotificationUseCase, useCases.Testimonials, logger),
		Message:       http.NewMessageHandler(useCases.NotificationUseCase, useCases.Messages, logger),
		Tag:           http.NewTagHandler(useCases.TagUseCase, logger),
		Category:      http.NewCategoryHandler(useCases.CategoryUseCase, logger),
		File:          http.NewFileHandler(useCases.FileUseCase, logger),
		Log:           http.NewLogHandler(cfg.Log.FilePath, logger),
	}
}
