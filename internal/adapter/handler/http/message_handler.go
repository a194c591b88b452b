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

// MessageHandler 연락 폼 메시지 HTTP 핸들러
type MessageHandler struct {
	notificationUseCase interfaces.NotificationUseCase
	messages            interfaces.ContentUseCase[entity.Message]
	logger              *zap.Logger
}

// NewMessageHandler creates a new MessageHandler instance
func NewMessageHandler(
	notificationUseCase interfaces.NotificationUseCase,
	messages interfaces.ContentUseCase[entity.Message],
	logger *zap.Logger,
) *MessageHandler {
	return &MessageHandler{
		notificationUseCase: notificationUseCase,
		messages:            messages,
		logger:              logger,
	}
}

// Register 전송은 공개, 조회와 삭제는 관리자 전용
func (h *MessageHandler) Register(g *echo.Group, superuser echo.MiddlewareFunc) {
	r := g.Group("/messages")
	r.POST("/send", h.Send)
	r.GET("", h.List, superuser)
	r.GET("/:id", h.Get, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// Send handles POST /messages/send
func (h *MessageHandler) Send(c echo.Context) error {
	var message entity.Message
	if err := bindValid(c, &message); err != nil {
		return err
	}
	message.Record = entity.Record{}

	saved, err := h.notificationUseCase.SendMessage(c.Request().Context(), &message)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Message sent successfully", saved)
}

// List handles GET /messages
func (h *MessageHandler) List(c echo.Context) error {
	page, err := h.messages.List(c.Request().Context(), listQuery(c, entity.Message{}.QuerySpec()))
	if err != nil {
		return err
	}
	return respondPage(c, "/messages", page)
}

// Get handles GET /messages/:id
func (h *MessageHandler) Get(c echo.Context) error {
	message, err := h.messages.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Fetched message successfully", message)
}

// Delete handles DELETE /messages/:id
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.messages.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}

// TestimonialHandler 추천사 HTTP 핸들러
type TestimonialHandler struct {
	notificationUseCase interfaces.NotificationUseCase
	testimonials        interfaces.ContentUseCase[entity.Testimonial]
	logger              *zap.Logger
}

// NewTestimonialHandler creates a new TestimonialHandler instance
func NewTestimonialHandler(
	notificationUseCase interfaces.NotificationUseCase,
	testimonials interfaces.ContentUseCase[entity.Testimonial],
	logger *zap.Logger,
) *TestimonialHandler {
	return &TestimonialHandler{
		notificationUseCase: notificationUseCase,
		testimonials:        testimonials,
		logger:              logger,
	}
}

// Register 제출과 게시된 추천사 조회는 공개입니다.
func (h *TestimonialHandler) Register(g *echo.Group, optional, superuser echo.MiddlewareFunc) {
	r := g.Group("/testimonials")
	r.POST("", h.Create)
	r.GET("", h.List, optional)
	r.GET("/:id", h.Get, optional)
	r.PATCH("/:id", h.Update, superuser)
	r.DELETE("/:id", h.Delete, superuser)
}

// Create handles POST /testimonials
func (h *TestimonialHandler) Create(c echo.Context) error {
	var testimonial entity.Testimonial
	if err := bindValid(c, &testimonial); err != nil {
		return err
	}
	testimonial.Record = entity.Record{}

	saved, err := h.notificationUseCase.SubmitTestimonial(c.Request().Context(), &testimonial)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Testimonial created successfully", saved)
}

// List handles GET /testimonials. 관리자가 아니면 게시된 추천사만 반환합니다.
func (h *TestimonialHandler) List(c echo.Context) error {
	query := listQuery(c, entity.Testimonial{}.QuerySpec())
	if !middleware.IsSuperuser(c) {
		if query.Filters == nil {
			query.Filters = make(map[string]interface{})
		}
		query.Filters["is_published"] = true
	}

	page, err := h.testimonials.List(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return respondPage(c, "/testimonials", page)
}

// Get handles GET /testimonials/:id
func (h *TestimonialHandler) Get(c echo.Context) error {
	testimonial, err := h.testimonials.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !testimonial.IsPublished && !middleware.IsSuperuser(c) {
		return apperrors.RecordNotFound(testimonial.TableName())
	}
	return respond(c, http.StatusOK, "Fetched testimonial successfully", testimonial)
}

// Update handles PATCH /testimonials/:id
func (h *TestimonialHandler) Update(c echo.Context) error {
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	testimonial, err := h.testimonials.Update(c.Request().Context(), c.Param("id"), fields)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Testimonial updated successfully", testimonial)
}

// Delete handles DELETE /testimonials/:id
func (h *TestimonialHandler) Delete(c echo.Context) error {
	if err := h.testimonials.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Deleted successfully", nil)
}
