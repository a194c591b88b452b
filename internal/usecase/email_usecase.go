package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// EmailUseCase 메일 발송 유스케이스 구현체
type EmailUseCase struct {
	logger         *zap.Logger
	mailRepository repository.MailRepository
	templates      interfaces.EmailTemplates
	notifyTo       string
}

// NewEmailUseCase 새 이메일 유스케이스 생성
func NewEmailUseCase(
	logger *zap.Logger,
	mailRepo repository.MailRepository,
	templates interfaces.EmailTemplates,
	notifyTo string,
) interfaces.EmailUseCase {
	return &EmailUseCase{
		logger:         logger,
		mailRepository: mailRepo,
		templates:      templates,
		notifyTo:       notifyTo,
	}
}

func (uc *EmailUseCase) send(ctx context.Context, to, subject, body string) error {
	if err := uc.mailRepository.SendMail(ctx, to, subject, body); err != nil {
		uc.logger.Error("메일 발송 실패",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("메일 발송 실패: %w", err)
	}
	return nil
}

// SendMagicLink 매직 링크 메일 발송
func (uc *EmailUseCase) SendMagicLink(ctx context.Context, to, token string, validFor time.Duration) error {
	subject, body := uc.templates.MagicLinkEmail(token, validFor)
	return uc.send(ctx, to, subject, body)
}

// SendPasswordReset 비밀번호 재설정 메일 발송
func (uc *EmailUseCase) SendPasswordReset(ctx context.Context, to, token string, validFor time.Duration) error {
	subject, body := uc.templates.PasswordResetEmail(token, validFor)
	return uc.send(ctx, to, subject, body)
}

// SendReactivation 계정 재활성화 메일 발송
func (uc *EmailUseCase) SendReactivation(ctx context.Context, to, token string, validFor time.Duration) error {
	subject, body := uc.templates.ReactivationEmail(token, validFor)
	return uc.send(ctx, to, subject, body)
}

// SendWelcome 가입 환영 메일 발송
func (uc *EmailUseCase) SendWelcome(ctx context.Context, to, name string) error {
	subject, body := uc.templates.WelcomeEmail(name)
	return uc.send(ctx, to, subject, body)
}

// NotifyMessage 연락 메시지 알림. 수신자가 설정되지 않으면 건너뜁니다
func (uc *EmailUseCase) NotifyMessage(ctx context.Context, event dto.MessageNotification) error {
	if uc.notifyTo == "" {
		uc.logger.Warn("알림 수신자가 설정되지 않아 메시지 알림을 건너뜁니다", zap.String("message_id", event.MessageID))
		return nil
	}
	subject, body := uc.templates.ContactMessageEmail(event.Name, event.Email, event.Message)
	return uc.send(ctx, uc.notifyTo, subject, body)
}

// NotifyTestimonial 추천사 알림. 수신자가 설정되지 않으면 건너뜁니다
func (uc *EmailUseCase) NotifyTestimonial(ctx context.Context, event dto.TestimonialNotification) error {
	if uc.notifyTo == "" {
		uc.logger.Warn("알림 수신자가 설정되지 않아 추천사 알림을 건너뜁니다", zap.String("testimonial_id", event.TestimonialID))
		return nil
	}
	subject, body := uc.templates.TestimonialEmail(event.Name, event.Title, event.Rating, event.Message)
	return uc.send(ctx, uc.notifyTo, subject, body)
}
