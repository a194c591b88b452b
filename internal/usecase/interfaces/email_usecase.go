package interfaces

import (
	"context"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
)

// EmailTemplates 메일 제목과 HTML 본문 생성기
type EmailTemplates interface {
	MagicLinkEmail(token string, validFor time.Duration) (string, string)
	PasswordResetEmail(token string, validFor time.Duration) (string, string)
	ReactivationEmail(token string, validFor time.Duration) (string, string)
	WelcomeEmail(name string) (string, string)
	ContactMessageEmail(name, email, message string) (string, string)
	TestimonialEmail(name, title string, rating int, message string) (string, string)
}

// EmailUseCase 인증 링크와 알림 메일 발송 인터페이스
type EmailUseCase interface {
	// SendMagicLink 매직 링크 메일 발송
	SendMagicLink(ctx context.Context, to, token string, validFor time.Duration) error

	// SendPasswordReset 비밀번호 재설정 메일 발송
	SendPasswordReset(ctx context.Context, to, token string, validFor time.Duration) error

	// SendReactivation 계정 재활성화 메일 발송
	SendReactivation(ctx context.Context, to, token string, validFor time.Duration) error

	// SendWelcome 가입 환영 메일 발송
	SendWelcome(ctx context.Context, to, name string) error

	// NotifyMessage 새 연락 메시지를 관리자에게 전달
	NotifyMessage(ctx context.Context, event dto.MessageNotification) error

	// NotifyTestimonial 새 추천사를 관리자에게 전달
	NotifyTestimonial(ctx context.Context, event dto.TestimonialNotification) error
}
