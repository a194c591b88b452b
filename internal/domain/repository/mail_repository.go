package repository

import "context"

// MailRepository 메일 발송 인터페이스
type MailRepository interface {
	// SendMail HTML 본문의 메일을 발송합니다.
	SendMail(ctx context.Context, to, subject, body string) error
}
