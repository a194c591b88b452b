package mail

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig SMTP 설정 구조체
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPClient SMTP를 통한 이메일 발송 클라이언트
type SMTPClient struct {
	config SMTPConfig
	dialer *gomail.Dialer
	logger *zap.Logger
}

// NewSMTPClient SMTP 클라이언트 생성
func NewSMTPClient(cfg SMTPConfig, logger *zap.Logger) *SMTPClient {
	var dialer *gomail.Dialer
	if cfg.Host != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &SMTPClient{
		config: cfg,
		dialer: dialer,
		logger: logger,
	}
}

// Enabled SMTP 호스트가 설정되어 있는지 확인
func (m *SMTPClient) Enabled() bool {
	return m.dialer != nil
}

// newMessage 발신자 헤더가 설정된 메시지 생성
func (m *SMTPClient) newMessage(to, subject, body string) *gomail.Message {
	msg := gomail.NewMessage()
	if m.config.FromName != "" {
		msg.SetHeader("From", msg.FormatAddress(m.config.From, m.config.FromName))
	} else {
		msg.SetHeader("From", m.config.From)
	}
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return msg
}

// SendMail 이메일 발송
func (m *SMTPClient) SendMail(ctx context.Context, to, subject, body string) error {
	if !m.Enabled() {
		m.logger.Warn("SMTP 호스트가 설정되지 않아 이메일 발송을 건너뜁니다",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := m.dialer.DialAndSend(m.newMessage(to, subject, body)); err != nil {
		m.logger.Error("이메일 발송 실패",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("이메일 발송 실패: %w", err)
	}

	m.logger.Info("이메일 발송 성공",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}
