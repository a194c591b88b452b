package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmailTemplateService_Links(t *testing.T) {
	s := NewEmailTemplateService("https://example.dev", "Portfolio", "hello@example.dev")

	subject, body := s.MagicLinkEmail("abc.def", 15*time.Minute)
	assert.Equal(t, "Your sign-in link", subject)
	assert.Contains(t, body, "https://example.dev/auth/magic?token=abc.def")
	assert.Contains(t, body, "15 minutes")

	_, body = s.PasswordResetEmail("tok", 15*time.Minute)
	assert.Contains(t, body, "/auth/reset-password?token=tok")

	_, body = s.ReactivationEmail("tok", 24*time.Hour)
	assert.Contains(t, body, "/auth/reactivate?token=tok")
	assert.Contains(t, body, "24 hours")
}

func TestEmailTemplateService_EscapesUserInput(t *testing.T) {
	s := NewEmailTemplateService("https://example.dev", "Portfolio", "hello@example.dev")

	subject, body := s.ContactMessageEmail("Eve", "eve@example.com", "<script>alert(1)</script>")
	assert.Equal(t, "New message from Eve", subject)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")

	_, body = s.TestimonialEmail("Bob", "CTO", 5, "Great work")
	assert.Contains(t, body, "5/5")
}

func TestSMTPClient_DisabledSkipsSend(t *testing.T) {
	client := NewSMTPClient(SMTPConfig{From: "noreply@example.dev"}, zap.NewNop())
	require.False(t, client.Enabled())
	assert.NoError(t, client.SendMail(context.Background(), "a@b.c", "subject", "<p>body</p>"))
}

func TestSMTPClient_MessageHeaders(t *testing.T) {
	client := NewSMTPClient(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.dev", FromName: "Portfolio"}, zap.NewNop())
	msg := client.newMessage("to@example.dev", "Hello", "<p>hi</p>")

	assert.Equal(t, []string{"to@example.dev"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, msg.GetHeader("Subject"))
	assert.Contains(t, msg.GetHeader("From")[0], "noreply@example.dev")
}
