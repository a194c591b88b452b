package mail

import (
	"fmt"
	"html"
	"time"
)

// EmailTemplateService 이메일 템플릿 생성 서비스
type EmailTemplateService struct {
	appURL      string // 프론트엔드 기본 URL (링크 생성에 사용)
	siteName    string
	contactMail string
}

// NewEmailTemplateService 이메일 템플릿 서비스 생성
func NewEmailTemplateService(appURL, siteName, contactMail string) *EmailTemplateService {
	return &EmailTemplateService{
		appURL:      appURL,
		siteName:    siteName,
		contactMail: contactMail,
	}
}

// layout 공통 헤더와 푸터로 본문을 감쌉니다
func (s *EmailTemplateService) layout(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1.0" />
	<title>%s</title>
</head>
<body style="margin: 0; padding: 0; font-family: Helvetica, Arial, sans-serif; background-color: #f7f9fc;">
	<table border="0" cellpadding="0" cellspacing="0" width="100%%" style="border-collapse: collapse;">
		<tr>
			<td style="padding: 40px 0;">
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #1f2937; border-radius: 8px 8px 0 0;">
					<tr>
						<td align="center" style="padding: 24px 0; color: #ffffff;">
							<h1 style="margin: 0; font-size: 24px;">%s</h1>
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
					<tr>
						<td style="padding: 32px 30px; color: #333333; font-size: 16px; line-height: 1.6;">
%s
						</td>
					</tr>
				</table>
				<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #f0f2fa; border-radius: 0 0 8px 8px;">
					<tr>
						<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">
							<p style="margin: 0;">&copy; %d %s</p>
							<p style="margin: 0;"><a href="mailto:%s" style="color: #1f2937;">%s</a></p>
						</td>
					</tr>
				</table>
			</td>
		</tr>
	</table>
</body>
</html>`, title, title, content, time.Now().Year(), s.siteName, s.contactMail, s.contactMail)
}

// linkBlock 버튼 형태의 링크와 만료 안내
func linkBlock(intro, label, link string, validFor time.Duration) string {
	return fmt.Sprintf(`							<p style="margin-top: 0;">%s</p>
							<p style="text-align: center; padding: 16px 0;">
								<a href="%s" style="background-color: #1f2937; color: #ffffff; padding: 12px 28px; border-radius: 6px; text-decoration: none;">%s</a>
							</p>
							<p>This link expires in %s. If you did not request it, you can ignore this email.</p>`,
		intro, link, label, humanDuration(validFor))
}

func humanDuration(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	minutes := int(d / time.Minute)
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

// MagicLinkEmail 매직 링크 로그인 메일
func (s *EmailTemplateService) MagicLinkEmail(token string, validFor time.Duration) (string, string) {
	link := fmt.Sprintf("%s/auth/magic?token=%s", s.appURL, token)
	subject := "Your sign-in link"
	return subject, s.layout(subject, linkBlock("Use the button below to sign in.", "Sign in", link, validFor))
}

// PasswordResetEmail 비밀번호 재설정 메일
func (s *EmailTemplateService) PasswordResetEmail(token string, validFor time.Duration) (string, string) {
	link := fmt.Sprintf("%s/auth/reset-password?token=%s", s.appURL, token)
	subject := "Reset your password"
	return subject, s.layout(subject, linkBlock("We received a request to reset your password.", "Reset password", link, validFor))
}

// ReactivationEmail 계정 재활성화 메일
func (s *EmailTemplateService) ReactivationEmail(token string, validFor time.Duration) (string, string) {
	link := fmt.Sprintf("%s/auth/reactivate?token=%s", s.appURL, token)
	subject := "Reactivate your account"
	return subject, s.layout(subject, linkBlock("Your account is currently deactivated.", "Reactivate account", link, validFor))
}

// WelcomeEmail 가입 환영 메일
func (s *EmailTemplateService) WelcomeEmail(name string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s", s.siteName)
	body := fmt.Sprintf(`							<p style="margin-top: 0;">Hi <strong>%s</strong>,</p>
							<p>Your account has been created.</p>`, html.EscapeString(name))
	return subject, s.layout(subject, body)
}

// ContactMessageEmail 연락 폼 메시지 알림 메일
func (s *EmailTemplateService) ContactMessageEmail(name, email, message string) (string, string) {
	subject := fmt.Sprintf("New message from %s", name)
	body := fmt.Sprintf(`							<p style="margin-top: 0;"><strong>%s</strong> (<a href="mailto:%s">%s</a>) sent a message:</p>
							<blockquote style="border-left: 3px solid #d1d5db; margin: 0; padding-left: 12px;">%s</blockquote>`,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(email), html.EscapeString(message))
	return subject, s.layout(subject, body)
}

// TestimonialEmail 추천사 등록 알림 메일
func (s *EmailTemplateService) TestimonialEmail(name, title string, rating int, message string) (string, string) {
	subject := fmt.Sprintf("New testimonial from %s", name)
	body := fmt.Sprintf(`							<p style="margin-top: 0;"><strong>%s</strong>, %s rated you %d/5:</p>
							<blockquote style="border-left: 3px solid #d1d5db; margin: 0; padding-left: 12px;">%s</blockquote>
							<p>It stays unpublished until you approve it.</p>`,
		html.EscapeString(name), html.EscapeString(title), rating, html.EscapeString(message))
	return subject, s.layout(subject, body)
}
