package oauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// GoogleConfig Google OAuth 클라이언트 설정
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// validateFunc id_token 검증 함수 (테스트에서 교체)
type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// GoogleProvider x/oauth2 기반 Google 연동
type GoogleProvider struct {
	logger   *zap.Logger
	oauth    *oauth2.Config
	validate validateFunc
}

// NewGoogleProvider 새 Google 연동 생성
func NewGoogleProvider(cfg GoogleConfig, logger *zap.Logger) *GoogleProvider {
	return &GoogleProvider{
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		validate: idtoken.Validate,
	}
}

// AuthCodeURL 동의 화면 URL
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange 인가 코드를 토큰으로 교환하고 id_token을 꺼냅니다.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (string, error) {
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		p.logger.Warn("Google 인가 코드 교환 실패", zap.Error(err))
		return "", fmt.Errorf("인가 코드 교환 실패: %w", err)
	}

	idToken, ok := token.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", errors.New("응답에 id_token이 없습니다")
	}
	return idToken, nil
}

// VerifyIDToken 서명, 만료, 대상(client id)을 검증하고 프로필 클레임을 읽습니다.
func (p *GoogleProvider) VerifyIDToken(ctx context.Context, idToken string) (*dto.GoogleProfile, error) {
	payload, err := p.validate(ctx, idToken, p.oauth.ClientID)
	if err != nil {
		return nil, fmt.Errorf("id_token 검증 실패: %w", err)
	}

	profile := &dto.GoogleProfile{
		Email:      claimString(payload.Claims, "email"),
		GivenName:  claimString(payload.Claims, "given_name"),
		FamilyName: claimString(payload.Claims, "family_name"),
		Picture:    claimString(payload.Claims, "picture"),
	}
	if profile.Email == "" {
		return nil, errors.New("id_token에 이메일이 없습니다")
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("이메일이 인증되지 않은 Google 계정입니다")
	}
	return profile, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
