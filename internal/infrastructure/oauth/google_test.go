package oauth

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/idtoken"
)

func newTestProvider(validate validateFunc) *GoogleProvider {
	p := NewGoogleProvider(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:7001/api/v1/auth/google/callback",
	}, zap.NewNop())
	p.validate = validate
	return p
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := newTestProvider(nil)

	raw := p.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestGoogleProvider_VerifyIDToken(t *testing.T) {
	t.Run("클레임 매핑", func(t *testing.T) {
		var audience string
		p := newTestProvider(func(_ context.Context, _, aud string) (*idtoken.Payload, error) {
			audience = aud
			return &idtoken.Payload{Claims: map[string]interface{}{
				"email":          "jane@example.com",
				"email_verified": true,
				"given_name":     "Jane",
				"family_name":    "Doe",
				"picture":        "https://example.com/p.png",
			}}, nil
		})

		profile, err := p.VerifyIDToken(context.Background(), "token")
		require.NoError(t, err)
		assert.Equal(t, "client-id", audience)
		assert.Equal(t, "jane@example.com", profile.Email)
		assert.Equal(t, "Jane", profile.GivenName)
		assert.Equal(t, "Doe", profile.FamilyName)
		assert.Equal(t, "https://example.com/p.png", profile.Picture)
	})

	t.Run("검증 실패", func(t *testing.T) {
		p := newTestProvider(func(context.Context, string, string) (*idtoken.Payload, error) {
			return nil, errors.New("bad signature")
		})
		_, err := p.VerifyIDToken(context.Background(), "token")
		assert.Error(t, err)
	})

	t.Run("이메일 미인증", func(t *testing.T) {
		p := newTestProvider(func(context.Context, string, string) (*idtoken.Payload, error) {
			return &idtoken.Payload{Claims: map[string]interface{}{
				"email":          "jane@example.com",
				"email_verified": false,
			}}, nil
		})
		_, err := p.VerifyIDToken(context.Background(), "token")
		assert.Error(t, err)
	})
}
