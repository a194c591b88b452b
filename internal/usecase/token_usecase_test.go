package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenUseCase_IssueAndVerify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	issued, err := h.tokens.Issue(ctx, entity.TokenMagic, "user-1", 0, map[string]interface{}{"email": "jane@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), issued.ExpiresAt, 5*time.Second)

	claims, err := h.tokens.Verify(ctx, issued.Token, entity.TokenMagic, "Invalid token")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.TokenMagic, claims.Type)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "jane@example.com", claims.Extra["email"])

	live, err := h.repos.Token.Count(ctx, map[string]interface{}{"user_id": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), live)
}

func TestTokenUseCase_SingleSessionPerType(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, err := h.tokens.Issue(ctx, entity.TokenAccess, "user-1", 0, nil)
	require.NoError(t, err)
	second, err := h.tokens.Issue(ctx, entity.TokenAccess, "user-1", 0, nil)
	require.NoError(t, err)

	_, err = h.tokens.Verify(ctx, first.Token, entity.TokenAccess, "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))
	assert.Equal(t, "Could not validate credentials", appMessage(t, err))

	_, err = h.tokens.Verify(ctx, second.Token, entity.TokenAccess, "")
	assert.NoError(t, err)

	live, err := h.repos.Token.Count(ctx, map[string]interface{}{"user_id": "user-1", "token_type": string(entity.TokenAccess)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), live)
	blacklisted, err := h.repos.BlacklistedToken.Count(ctx, map[string]interface{}{"token": first.Token})
	require.NoError(t, err)
	assert.Equal(t, int64(1), blacklisted)

	// 다른 유형의 토큰은 영향을 받지 않습니다
	magic, err := h.tokens.Issue(ctx, entity.TokenMagic, "user-1", 0, nil)
	require.NoError(t, err)
	_, err = h.tokens.Verify(ctx, second.Token, entity.TokenAccess, "")
	assert.NoError(t, err)
	_, err = h.tokens.Verify(ctx, magic.Token, entity.TokenMagic, "Invalid token")
	assert.NoError(t, err)
}

func TestTokenUseCase_Verify(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	sign := func(claims jwt.MapClaims, secret string) string {
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	refresh, err := h.tokens.Issue(ctx, entity.TokenRefresh, "user-1", 0, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected entity.TokenType
		failure  string
		message  string
	}{
		{
			name:     "유형 불일치",
			token:    refresh.Token,
			expected: entity.TokenAccess,
			message:  "Token of type 'access' expected. Got 'refresh'",
		},
		{
			name:     "만료",
			token:    sign(jwt.MapClaims{"user_id": "user-1", "type": "refresh", "exp": time.Now().Add(-time.Minute).Unix()}, testSecret),
			expected: entity.TokenRefresh,
			failure:  "Refresh token expired",
			message:  "Refresh token expired",
		},
		{
			name:     "다른 서명 키",
			token:    sign(jwt.MapClaims{"user_id": "user-1", "type": "access", "exp": time.Now().Add(time.Hour).Unix()}, "other"),
			expected: entity.TokenAccess,
			message:  "Could not validate credentials",
		},
		{
			name:     "user_id 없음",
			token:    sign(jwt.MapClaims{"type": "magic", "exp": time.Now().Add(time.Hour).Unix()}, testSecret),
			expected: entity.TokenMagic,
			failure:  "Invalid token",
			message:  "Invalid token",
		},
		{
			name:     "exp 없음",
			token:    sign(jwt.MapClaims{"user_id": "user-1", "type": "access"}, testSecret),
			expected: entity.TokenAccess,
			message:  "Could not validate credentials",
		},
		{
			name:     "형식 오류",
			token:    "not-a-jwt",
			expected: entity.TokenAccess,
			message:  "Could not validate credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.tokens.Verify(ctx, tt.token, tt.expected, tt.failure)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))
			assert.Equal(t, tt.message, appMessage(t, err))
		})
	}
}

func TestTokenUseCase_RevokeIsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	issued, err := h.tokens.Issue(ctx, entity.TokenMagic, "user-1", 0, nil)
	require.NoError(t, err)

	require.NoError(t, h.tokens.Revoke(ctx, issued.Token, "user-1"))
	require.NoError(t, h.tokens.Revoke(ctx, issued.Token, "user-1"))

	blacklisted, err := h.repos.BlacklistedToken.Count(ctx, map[string]interface{}{"token": issued.Token})
	require.NoError(t, err)
	assert.Equal(t, int64(1), blacklisted)

	live, err := h.repos.Token.Count(ctx, map[string]interface{}{"token": issued.Token})
	require.NoError(t, err)
	assert.Zero(t, live)

	_, err = h.tokens.Verify(ctx, issued.Token, entity.TokenMagic, "Invalid token")
	assert.Error(t, err)
}

func TestTokenUseCase_Refresh(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair, err := h.tokens.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	refreshed, userID, err := h.tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, refreshed.AccessToken)

	// 이전 리프레시 토큰은 재사용할 수 없습니다
	_, _, err = h.tokens.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, "Refresh token expired", appMessage(t, err))

	// 이전 액세스 토큰도 새 쌍 발급으로 폐기됩니다
	_, err = h.tokens.Verify(ctx, pair.AccessToken, entity.TokenAccess, "")
	assert.Error(t, err)
}

func TestTokenUseCase_RefreshNeedsLiveRow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair, err := h.tokens.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	// 블랙리스트에 오르지 않았더라도 유효 토큰 행이 없으면 거부합니다
	live, err := h.repos.Token.FetchOne(ctx, map[string]interface{}{"token": pair.RefreshToken}, true)
	require.NoError(t, err)
	require.NoError(t, h.repos.Token.HardDelete(ctx, live.ID))

	_, _, err = h.tokens.Refresh(ctx, pair.RefreshToken)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))
	assert.Equal(t, "Refresh token expired", appMessage(t, err))

	// 실패한 갱신은 기존 액세스 토큰을 건드리지 않습니다
	_, err = h.tokens.Verify(ctx, pair.AccessToken, entity.TokenAccess, "")
	assert.NoError(t, err)
}

func TestTokenUseCase_ConcurrentRefreshRotatesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair, err := h.tokens.IssuePair(ctx, "user-1")
	require.NoError(t, err)

	const attempts = 4
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := h.tokens.Refresh(ctx, pair.RefreshToken)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	refresh, err := h.repos.Token.Count(ctx, map[string]interface{}{"user_id": "user-1", "token_type": string(entity.TokenRefresh)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), refresh)
}

func TestTokenUseCase_AnonymousToken(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	issued, err := h.tokens.Issue(ctx, entity.TokenMagic, "", 0, map[string]interface{}{"email": "guest@example.com"})
	require.NoError(t, err)

	_, err = h.tokens.Verify(ctx, issued.Token, entity.TokenMagic, "Invalid token")
	require.Error(t, err)
	assert.Equal(t, "Invalid token", appMessage(t, err))

	claims, err := h.tokens.VerifyAnonymous(ctx, issued.Token, entity.TokenMagic, "Invalid token")
	require.NoError(t, err)
	assert.Empty(t, claims.UserID)
	assert.Equal(t, "guest@example.com", claims.Extra["email"])

	// 유형 검사와 폐기는 동일하게 적용됩니다
	_, err = h.tokens.VerifyAnonymous(ctx, issued.Token, entity.TokenAccess, "")
	assert.Error(t, err)

	require.NoError(t, h.tokens.Revoke(ctx, issued.Token, ""))
	_, err = h.tokens.VerifyAnonymous(ctx, issued.Token, entity.TokenMagic, "Invalid token")
	assert.Error(t, err)
}

func TestTokenUseCase_Logout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pair, err := h.tokens.IssuePair(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, h.tokens.Logout(ctx, "user-1"))

	_, err = h.tokens.Verify(ctx, pair.AccessToken, entity.TokenAccess, "")
	assert.Error(t, err)
	_, err = h.tokens.Verify(ctx, pair.RefreshToken, entity.TokenRefresh, "Refresh token expired")
	assert.Error(t, err)
}
