package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthUseCase_Register(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	t.Run("가입 성공", func(t *testing.T) {
		result := h.register(t, "  Jane@Example.com ")
		assert.Equal(t, "jane@example.com", result.User.Email)
		assert.True(t, result.User.IsActive)
		assert.False(t, result.User.IsSuperuser)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotEmpty(t, result.Tokens.RefreshToken)
		require.NotNil(t, result.User.Password)
		assert.NotEqual(t, testPassword, *result.User.Password)

		sent := h.env.Mailer.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "jane@example.com", sent[0].To)
	})

	t.Run("중복 이메일", func(t *testing.T) {
		_, err := h.auth.Register(ctx, dto.RegisterParams{Email: "jane@example.com", Password: testPassword})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
		assert.Equal(t, "User with email already exist", appMessage(t, err))
	})

	t.Run("짧은 비밀번호", func(t *testing.T) {
		_, err := h.auth.Register(ctx, dto.RegisterParams{Email: "short@example.com", Password: "abc"})
		require.Error(t, err)
		assert.Equal(t, "Password must be at least 8 characters", appMessage(t, err))
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	t.Run("로그인 성공", func(t *testing.T) {
		result, err := h.auth.Login(ctx, dto.LoginParams{Email: "JANE@example.com", Password: testPassword})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)
		assert.NotNil(t, result.User.LastLogin)

		// 이전 세션은 폐기됩니다
		_, err = h.auth.CurrentUser(ctx, registered.Tokens.AccessToken)
		assert.Error(t, err)

		current, err := h.auth.CurrentUser(ctx, result.Tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, current.ID)
	})

	t.Run("잘못된 비밀번호", func(t *testing.T) {
		_, err := h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: "wrong-password"})
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidCredentials))
		assert.Equal(t, "Invalid user credentials", appMessage(t, err))
	})

	t.Run("없는 사용자", func(t *testing.T) {
		_, err := h.auth.Login(ctx, dto.LoginParams{Email: "nobody@example.com", Password: testPassword})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidCredentials))
	})

	t.Run("비활성 계정", func(t *testing.T) {
		_, err := h.repos.User.Update(ctx, registered.User.ID, map[string]interface{}{"is_active": false})
		require.NoError(t, err)
		defer func() {
			_, _ = h.repos.User.Update(ctx, registered.User.ID, map[string]interface{}{"is_active": true})
		}()

		_, err = h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: testPassword})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrAccountInactive))
	})

	t.Run("비밀번호 없는 계정", func(t *testing.T) {
		require.NoError(t, h.repos.User.Create(ctx, &entity.User{Email: "oauth@example.com", IsActive: true}))
		_, err := h.auth.Login(ctx, dto.LoginParams{Email: "oauth@example.com", Password: testPassword})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrNoPasswordSet))
	})
}

func TestAuthUseCase_MagicLink(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	issued, err := h.auth.RequestMagicLink(ctx, "jane@example.com")
	require.NoError(t, err)

	sent := h.env.Mailer.Sent()
	require.Len(t, sent, 2)
	assert.True(t, strings.Contains(sent[1].Body, issued.Token))

	result, err := h.auth.VerifyMagicLink(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	// 매직 링크는 한 번만 사용할 수 있습니다
	_, err = h.auth.VerifyMagicLink(ctx, issued.Token)
	require.Error(t, err)
	assert.Equal(t, "Invalid token", appMessage(t, err))

	_, err = h.auth.RequestMagicLink(ctx, "nobody@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
}

func TestAuthUseCase_PasswordReset(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	issued, err := h.auth.RequestPasswordReset(ctx, "jane@example.com")
	require.NoError(t, err)

	err = h.auth.ResetPassword(ctx, issued.Token, "short")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))

	require.NoError(t, h.auth.ResetPassword(ctx, issued.Token, "new-password-1"))

	// 기존 세션과 재설정 토큰은 폐기됩니다
	_, err = h.auth.CurrentUser(ctx, registered.Tokens.AccessToken)
	assert.Error(t, err)
	err = h.auth.ResetPassword(ctx, issued.Token, "new-password-2")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))

	_, err = h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: testPassword})
	assert.Error(t, err)
	_, err = h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestAuthUseCase_RefreshAndLogout(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	_, err := h.auth.Refresh(ctx, "")
	require.Error(t, err)
	assert.Equal(t, "Refresh token expired", appMessage(t, err))

	tokens, err := h.auth.Refresh(ctx, registered.Tokens.RefreshToken)
	require.NoError(t, err)

	user, err := h.auth.CurrentUser(ctx, tokens.AccessToken)
	require.NoError(t, err)

	require.NoError(t, h.auth.Logout(ctx, user))
	_, err = h.auth.CurrentUser(ctx, tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, "Could not validate credentials", appMessage(t, err))
}

func TestAuthUseCase_RequireSuperuser(t *testing.T) {
	h := newHarness(t)

	err := h.auth.RequireSuperuser(&entity.User{IsSuperuser: false})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthorized))
	assert.Equal(t, "You do not have access to use this resource", appMessage(t, err))

	assert.NoError(t, h.auth.RequireSuperuser(&entity.User{IsSuperuser: true}))
	assert.Error(t, h.auth.RequireSuperuser(nil))
}
