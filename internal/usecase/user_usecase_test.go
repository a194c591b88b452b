package usecase_test

import (
	"context"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestUserUseCase_UpdateMe(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	jane := h.register(t, "jane@example.com").User
	h.register(t, "john@example.com")

	tests := []struct {
		name    string
		params  dto.UpdateMeParams
		code    string
		message string
	}{
		{
			name:    "기존 비밀번호 없음",
			params:  dto.UpdateMeParams{Password: ptr("new-password")},
			code:    apperrors.ErrInvalidArgument,
			message: "Old password is required to change password",
		},
		{
			name:    "기존 비밀번호 불일치",
			params:  dto.UpdateMeParams{OldPassword: ptr("wrong-password"), Password: ptr("new-password")},
			code:    apperrors.ErrInvalidCredentials,
			message: "Invalid user credentials",
		},
		{
			name:    "같은 비밀번호",
			params:  dto.UpdateMeParams{OldPassword: ptr(testPassword), Password: ptr(testPassword)},
			code:    apperrors.ErrInvalidArgument,
			message: "New and old password cannot be the same",
		},
		{
			name:    "사용 중인 이메일",
			params:  dto.UpdateMeParams{Email: ptr("JOHN@example.com")},
			code:    apperrors.ErrInvalidArgument,
			message: "Email already in use",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.users.UpdateMe(ctx, jane, tt.params)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code))
			assert.Equal(t, tt.message, appMessage(t, err))
		})
	}

	t.Run("수정 성공", func(t *testing.T) {
		updated, err := h.users.UpdateMe(ctx, jane, dto.UpdateMeParams{
			Email:       ptr("Jane.Doe@example.com"),
			FirstName:   ptr("Janet"),
			OldPassword: ptr(testPassword),
			Password:    ptr("new-password"),
		})
		require.NoError(t, err)
		assert.Equal(t, "jane.doe@example.com", updated.Email)
		require.NotNil(t, updated.FirstName)
		assert.Equal(t, "Janet", *updated.FirstName)
		assert.True(t, usecase.VerifyPassword(*updated.Password, "new-password"))
	})
}

func TestUserUseCase_DeactivateAndReactivate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	require.NoError(t, h.users.Deactivate(ctx, registered.User))

	// 세션이 폐기되고 로그인도 거부됩니다
	_, err := h.auth.CurrentUser(ctx, registered.Tokens.AccessToken)
	assert.Error(t, err)
	_, err = h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: testPassword})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAccountInactive))
	_, err = h.auth.RequestMagicLink(ctx, "jane@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrAccountInactive))

	issued, err := h.users.RequestReactivation(ctx, "jane@example.com")
	require.NoError(t, err)

	user, err := h.users.Reactivate(ctx, issued.Token)
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	_, err = h.users.Reactivate(ctx, issued.Token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))

	_, err = h.auth.Login(ctx, dto.LoginParams{Email: "jane@example.com", Password: testPassword})
	assert.NoError(t, err)
}

func TestUserUseCase_Delete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	registered := h.register(t, "jane@example.com")

	require.NoError(t, h.users.DeleteAccount(ctx, registered.User))

	_, err := h.users.Get(ctx, registered.User.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
	_, err = h.auth.CurrentUser(ctx, registered.Tokens.AccessToken)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrUnauthenticated))

	err = h.users.Delete(ctx, registered.User.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
}

func TestUserUseCase_EnsureSuperuser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.users.EnsureSuperuser(ctx, "admin@example.com", "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))

	admin, err := h.users.EnsureSuperuser(ctx, "Admin@example.com", "admin-password")
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
	assert.Equal(t, "admin@example.com", admin.Email)

	// 기존 사용자 승격
	jane := h.register(t, "jane@example.com").User
	promoted, err := h.users.EnsureSuperuser(ctx, "jane@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, promoted.ID)
	assert.True(t, promoted.IsSuperuser)

	page, err := h.users.List(ctx, dto.ListQuery{Filters: map[string]interface{}{"is_superuser": true}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
}
