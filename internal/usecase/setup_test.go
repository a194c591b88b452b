package usecase_test

import (
	"context"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/mail"
	"github.com/joboy-dev/portfolio.api/internal/testutil"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret"
	testPassword = "password123"
	notifyTo     = "owner@example.com"
)

var authConfig = usecase.AuthConfig{HashCost: bcrypt.MinCost, PasswordMinLength: 8}

// harness 실제 SQLite 저장소 위에 구성한 유스케이스 묶음
type harness struct {
	env    *testutil.Env
	repos  *repository.Repositories
	tokens interfaces.TokenUseCase
	email  interfaces.EmailUseCase
	auth   interfaces.AuthUseCase
	users  interfaces.UserUseCase
	tags   interfaces.TaxonomyUseCase
	cats   interfaces.TaxonomyUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	env := testutil.NewEnv(t)
	repos := env.Repos
	logger := zap.NewNop()

	tokens := usecase.NewTokenUseCase(logger, usecase.TokenConfig{Secret: testSecret}, repos.Transactor, repos.Token, repos.BlacklistedToken)
	templates := mail.NewEmailTemplateService("http://localhost:3000", "Portfolio", "owner@example.com")
	email := usecase.NewEmailUseCase(logger, repos.Mail, templates, notifyTo)

	return &harness{
		env:    env,
		repos:  repos,
		tokens: tokens,
		email:  email,
		auth:   usecase.NewAuthUseCase(logger, authConfig, repos.Transactor, repos.User, tokens, email),
		users:  usecase.NewUserUseCase(logger, authConfig, repos.Transactor, repos.User, tokens, email),
		tags:   usecase.NewTagUseCase(logger, repos.Transactor, repos.Tag, repos.TagAssociation),
		cats:   usecase.NewCategoryUseCase(logger, repos.Transactor, repos.Category, repos.CategoryLink),
	}
}

// register 활성 사용자를 만들고 인증 결과를 반환합니다.
func (h *harness) register(t *testing.T, email string) *dto.AuthResult {
	t.Helper()
	result, err := h.auth.Register(context.Background(), dto.RegisterParams{
		Email:     email,
		Password:  testPassword,
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	return result
}

// appMessage AppError의 클라이언트 메시지
func appMessage(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr), "AppError가 아닙니다: %v", err)
	return appErr.Message()
}

// MockFileStorage 파일 저장소 모의 객체
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Name() string {
	return "mock"
}

func (m *MockFileStorage) Upload(ctx context.Context, input repository.UploadInput) (*repository.StoredObject, error) {
	args := m.Called(ctx, input)
	switch v := args.Get(0).(type) {
	case func(repository.UploadInput) *repository.StoredObject:
		return v(input), args.Error(1)
	case *repository.StoredObject:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

// MockGoogleProvider Google 연동 모의 객체
type MockGoogleProvider struct {
	mock.Mock
}

func (m *MockGoogleProvider) AuthCodeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockGoogleProvider) Exchange(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleProvider) VerifyIDToken(ctx context.Context, idToken string) (*dto.GoogleProfile, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.GoogleProfile), args.Error(1)
}

func newProject(name string) *entity.Project {
	return &entity.Project{
		Name:        name,
		Domain:      "backend",
		ProjectType: "personal",
		Role:        "developer",
	}
}
