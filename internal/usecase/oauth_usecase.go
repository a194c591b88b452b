package usecase

import (
	"context"
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// OAuthUseCase Google 로그인 유스케이스 구현체
type OAuthUseCase struct {
	logger          *zap.Logger
	provider        interfaces.GoogleProvider
	userRepository  repository.Store[entity.User]
	cacheRepository repository.CacheRepository
	authUseCase     interfaces.AuthUseCase
}

// NewOAuthUseCase 새 OAuth 유스케이스 생성
func NewOAuthUseCase(
	logger *zap.Logger,
	provider interfaces.GoogleProvider,
	userRepo repository.Store[entity.User],
	cacheRepo repository.CacheRepository,
	authUC interfaces.AuthUseCase,
) interfaces.OAuthUseCase {
	return &OAuthUseCase{
		logger:          logger,
		provider:        provider,
		userRepository:  userRepo,
		cacheRepository: cacheRepo,
		authUseCase:     authUC,
	}
}

// AuthCodeURL state를 Redis에 저장하고 동의 화면 URL을 반환합니다.
func (uc *OAuthUseCase) AuthCodeURL(ctx context.Context) (string, string, error) {
	state := GenerateRandomString(32)
	if err := uc.cacheRepository.Set(ctx, constants.OAuthStatePrefix+state, "1", constants.OAuthStateExpiry); err != nil {
		uc.logger.Error("OAuth state 저장 실패", zap.Error(err))
		return "", "", fmt.Errorf("OAuth state 저장 실패: %w", err)
	}
	return uc.provider.AuthCodeURL(state), state, nil
}

// Callback state를 소비하고 인가 코드를 교환하여 로그인합니다.
func (uc *OAuthUseCase) Callback(ctx context.Context, code, state string) (*dto.AuthResult, error) {
	if code == "" {
		return nil, apperrors.Validation("Authorization code is missing")
	}

	if state == "" {
		return nil, apperrors.Validation("Invalid OAuth state")
	}
	if _, err := uc.cacheRepository.GetDel(ctx, constants.OAuthStatePrefix+state); err != nil {
		if uc.cacheRepository.IsNotFound(err) {
			return nil, apperrors.Validation("Invalid OAuth state")
		}
		return nil, fmt.Errorf("OAuth state 조회 실패: %w", err)
	}

	idToken, err := uc.provider.Exchange(ctx, code)
	if err != nil {
		uc.logger.Warn("인가 코드 교환 실패", zap.Error(err))
		return nil, apperrors.NewAppError(apperrors.ErrInvalidArgument, "Failed to exchange authorization code", err)
	}

	return uc.LoginWithIDToken(ctx, idToken)
}

// LoginWithIDToken id_token을 검증하고 기존 사용자로 로그인하거나 새 사용자를 만듭니다.
func (uc *OAuthUseCase) LoginWithIDToken(ctx context.Context, idToken string) (*dto.AuthResult, error) {
	profile, err := uc.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperrors.InvalidToken("Invalid token or failed to fetch user info", err)
	}

	email := NormalizeEmail(profile.Email)
	if email == "" {
		return nil, apperrors.InvalidToken("Invalid token or failed to fetch user info", nil)
	}

	user, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": email}, false)
	if err != nil {
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}

	if user != nil {
		if !user.IsActive {
			return nil, apperrors.AccountInactive()
		}
	} else {
		user = &entity.User{
			Email:          email,
			FirstName:      optional(profile.GivenName),
			LastName:       optional(profile.FamilyName),
			ProfilePicture: optional(profile.Picture),
			IsActive:       true,
			IsSuperuser:    false,
		}
		if err := uc.userRepository.Create(ctx, user); err != nil {
			uc.logger.Error("Google 사용자 생성 실패", zap.String("email", email), zap.Error(err))
			return nil, err
		}
		uc.logger.Info("Google 사용자 생성", zap.String("user_id", user.ID))
	}

	return uc.authUseCase.LoginUser(ctx, user)
}
