package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// AuthConfig 인증 관련 설정
type AuthConfig struct {
	HashCost          int // bcrypt cost
	PasswordMinLength int // 최소 비밀번호 길이
}

// AuthUseCase 인증 유스케이스 구현체
type AuthUseCase struct {
	logger         *zap.Logger
	config         AuthConfig
	transactor     repository.Transactor
	userRepository repository.Store[entity.User]
	tokenUseCase   interfaces.TokenUseCase
	emailUseCase   interfaces.EmailUseCase
	now            func() time.Time
}

// NewAuthUseCase 새 인증 유스케이스 생성
func NewAuthUseCase(
	logger *zap.Logger,
	config AuthConfig,
	transactor repository.Transactor,
	userRepo repository.Store[entity.User],
	tokenUC interfaces.TokenUseCase,
	emailUC interfaces.EmailUseCase,
) interfaces.AuthUseCase {
	return &AuthUseCase{
		logger:         logger,
		config:         config,
		transactor:     transactor,
		userRepository: userRepo,
		tokenUseCase:   tokenUC,
		emailUseCase:   emailUC,
		now:            time.Now,
	}
}

func (uc *AuthUseCase) validatePassword(password string) error {
	if len(password) < uc.config.PasswordMinLength {
		return apperrors.Validation(fmt.Sprintf("Password must be at least %d characters", uc.config.PasswordMinLength))
	}
	return nil
}

// Register 사용자 회원가입
func (uc *AuthUseCase) Register(ctx context.Context, params dto.RegisterParams) (*dto.AuthResult, error) {
	// 1. 이메일 정규화 및 비밀번호 검증
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, apperrors.Validation("Email is required")
	}
	if err := uc.validatePassword(params.Password); err != nil {
		return nil, err
	}

	// 2. 이미 존재하는 이메일인지 확인
	existing, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": email}, false)
	if err != nil {
		return nil, fmt.Errorf("이메일 중복 확인 실패: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Validation(constants.MsgEmailExists)
	}

	// 3. 비밀번호 해싱
	hashed, err := HashPassword(params.Password, uc.config.HashCost)
	if err != nil {
		return nil, fmt.Errorf("비밀번호 해싱 실패: %w", err)
	}

	// 4. 사용자 생성과 토큰 발급을 한 트랜잭션으로 처리
	user := &entity.User{
		Email:     email,
		Password:  &hashed,
		FirstName: optional(params.FirstName),
		LastName:  optional(params.LastName),
		IsActive:  true,
	}

	var tokens *dto.AuthTokens
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepository.Create(ctx, user); err != nil {
			return err
		}
		tokens, err = uc.tokenUseCase.IssuePair(ctx, user.ID)
		return err
	})
	if err != nil {
		uc.logger.Error("회원가입 실패", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	// 5. 환영 메일 (실패해도 가입은 유지)
	name := params.FirstName
	if name == "" {
		name = ExtractUsernameFromEmail(email)
	}
	if err := uc.emailUseCase.SendWelcome(ctx, email, name); err != nil {
		uc.logger.Warn("환영 메일 발송 실패", zap.String("user_id", user.ID), zap.Error(err))
	}

	uc.logger.Info("사용자 가입 완료", zap.String("user_id", user.ID))
	return &dto.AuthResult{Tokens: tokens, User: user}, nil
}

// Login 이메일과 비밀번호로 로그인
func (uc *AuthUseCase) Login(ctx context.Context, params dto.LoginParams) (*dto.AuthResult, error) {
	email := NormalizeEmail(params.Email)

	user, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": email}, false)
	if err != nil {
		return nil, fmt.Errorf("사용자 조회 실패: %w", err)
	}
	if user == nil {
		return nil, apperrors.InvalidCredentials()
	}
	if !user.IsActive {
		return nil, apperrors.AccountInactive()
	}
	if !user.HasPassword() {
		return nil, apperrors.NoPasswordSet()
	}
	if !VerifyPassword(*user.Password, params.Password) {
		uc.logger.Info("비밀번호 불일치", zap.String("user_id", user.ID))
		return nil, apperrors.InvalidCredentials()
	}

	return uc.LoginUser(ctx, user)
}

// LoginUser 마지막 로그인 시간 갱신 후 토큰 쌍 발급
func (uc *AuthUseCase) LoginUser(ctx context.Context, user *entity.User) (*dto.AuthResult, error) {
	var result *dto.AuthResult
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		updated, err := uc.userRepository.Update(ctx, user.ID, map[string]interface{}{"last_login": uc.now()})
		if err != nil {
			return err
		}
		tokens, err := uc.tokenUseCase.IssuePair(ctx, updated.ID)
		if err != nil {
			return err
		}
		result = &dto.AuthResult{Tokens: tokens, User: updated}
		return nil
	})
	if err != nil {
		uc.logger.Error("로그인 처리 실패", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// activeUserByEmail 이메일로 활성 사용자를 조회합니다.
func (uc *AuthUseCase) activeUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": NormalizeEmail(email)}, true)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.AccountInactive()
	}
	return user, nil
}

// RequestMagicLink 매직 링크 토큰 발급 및 메일 발송
func (uc *AuthUseCase) RequestMagicLink(ctx context.Context, email string) (*dto.IssuedToken, error) {
	user, err := uc.activeUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ttl := uc.tokenUseCase.TTL(entity.TokenMagic)
	issued, err := uc.tokenUseCase.Issue(ctx, entity.TokenMagic, user.ID, ttl, nil)
	if err != nil {
		return nil, err
	}

	if err := uc.emailUseCase.SendMagicLink(ctx, user.Email, issued.Token, ttl); err != nil {
		uc.logger.Warn("매직 링크 메일 발송 실패", zap.String("user_id", user.ID), zap.Error(err))
	}
	return issued, nil
}

// VerifyMagicLink 매직 링크 토큰을 소비하고 로그인합니다.
func (uc *AuthUseCase) VerifyMagicLink(ctx context.Context, token string) (*dto.AuthResult, error) {
	claims, err := uc.tokenUseCase.Verify(ctx, token, entity.TokenMagic, "Invalid token")
	if err != nil {
		return nil, err
	}

	var result *dto.AuthResult
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := uc.userRepository.FetchByID(ctx, claims.UserID)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrNotFound) {
				return apperrors.InvalidToken("Invalid token", err)
			}
			return err
		}
		if !user.IsActive {
			return apperrors.AccountInactive()
		}
		if err := uc.tokenUseCase.Revoke(ctx, token, user.ID); err != nil {
			return err
		}
		result, err = uc.LoginUser(ctx, user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RequestPasswordReset 비밀번호 재설정 토큰 발급 및 메일 발송
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) (*dto.IssuedToken, error) {
	user, err := uc.activeUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ttl := uc.tokenUseCase.TTL(entity.TokenPasswordReset)
	issued, err := uc.tokenUseCase.Issue(ctx, entity.TokenPasswordReset, user.ID, ttl, nil)
	if err != nil {
		return nil, err
	}

	if err := uc.emailUseCase.SendPasswordReset(ctx, user.Email, issued.Token, ttl); err != nil {
		uc.logger.Warn("비밀번호 재설정 메일 발송 실패", zap.String("user_id", user.ID), zap.Error(err))
	}
	return issued, nil
}

// ResetPassword 재설정 토큰을 소비하고 비밀번호를 변경합니다. 기존 세션은 모두 폐기됩니다.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	if err := uc.validatePassword(password); err != nil {
		return err
	}

	claims, err := uc.tokenUseCase.Verify(ctx, token, entity.TokenPasswordReset, "Invalid token")
	if err != nil {
		return err
	}

	hashed, err := HashPassword(password, uc.config.HashCost)
	if err != nil {
		return fmt.Errorf("비밀번호 해싱 실패: %w", err)
	}

	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.tokenUseCase.Revoke(ctx, token, claims.UserID); err != nil {
			return err
		}
		if _, err := uc.userRepository.Update(ctx, claims.UserID, map[string]interface{}{"password": hashed}); err != nil {
			return err
		}
		return uc.tokenUseCase.Logout(ctx, claims.UserID)
	})
}

// Refresh 리프레시 토큰으로 토큰 쌍 갱신
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, error) {
	if refreshToken == "" {
		return nil, apperrors.InvalidToken("Refresh token expired", nil)
	}

	claims, err := uc.tokenUseCase.Verify(ctx, refreshToken, entity.TokenRefresh, "Refresh token expired")
	if err != nil {
		return nil, err
	}
	if _, err := uc.requireActive(ctx, claims.UserID); err != nil {
		return nil, err
	}

	tokens, _, err := uc.tokenUseCase.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Logout 로그아웃
func (uc *AuthUseCase) Logout(ctx context.Context, user *entity.User) error {
	if err := uc.tokenUseCase.Logout(ctx, user.ID); err != nil {
		uc.logger.Error("로그아웃 실패", zap.String("user_id", user.ID), zap.Error(err))
		return err
	}
	return nil
}

// CurrentUser 액세스 토큰을 검증하고 사용자를 반환합니다.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, apperrors.InvalidToken(constants.MsgCredentials, nil)
	}

	claims, err := uc.tokenUseCase.Verify(ctx, accessToken, entity.TokenAccess, constants.MsgCredentials)
	if err != nil {
		return nil, err
	}
	return uc.requireActive(ctx, claims.UserID)
}

func (uc *AuthUseCase) requireActive(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepository.FetchByID(ctx, userID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidToken(constants.MsgCredentials, err)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.AccountInactive()
	}
	return user, nil
}

// RequireSuperuser 관리자 권한 확인
func (uc *AuthUseCase) RequireSuperuser(user *entity.User) error {
	if user == nil || !user.IsSuperuser {
		return apperrors.Forbidden(constants.MsgForbidden)
	}
	return nil
}
