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

// UserUseCase 사용자 관리 유스케이스 구현체
type UserUseCase struct {
	logger         *zap.Logger
	config         AuthConfig
	transactor     repository.Transactor
	userRepository repository.Store[entity.User]
	tokenUseCase   interfaces.TokenUseCase
	emailUseCase   interfaces.EmailUseCase
}

// NewUserUseCase 새 사용자 유스케이스 생성
func NewUserUseCase(
	logger *zap.Logger,
	config AuthConfig,
	transactor repository.Transactor,
	userRepo repository.Store[entity.User],
	tokenUC interfaces.TokenUseCase,
	emailUC interfaces.EmailUseCase,
) interfaces.UserUseCase {
	return &UserUseCase{
		logger:         logger,
		config:         config,
		transactor:     transactor,
		userRepository: userRepo,
		tokenUseCase:   tokenUC,
		emailUseCase:   emailUC,
	}
}

// List 사용자 목록
func (uc *UserUseCase) List(ctx context.Context, query dto.ListQuery) (*dto.Page[entity.User], error) {
	return listPage(ctx, uc.userRepository, query, constants.DefaultPageSize, repository.ListParams{})
}

// Get 사용자 조회
func (uc *UserUseCase) Get(ctx context.Context, id string) (*entity.User, error) {
	return uc.userRepository.FetchByID(ctx, id)
}

// UpdateMe 본인 정보 수정
func (uc *UserUseCase) UpdateMe(ctx context.Context, user *entity.User, params dto.UpdateMeParams) (*entity.User, error) {
	fields := make(map[string]interface{})

	// 1. 비밀번호 변경: 기존 비밀번호 확인 후 해싱
	if params.Password != nil {
		if params.OldPassword == nil {
			return nil, apperrors.Validation("Old password is required to change password")
		}
		if !user.HasPassword() {
			return nil, apperrors.NoPasswordSet()
		}
		if !VerifyPassword(*user.Password, *params.OldPassword) {
			return nil, apperrors.InvalidCredentials()
		}
		if *params.Password == *params.OldPassword {
			return nil, apperrors.Validation(constants.MsgSamePassword)
		}
		if len(*params.Password) < uc.config.PasswordMinLength {
			return nil, apperrors.Validation(fmt.Sprintf("Password must be at least %d characters", uc.config.PasswordMinLength))
		}
		hashed, err := HashPassword(*params.Password, uc.config.HashCost)
		if err != nil {
			return nil, fmt.Errorf("비밀번호 해싱 실패: %w", err)
		}
		fields["password"] = hashed
	}

	// 2. 이메일 변경: 다른 사용자가 사용 중이면 거부
	if params.Email != nil {
		email := NormalizeEmail(*params.Email)
		if email == "" {
			return nil, apperrors.Validation("Email is required")
		}
		if email != user.Email {
			existing, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": email}, false)
			if err != nil {
				return nil, fmt.Errorf("이메일 중복 확인 실패: %w", err)
			}
			if existing != nil {
				return nil, apperrors.Validation(constants.MsgEmailInUse)
			}
			fields["email"] = email
		}
	}

	// 3. 프로필 필드
	if params.FirstName != nil {
		fields["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		fields["last_name"] = *params.LastName
	}
	if params.ProfilePicture != nil {
		fields["profile_picture"] = *params.ProfilePicture
	}

	if len(fields) == 0 {
		return user, nil
	}
	return uc.userRepository.Update(ctx, user.ID, fields)
}

// Deactivate 계정 비활성화. 발급된 세션 토큰도 폐기합니다
func (uc *UserUseCase) Deactivate(ctx context.Context, user *entity.User) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepository.Update(ctx, user.ID, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		return uc.tokenUseCase.Logout(ctx, user.ID)
	})
}

// RequestReactivation 재활성화 토큰 발급 및 메일 발송
func (uc *UserUseCase) RequestReactivation(ctx context.Context, email string) (*dto.IssuedToken, error) {
	user, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": NormalizeEmail(email)}, true)
	if err != nil {
		return nil, err
	}

	ttl := uc.tokenUseCase.TTL(entity.TokenAccountReactivation)
	issued, err := uc.tokenUseCase.Issue(ctx, entity.TokenAccountReactivation, user.ID, ttl, nil)
	if err != nil {
		return nil, err
	}

	if err := uc.emailUseCase.SendReactivation(ctx, user.Email, issued.Token, ttl); err != nil {
		uc.logger.Warn("재활성화 메일 발송 실패", zap.String("user_id", user.ID), zap.Error(err))
	}
	return issued, nil
}

// Reactivate 재활성화 토큰을 소비하고 계정을 활성화합니다.
func (uc *UserUseCase) Reactivate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokenUseCase.Verify(ctx, token, entity.TokenAccountReactivation, "Invalid token")
	if err != nil {
		return nil, err
	}

	var user *entity.User
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.tokenUseCase.Revoke(ctx, token, claims.UserID); err != nil {
			return err
		}
		user, err = uc.userRepository.Update(ctx, claims.UserID, map[string]interface{}{"is_active": true})
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("계정 재활성화", zap.String("user_id", user.ID))
	return user, nil
}

// DeleteAccount 본인 계정 소프트 삭제 후 토큰 폐기
func (uc *UserUseCase) DeleteAccount(ctx context.Context, user *entity.User) error {
	return uc.Delete(ctx, user.ID)
}

// Delete 사용자 소프트 삭제 후 토큰 폐기
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := uc.userRepository.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.userRepository.SoftDelete(ctx, user.ID); err != nil {
			return err
		}
		return uc.tokenUseCase.Logout(ctx, user.ID)
	})
}

// EnsureSuperuser 관리자 계정을 만들거나 기존 계정을 승격합니다.
func (uc *UserUseCase) EnsureSuperuser(ctx context.Context, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.Validation("Email is required")
	}

	existing, err := uc.userRepository.FetchOne(ctx, map[string]interface{}{"email": email}, false)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"is_superuser": true, "is_active": true}
	if password != "" {
		if len(password) < uc.config.PasswordMinLength {
			return nil, apperrors.Validation(fmt.Sprintf("Password must be at least %d characters", uc.config.PasswordMinLength))
		}
		hashed, err := HashPassword(password, uc.config.HashCost)
		if err != nil {
			return nil, fmt.Errorf("비밀번호 해싱 실패: %w", err)
		}
		fields["password"] = hashed
	}

	if existing != nil {
		uc.logger.Info("기존 사용자를 관리자로 승격", zap.String("user_id", existing.ID))
		return uc.userRepository.Update(ctx, existing.ID, fields)
	}

	if password == "" {
		return nil, apperrors.Validation("Password is required for a new superuser")
	}
	hashed := fields["password"].(string)
	user := &entity.User{Email: email, Password: &hashed, IsActive: true, IsSuperuser: true}
	if err := uc.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("관리자 생성", zap.String("user_id", user.ID))
	return user, nil
}
