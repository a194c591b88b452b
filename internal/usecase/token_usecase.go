package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// TokenConfig 토큰 관련 설정
type TokenConfig struct {
	Secret                    string        // HS256 서명 키
	AccessTokenExpiry         time.Duration // 액세스 토큰 유효 기간
	RefreshTokenExpiry        time.Duration // 리프레시 토큰 유효 기간
	MagicTokenExpiry          time.Duration // 매직 링크 토큰 유효 기간
	PasswordResetExpiry       time.Duration // 비밀번호 재설정 토큰 유효 기간
	AccountReactivationExpiry time.Duration // 계정 재활성화 토큰 유효 기간
}

// TokenUseCase 토큰 유스케이스 구현체
type TokenUseCase struct {
	logger              *zap.Logger
	config              TokenConfig
	transactor          repository.Transactor
	tokenRepository     repository.Store[entity.Token]
	blacklistRepository repository.Store[entity.BlacklistedToken]
	now                 func() time.Time
}

// NewTokenUseCase 새 토큰 유스케이스 생성
func NewTokenUseCase(
	logger *zap.Logger,
	config TokenConfig,
	transactor repository.Transactor,
	tokenRepo repository.Store[entity.Token],
	blacklistRepo repository.Store[entity.BlacklistedToken],
) interfaces.TokenUseCase {
	return &TokenUseCase{
		logger:              logger,
		config:              config,
		transactor:          transactor,
		tokenRepository:     tokenRepo,
		blacklistRepository: blacklistRepo,
		now:                 time.Now,
	}
}

// TTL 토큰 유형별 유효 기간
func (uc *TokenUseCase) TTL(tokenType entity.TokenType) time.Duration {
	pick := func(configured, fallback time.Duration) time.Duration {
		if configured > 0 {
			return configured
		}
		return fallback
	}

	switch tokenType {
	case entity.TokenAccess:
		return pick(uc.config.AccessTokenExpiry, 30*time.Minute)
	case entity.TokenRefresh:
		return pick(uc.config.RefreshTokenExpiry, 7*24*time.Hour)
	case entity.TokenMagic:
		return pick(uc.config.MagicTokenExpiry, 15*time.Minute)
	case entity.TokenPasswordReset:
		return pick(uc.config.PasswordResetExpiry, 15*time.Minute)
	case entity.TokenAccountReactivation:
		return pick(uc.config.AccountReactivationExpiry, 24*time.Hour)
	default:
		return 15 * time.Minute
	}
}

// Issue 기존 토큰을 폐기하고 새 토큰을 서명하여 저장합니다.
func (uc *TokenUseCase) Issue(ctx context.Context, tokenType entity.TokenType, userID string, ttl time.Duration, extra map[string]interface{}) (*dto.IssuedToken, error) {
	if ttl <= 0 {
		ttl = uc.TTL(tokenType)
	}

	var issued *dto.IssuedToken
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// 1) 같은 사용자, 같은 유형의 유효 토큰 폐기
		if userID != "" {
			if err := uc.revokeExisting(ctx, userID, tokenType); err != nil {
				return err
			}
		}

		// 2) 클레임 구성 및 서명
		expiresAt := uc.now().Add(ttl)
		claims := jwt.MapClaims{}
		for k, v := range extra {
			claims[k] = v
		}
		if userID != "" {
			claims[constants.ClaimUserID] = userID
		}
		claims[constants.ClaimExpiry] = expiresAt.Unix()
		claims[constants.ClaimType] = string(tokenType)
		claims[constants.ClaimID] = uuid.NewString()

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(uc.config.Secret))
		if err != nil {
			uc.logger.Error("토큰 서명 실패", zap.String("type", string(tokenType)), zap.Error(err))
			return fmt.Errorf("토큰 서명 실패: %w", err)
		}

		// 3) 유효 토큰 행 저장
		record := &entity.Token{
			Token:      signed,
			TokenType:  tokenType,
			ExpiryTime: expiresAt,
			UserID:     optional(userID),
		}
		if err := uc.tokenRepository.Create(ctx, record); err != nil {
			return fmt.Errorf("토큰 저장 실패: %w", err)
		}

		issued = &dto.IssuedToken{Token: signed, ExpiresAt: expiresAt}
		return nil
	})
	if err != nil {
		return nil, err
	}

	tokensIssued.WithLabelValues(string(tokenType)).Inc()
	return issued, nil
}

// revokeExisting 사용자의 해당 유형 유효 토큰을 모두 블랙리스트에 올리고 삭제합니다.
func (uc *TokenUseCase) revokeExisting(ctx context.Context, userID string, tokenType entity.TokenType) error {
	live, _, err := uc.tokenRepository.List(ctx, repository.ListParams{
		Filters: map[string]interface{}{"user_id": userID, "token_type": string(tokenType)},
	})
	if err != nil {
		return fmt.Errorf("기존 토큰 조회 실패: %w", err)
	}

	for i := range live {
		if err := uc.revokeRecord(ctx, &live[i], userID); err != nil {
			return err
		}
	}
	return nil
}

func (uc *TokenUseCase) revokeRecord(ctx context.Context, record *entity.Token, userID string) error {
	blacklisted := &entity.BlacklistedToken{Token: record.Token, UserID: optional(userID)}
	if blacklisted.UserID == nil {
		blacklisted.UserID = record.UserID
	}
	if err := uc.blacklistRepository.Create(ctx, blacklisted); err != nil {
		return fmt.Errorf("토큰 블랙리스트 등록 실패: %w", err)
	}
	if err := uc.tokenRepository.HardDelete(ctx, record.ID); err != nil {
		return fmt.Errorf("토큰 삭제 실패: %w", err)
	}

	tokensRevoked.WithLabelValues(string(record.TokenType)).Inc()
	return nil
}

// Verify 토큰을 검증하고 클레임을 반환합니다. user_id 클레임이 없으면 거부합니다.
func (uc *TokenUseCase) Verify(ctx context.Context, token string, expected entity.TokenType, failure string) (*dto.TokenClaims, error) {
	return uc.verify(ctx, token, expected, failure, true)
}

// VerifyAnonymous 사용자 없이 발급된 토큰도 허용하는 Verify입니다.
func (uc *TokenUseCase) VerifyAnonymous(ctx context.Context, token string, expected entity.TokenType, failure string) (*dto.TokenClaims, error) {
	return uc.verify(ctx, token, expected, failure, false)
}

func (uc *TokenUseCase) verify(ctx context.Context, token string, expected entity.TokenType, failure string, requireUser bool) (*dto.TokenClaims, error) {
	if failure == "" {
		failure = constants.MsgCredentials
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(uc.config.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		uc.logger.Debug("토큰 파싱 실패", zap.String("expected", string(expected)), zap.Error(err))
		return nil, apperrors.InvalidToken(failure, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.InvalidToken(failure, nil)
	}

	userID, _ := claims[constants.ClaimUserID].(string)
	if requireUser && userID == "" {
		return nil, apperrors.InvalidToken(failure, nil)
	}

	blacklisted, err := uc.blacklistRepository.FetchOne(ctx, map[string]interface{}{"token": token}, false)
	if err != nil {
		return nil, fmt.Errorf("블랙리스트 조회 실패: %w", err)
	}
	if blacklisted != nil {
		return nil, apperrors.InvalidToken(failure, nil)
	}

	tokenType, _ := claims[constants.ClaimType].(string)
	if entity.TokenType(tokenType) != expected {
		return nil, apperrors.InvalidToken(fmt.Sprintf("Token of type '%s' expected. Got '%s'", expected, tokenType), nil)
	}

	result := &dto.TokenClaims{
		UserID: userID,
		Type:   expected,
		Extra:  make(map[string]interface{}),
	}
	if jti, ok := claims[constants.ClaimID].(string); ok {
		result.ID = jti
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}
	for k, v := range claims {
		switch k {
		case constants.ClaimUserID, constants.ClaimType, constants.ClaimExpiry, constants.ClaimID:
		default:
			result.Extra[k] = v
		}
	}

	return result, nil
}

// Revoke 토큰을 블랙리스트에 추가하고 유효 토큰 행을 삭제합니다.
// 유효 토큰 행이 이미 없으면 블랙리스트만 보장합니다.
func (uc *TokenUseCase) Revoke(ctx context.Context, token, userID string) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		live, err := uc.tokenRepository.FetchOne(ctx, map[string]interface{}{"token": token}, false)
		if err != nil {
			return fmt.Errorf("토큰 조회 실패: %w", err)
		}
		if live != nil {
			return uc.revokeRecord(ctx, live, userID)
		}

		existing, err := uc.blacklistRepository.FetchOne(ctx, map[string]interface{}{"token": token}, false)
		if err != nil {
			return fmt.Errorf("블랙리스트 조회 실패: %w", err)
		}
		if existing != nil {
			return nil
		}
		return uc.blacklistRepository.Create(ctx, &entity.BlacklistedToken{Token: token, UserID: optional(userID)})
	})
}

// IssuePair 액세스 토큰과 리프레시 토큰 발급
func (uc *TokenUseCase) IssuePair(ctx context.Context, userID string) (*dto.AuthTokens, error) {
	var tokens *dto.AuthTokens
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		access, err := uc.Issue(ctx, entity.TokenAccess, userID, 0, nil)
		if err != nil {
			return err
		}
		refresh, err := uc.Issue(ctx, entity.TokenRefresh, userID, 0, nil)
		if err != nil {
			return err
		}

		tokens = &dto.AuthTokens{
			AccessToken:  access.Token,
			RefreshToken: refresh.Token,
			ExpiresAt:    access.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Refresh 리프레시 토큰을 폐기하고 새 토큰 쌍을 발급합니다.
// 유효 토큰 행을 잠근 채 폐기하므로 같은 토큰으로 동시에 갱신해도 한 번만 성공합니다.
func (uc *TokenUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.AuthTokens, string, error) {
	const failure = "Refresh token expired"

	var (
		tokens *dto.AuthTokens
		userID string
	)
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		claims, err := uc.Verify(ctx, refreshToken, entity.TokenRefresh, failure)
		if err != nil {
			return err
		}
		userID = claims.UserID

		live, err := uc.tokenRepository.FetchOne(repository.WithRowLock(ctx), map[string]interface{}{"token": refreshToken}, false)
		if err != nil {
			return fmt.Errorf("토큰 조회 실패: %w", err)
		}
		if live == nil {
			return apperrors.InvalidToken(failure, nil)
		}
		if err := uc.revokeRecord(ctx, live, userID); err != nil {
			return err
		}

		tokens, err = uc.IssuePair(ctx, userID)
		return err
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrInternal) {
			uc.logger.Error("토큰 갱신 실패", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, "", err
	}

	return tokens, userID, nil
}

// Logout 사용자의 액세스/리프레시 토큰 폐기
func (uc *TokenUseCase) Logout(ctx context.Context, userID string) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, tokenType := range []entity.TokenType{entity.TokenAccess, entity.TokenRefresh} {
			if err := uc.revokeExisting(ctx, userID, tokenType); err != nil {
				return err
			}
		}
		return nil
	})
}
