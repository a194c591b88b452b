package init

import (
	"github.com/joboy-dev/portfolio.api/internal/config"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
)

// SettingsFromConfig 애플리케이션 설정에서 유스케이스 설정을 만듭니다.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Token: usecase.TokenConfig{
			Secret:                    cfg.JWT.Secret,
			AccessTokenExpiry:         cfg.JWT.AccessTokenExpiry,
			RefreshTokenExpiry:        cfg.JWT.RefreshTokenExpiry,
			MagicTokenExpiry:          cfg.JWT.MagicTokenExpiry,
			PasswordResetExpiry:       cfg.JWT.PasswordResetExpiry,
			AccountReactivationExpiry: cfg.JWT.AccountReactivationExpiry,
		},
		Auth: usecase.AuthConfig{
			HashCost:          cfg.Auth.HashCost,
			PasswordMinLength: cfg.Auth.PasswordMinLength,
		},
		File: usecase.FileConfig{
			LimitMB:           cfg.Upload.LimitMB,
			AllowedExtensions: cfg.Upload.AllowedExtensions,
		},
		NotifyTo: cfg.Email.NotifyTo,
	}
}
