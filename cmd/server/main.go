package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joboy-dev/portfolio.api/internal/adapter/repository"
	"github.com/joboy-dev/portfolio.api/internal/config"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/db"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/http/middleware"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/oauth"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/storage"
	appinit "github.com/joboy-dev/portfolio.api/internal/init"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("포트폴리오 API를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
	)

	// 설정 파일의 로그 레벨 변경 감시
	if err := cfg.WatchLogLevel(); err != nil {
		logger.Warn("설정 파일 감시 실패", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. 인프라스트럭처 초기화
	infrastructure, err := db.NewInfrastructure(ctx, cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer infrastructure.Close()

	// 4. 스키마 마이그레이션
	if err := db.Migrate(infrastructure.DB, logger); err != nil {
		logger.Fatal("마이그레이션 실패", zap.Error(err))
	}

	// 5. 레포지토리 초기화
	repositories, err := repository.InitRepositories(
		infrastructure.DB,
		db.NewRedisRepository(infrastructure.RedisClient, logger),
		repository.NewMailRepository(infrastructure.SMTPClient),
	)
	if err != nil {
		logger.Fatal("레포지토리 초기화 실패", zap.Error(err))
	}

	// 6. 유스케이스 초기화
	useCases := appinit.NewUseCases(repositories, appinit.Dependencies{
		Templates: infrastructure.EmailTemplates,
		Storage:   infrastructure.Storage,
		Broker:    infrastructure.Messaging,
		Google: oauth.NewGoogleProvider(oauth.GoogleConfig{
			ClientID:     cfg.OAuth.Google.ClientID,
			ClientSecret: cfg.OAuth.Google.ClientSecret,
			RedirectURL:  cfg.OAuth.Google.RedirectURL,
		}, logger),
	}, appinit.SettingsFromConfig(cfg), logger)

	// 7. 알림 구독 워커 시작
	go func() {
		if err := useCases.NotificationUseCase.Run(ctx); err != nil {
			logger.Error("알림 워커 종료", zap.Error(err))
		}
	}()

	// 8. HTTP 서버 설정
	httpConfig := http.Config{
		Port:           cfg.Server.HTTP.Port,
		Timeout:        cfg.Server.HTTP.Timeout,
		Debug:          cfg.Server.HTTP.Debug,
		AllowedOrigins: cfg.Server.HTTP.AllowedOrigins,
		SessionSecret:  sessionSecret(cfg),
	}

	// 9. HTTP 서버 생성 및 라우트 등록
	httpServer := http.NewServer(httpConfig, logger)
	handlers := appinit.NewHandlers(useCases, cfg, logger)
	jwt := middleware.NewJWTAuthMiddleware(useCases.AuthUseCase, logger)
	httpServer.RegisterRoutes(func(api *echo.Group) {
		handlers.RegisterRoutes(api, jwt)
	})

	// 로컬 저장소는 API 서버가 직접 서빙합니다
	if local, ok := infrastructure.Storage.(*storage.LocalStorage); ok {
		httpServer.ServeStatic("/"+local.Root(), filepath.Join(local.Dir(), local.Root()))
	}

	// 10. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 종료", zap.Error(err))
		}
	}()

	// 11. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	cancel()
	if err := httpServer.Stop(); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}

// sessionSecret 세션 키가 없으면 JWT 서명 키를 사용합니다.
func sessionSecret(cfg *config.Config) string {
	if cfg.Auth.SessionSecret != "" {
		return cfg.Auth.SessionSecret
	}
	return cfg.JWT.Secret
}
