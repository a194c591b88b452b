package db

import (
	"context"
	"fmt"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/config"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/mail"
	"github.com/joboy-dev/portfolio.api/internal/infrastructure/storage"
	"github.com/joboy-dev/portfolio.api/pkg/messaging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infrastructure 인프라스트럭처 구조체
type Infrastructure struct {
	DB             *gorm.DB
	RedisClient    *redis.Client
	Messaging      messaging.RedisClient
	EmailTemplates *mail.EmailTemplateService
	SMTPClient     *mail.SMTPClient
	Storage        repository.FileStorage

	logger *zap.Logger
}

// DatabaseConfig 설정에서 데이터베이스 연결 설정을 만듭니다.
func DatabaseConfig(cfg *config.Config) Config {
	return Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		SSLMode:         cfg.Database.SSLMode,
		LogLevel:        cfg.Database.LogLevel,
		SlowThreshold:   cfg.Database.SlowThreshold,
	}
}

// StorageConfig 설정에서 파일 저장소 설정을 만듭니다.
func StorageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Driver: cfg.Storage.Driver,
		Root:   cfg.Storage.Root,
		Local: storage.LocalConfig{
			Dir:     cfg.Storage.Local.Dir,
			BaseURL: cfg.Storage.Local.BaseURL,
		},
		S3: storage.S3Config{
			Bucket:          cfg.Storage.S3.Bucket,
			Region:          cfg.Storage.S3.Region,
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
			PublicURL:       cfg.Storage.S3.PublicURL,
			PresignExpiry:   cfg.Storage.S3.PresignExpiry,
		},
		Firebase: storage.FirebaseConfig{
			CredentialsFile: cfg.Storage.Firebase.CredentialsFile,
			Bucket:          cfg.Storage.Firebase.Bucket,
		},
	}
}

// NewInfrastructure 인프라스트럭처 초기화
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infrastructure := &Infrastructure{logger: logger}

	// 데이터베이스 연결
	var err error
	infrastructure.DB, err = Open(DatabaseConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	// Redis 설정
	redisConfig := RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	// Redis 클라이언트 초기화
	infrastructure.RedisClient, err = NewRedisClient(redisConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	// 알림 이벤트는 같은 Redis 연결로 발행합니다
	infrastructure.Messaging = messaging.NewRedisClientFromClient(infrastructure.RedisClient)

	// 이메일 템플릿 서비스 초기화
	infrastructure.EmailTemplates = mail.NewEmailTemplateService(
		cfg.Service.FrontendURL,
		cfg.Service.Name,
		cfg.Email.SenderEmail,
	)

	smtpConfig := mail.SMTPConfig{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Username: cfg.Email.SMTPUser,
		Password: cfg.Email.SMTPPass,
		From:     cfg.Email.SenderEmail,
		FromName: cfg.Email.SenderName,
	}

	// SMTP 클라이언트 초기화
	infrastructure.SMTPClient = mail.NewSMTPClient(smtpConfig, logger)

	// 파일 저장소 초기화
	infrastructure.Storage, err = storage.New(ctx, StorageConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("파일 저장소 초기화 실패: %w", err)
	}

	logger.Info("인프라스트럭처 초기화 완료",
		zap.String("database", cfg.Database.Driver),
		zap.String("redis", redisConfig.Host),
		zap.Bool("smtp", infrastructure.SMTPClient.Enabled()),
		zap.String("storage", infrastructure.Storage.Name()),
	)

	return infrastructure, nil
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	// DB 연결 종료
	sqlDB, err := i.DB.DB()
	if err != nil {
		return fmt.Errorf("DB 인스턴스 획득 실패: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("데이터베이스 연결 종료 실패: %w", err)
	}

	// Redis 연결 종료
	if err := i.RedisClient.Close(); err != nil {
		return fmt.Errorf("Redis 연결 종료 실패: %w", err)
	}

	i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	return nil
}
