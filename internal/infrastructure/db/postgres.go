package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joboy-dev/portfolio.api/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config 데이터베이스 설정
type Config struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string
	LogLevel        string
	SlowThreshold   time.Duration
}

// Open 드라이버 설정에 따라 데이터베이스 연결을 생성합니다.
func Open(config Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	switch config.Driver {
	case "", "postgres":
		return NewPostgresDB(config, zapLogger)
	case "sqlite":
		return NewSQLiteDB(config, zapLogger)
	default:
		return nil, fmt.Errorf("지원하지 않는 데이터베이스 드라이버: %s", config.Driver)
	}
}

func gormConfig(config Config, zapLogger *zap.Logger) *gorm.Config {
	slow := config.SlowThreshold
	if slow <= 0 {
		slow = 3 * time.Second
	}

	// GORM 로거 설정
	gormLogger := logger.NewGormLogger(
		zapLogger,
		logger.GormLevel(config.LogLevel),
		slow, // Slow SQL 임계값
		true, // ErrRecordNotFound 무시
	)

	return &gorm.Config{
		Logger: gormLogger,
	}
}

// NewPostgresDB PostgreSQL 데이터베이스 연결을 생성합니다.
func NewPostgresDB(config Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.Name,
		config.SSLMode,
	)

	// DB 연결
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(config, zapLogger))
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	// 연결 풀 설정
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("SQL DB 인스턴스 획득 실패: %w", err)
	}

	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	// 연결 테스트
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("데이터베이스 핑 실패: %w", err)
	}

	zapLogger.Info("데이터베이스 연결 성공",
		zap.String("driver", "postgres"),
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("database", config.Name),
		zap.Int("max_open_conns", config.MaxOpenConns),
		zap.Int("max_idle_conns", config.MaxIdleConns),
		zap.Duration("conn_max_lifetime", config.ConnMaxLifetime),
	)

	return db, nil
}

// NewSQLiteDB SQLite 데이터베이스 연결을 생성합니다. 로컬 개발과 테스트에 사용합니다.
// SQLite는 쓰기 연결이 하나뿐이므로 연결 풀을 1로 고정합니다.
func NewSQLiteDB(config Config, zapLogger *zap.Logger) (*gorm.DB, error) {
	path := config.Path
	if path == "" {
		path = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig(config, zapLogger))
	if err != nil {
		return nil, fmt.Errorf("데이터베이스 연결 실패: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("SQL DB 인스턴스 획득 실패: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("SQLite 설정 실패: %w", err)
	}

	zapLogger.Info("데이터베이스 연결 성공",
		zap.String("driver", "sqlite"),
		zap.String("path", path),
	)

	return db, nil
}
