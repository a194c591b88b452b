// File: pkg/logger/gorm_logger.go
package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger는 gorm의 logger.Interface를 구현하며, 모든 GORM 로그를 zap 으로 기록합니다.
type GormLogger struct {
	logger *zap.Logger
	// LogLevel은 기록할 로그의 최소 레벨입니다. (Silent, Error, Warn, Info)
	LogLevel gormlogger.LogLevel
	// SlowThreshold보다 오래 걸린 쿼리는 Warn 레벨로 기록합니다. 0이면 사용하지 않습니다.
	SlowThreshold time.Duration
	// IgnoreRecordNotFoundError가 true이면 gorm.ErrRecordNotFound는 기록하지 않습니다.
	IgnoreRecordNotFoundError bool
}

// NewGormLogger 지정한 옵션을 가진 GORM 로거를 생성합니다.
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, ignoreRecordNotFoundError bool) *GormLogger {
	return &GormLogger{
		logger:                    zapLogger.Named("gorm"),
		LogLevel:                  level,
		SlowThreshold:             slowThreshold,
		IgnoreRecordNotFoundError: ignoreRecordNotFoundError,
	}
}

// GormLevel 설정 문자열을 GORM 로그 레벨로 변환합니다.
func GormLevel(value string) gormlogger.LogLevel {
	switch value {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode는 로그 레벨을 변경한 새로운 로거 인스턴스를 반환합니다.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info는 일반 정보를 기록합니다.
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel < gormlogger.Info {
		return
	}
	l.logger.Sugar().Infof(msg, data...)
}

// Warn는 경고 로그를 기록합니다.
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel < gormlogger.Warn {
		return
	}
	l.logger.Sugar().Warnf(msg, data...)
}

// Error는 에러 로그를 기록합니다.
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel < gormlogger.Error {
		return
	}
	l.logger.Sugar().Errorf(msg, data...)
}

// Trace는 쿼리 실행 시간, SQL, 영향을 받은 행 수, 에러를 기록합니다.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.LogLevel >= gormlogger.Error && (!l.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)):
		sql, rows := fc()
		l.logger.Error("GORM Trace Error",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn("GORM Slow Query",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", l.SlowThreshold),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	case l.LogLevel >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug("GORM Query",
			zap.Duration("elapsed", elapsed),
			zap.String("sql", sql),
			zap.Int64("rows", rows),
		)
	}
}
