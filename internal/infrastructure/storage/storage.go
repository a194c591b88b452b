// Package storage 파일 저장소 어댑터 (로컬 디스크, S3 호환 스토리지, Firebase)
package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"go.uber.org/zap"
)

// Config 저장소 설정
type Config struct {
	Driver string
	// Root 모든 객체 키 앞에 붙는 최상위 폴더
	Root  string
	Local LocalConfig
	S3    S3Config
	// Firebase
	Firebase FirebaseConfig
}

// New 드라이버 설정에 맞는 저장소 어댑터를 생성합니다.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (repository.FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.Root, cfg.Local, logger)
	case "s3":
		return NewS3Storage(ctx, cfg.Root, cfg.S3, logger)
	case "firebase":
		return NewFirebaseStorage(ctx, cfg.Root, cfg.Firebase, logger)
	default:
		return nil, fmt.Errorf("지원하지 않는 저장소 드라이버: %s", cfg.Driver)
	}
}

// ObjectKey 저장 경로 규칙: {root}/{folder}/{owner_id}/{file_name}, 소유자 ID가 없으면 생략
func ObjectKey(root, folder, ownerID, fileName string) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{root, folder, ownerID, fileName} {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return path.Join(parts...)
}

// ContentType 확장자로 MIME 타입을 추정합니다.
func ContentType(fileName, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// logDeleteFailure 삭제 실패는 주 작업을 중단시키지 않으므로 로그만 남깁니다
func logDeleteFailure(logger *zap.Logger, driver, key string, started time.Time, err error) {
	logger.Error("파일 삭제 실패",
		zap.String("driver", driver),
		zap.String("path", key),
		zap.Duration("elapsed", time.Since(started)),
		zap.Error(err),
	)
}
