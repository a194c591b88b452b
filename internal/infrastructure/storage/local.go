package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"go.uber.org/zap"
)

// LocalConfig 로컬 디스크 저장소 설정
type LocalConfig struct {
	// Dir 저장 루트가 위치할 기준 디렉토리
	Dir string
	// BaseURL 저장된 파일을 서빙하는 API 주소
	BaseURL string
}

// LocalStorage 로컬 디스크 저장소
type LocalStorage struct {
	root    string
	dir     string
	baseURL string
	logger  *zap.Logger
}

// NewLocalStorage 로컬 저장소 생성
func NewLocalStorage(root string, cfg LocalConfig, logger *zap.Logger) (*LocalStorage, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("저장소 경로 확인 실패: %w", err)
	}

	return &LocalStorage{
		root:    root,
		dir:     abs,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
	}, nil
}

// Name 어댑터 이름
func (s *LocalStorage) Name() string { return "local" }

// Dir 정적 파일 서빙에 사용할 기준 디렉토리
func (s *LocalStorage) Dir() string { return s.dir }

// Root 객체 키 접두사
func (s *LocalStorage) Root() string { return s.root }

// resolve 객체 키를 기준 디렉토리 안의 절대 경로로 변환합니다
func (s *LocalStorage) resolve(key string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(key))
	if full != s.dir && !strings.HasPrefix(full, s.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("허용되지 않는 파일 경로: %s", key)
	}
	return full, nil
}

// Upload 파일을 디스크에 저장합니다.
func (s *LocalStorage) Upload(ctx context.Context, input repository.UploadInput) (*repository.StoredObject, error) {
	key := ObjectKey(s.root, input.Folder, input.OwnerID, input.FileName)
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		s.logger.Error("저장 디렉토리 생성 실패", zap.String("path", full), zap.Error(err))
		return nil, fmt.Errorf("저장 디렉토리 생성 실패: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		s.logger.Error("파일 생성 실패", zap.String("path", full), zap.Error(err))
		return nil, fmt.Errorf("파일 생성 실패: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, input.Body)
	if err != nil {
		s.logger.Error("파일 쓰기 실패", zap.String("path", full), zap.Error(err))
		_ = os.Remove(full)
		return nil, fmt.Errorf("파일 쓰기 실패: %w", err)
	}

	s.logger.Info("파일 저장 완료",
		zap.String("path", key),
		zap.Int64("size", written),
	)

	url := key
	if s.baseURL != "" {
		url = s.baseURL + "/" + key
	}

	return &repository.StoredObject{Path: key, URL: url, Size: written}, nil
}

// Delete 디스크에서 파일을 삭제합니다.
func (s *LocalStorage) Delete(ctx context.Context, key string) (bool, error) {
	started := time.Now()
	full, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if err := os.Remove(full); err != nil {
		logDeleteFailure(s.logger, s.Name(), key, started, err)
		return false, nil
	}

	s.logger.Info("파일 삭제 완료", zap.String("path", key))
	return true, nil
}
