package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FirebaseConfig Firebase Storage 설정
type FirebaseConfig struct {
	CredentialsFile string
	Bucket          string
}

// FirebaseStorage Firebase Storage 저장소
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
	root       string
	logger     *zap.Logger
}

// NewFirebaseStorage Firebase 앱을 초기화하고 버킷 핸들을 생성합니다.
func NewFirebaseStorage(ctx context.Context, root string, cfg FirebaseConfig, logger *zap.Logger) (*FirebaseStorage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("Firebase 버킷이 설정되지 않았습니다")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.Bucket}, opts...)
	if err != nil {
		return nil, fmt.Errorf("Firebase 앱 초기화 실패: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("Firebase Storage 클라이언트 생성 실패: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("Firebase 버킷 조회 실패: %w", err)
	}

	logger.Info("Firebase Storage 초기화 완료", zap.String("bucket", cfg.Bucket))

	return &FirebaseStorage{
		bucket:     bucket,
		bucketName: cfg.Bucket,
		root:       root,
		logger:     logger,
	}, nil
}

// Name 어댑터 이름
func (s *FirebaseStorage) Name() string { return "firebase" }

// Upload 객체를 업로드하고 다운로드 토큰이 포함된 URL을 반환합니다.
func (s *FirebaseStorage) Upload(ctx context.Context, input repository.UploadInput) (*repository.StoredObject, error) {
	key := ObjectKey(s.root, input.Folder, input.OwnerID, input.FileName)
	token := uuid.NewString()

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = ContentType(input.FileName, input.ContentType)
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	written, err := io.Copy(w, input.Body)
	if err != nil {
		_ = w.Close()
		s.logger.Error("Firebase 업로드 실패", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("Firebase 업로드 실패: %w", err)
	}
	if err := w.Close(); err != nil {
		s.logger.Error("Firebase 업로드 실패", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("Firebase 업로드 실패: %w", err)
	}

	s.logger.Info("Firebase 업로드 완료",
		zap.String("key", key),
		zap.Int64("size", written),
	)

	return &repository.StoredObject{
		Path: key,
		URL:  DownloadURL(s.bucketName, key, token),
		Size: written,
	}, nil
}

// Delete 객체를 삭제합니다. 이미 없는 객체도 실패로 보고합니다.
func (s *FirebaseStorage) Delete(ctx context.Context, key string) (bool, error) {
	started := time.Now()
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			s.logger.Warn("삭제할 Firebase 객체가 없습니다", zap.String("key", key))
			return false, nil
		}
		logDeleteFailure(s.logger, s.Name(), key, started, err)
		return false, nil
	}

	s.logger.Info("Firebase 객체 삭제 완료", zap.String("key", key))
	return true, nil
}

// DownloadURL Firebase 다운로드 토큰 URL
func DownloadURL(bucket, key, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(key), token)
}
