package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"go.uber.org/zap"
)

// S3Config S3 호환 스토리지(AWS S3, MinIO) 설정
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	// PublicURL 설정되면 객체 URL을 {PublicURL}/{key}로 만듭니다
	PublicURL     string
	PresignExpiry time.Duration
}

// S3Storage S3 호환 저장소
type S3Storage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	root          string
	config        S3Config
	logger        *zap.Logger
}

// NewS3Storage S3 클라이언트를 초기화하고 저장소를 생성합니다.
func NewS3Storage(ctx context.Context, root string, cfg S3Config, logger *zap.Logger) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 버킷이 설정되지 않았습니다")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Error("AWS S3 설정 로드 실패", zap.Error(err))
		return nil, fmt.Errorf("AWS S3 설정 로드 실패: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	logger.Info("S3 클라이언트가 성공적으로 초기화되었습니다",
		zap.String("bucket", cfg.Bucket),
		zap.String("endpoint", cfg.Endpoint),
	)

	return &S3Storage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		root:          root,
		config:        cfg,
		logger:        logger,
	}, nil
}

// Name 어댑터 이름
func (s *S3Storage) Name() string { return "s3" }

// Upload 객체를 업로드하고 공개 URL을 반환합니다.
// 서명 계산을 위해 본문을 메모리에 올립니다. 업로드 크기는 호출 전에 제한됩니다.
func (s *S3Storage) Upload(ctx context.Context, input repository.UploadInput) (*repository.StoredObject, error) {
	key := ObjectKey(s.root, input.Folder, input.OwnerID, input.FileName)

	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("업로드 파일 읽기 실패: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(input.FileName, input.ContentType)),
	})
	if err != nil {
		s.logger.Error("S3 업로드 실패", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to upload file to s3: %w", err)
	}

	url, err := s.objectURL(ctx, key)
	if err != nil {
		return nil, err
	}

	s.logger.Info("S3 업로드 완료",
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return &repository.StoredObject{Path: key, URL: url, Size: int64(len(data))}, nil
}

// objectURL 공개 URL을 만듭니다. PublicURL이 없으면 인라인 서명 URL에서 쿼리를 제거해 사용합니다.
func (s *S3Storage) objectURL(ctx context.Context, key string) (string, error) {
	if s.config.PublicURL != "" {
		return strings.TrimRight(s.config.PublicURL, "/") + "/" + key, nil
	}

	expiry := s.config.PresignExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	presigned, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.config.Bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("inline"),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	url, _, _ := strings.Cut(presigned.URL, "?")
	return url, nil
}

// Delete 객체를 삭제합니다.
func (s *S3Storage) Delete(ctx context.Context, key string) (bool, error) {
	started := time.Now()
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logDeleteFailure(s.logger, s.Name(), key, started, err)
		return false, nil
	}

	s.logger.Info("S3 객체 삭제 완료", zap.String("key", key))
	return true, nil
}
