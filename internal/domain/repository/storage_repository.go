package repository

import (
	"context"
	"io"
)

// UploadInput 저장소에 올릴 파일 정보
type UploadInput struct {
	Body        io.Reader
	Size        int64
	ContentType string
	// FileName 최종 저장 파일 이름 (확장자 포함)
	FileName string
	// Folder 소유자 종류 (model_name)
	Folder string
	// OwnerID 소유자 ID, 없으면 폴더 바로 아래에 저장합니다
	OwnerID string
}

// StoredObject 업로드 결과
type StoredObject struct {
	// Path 삭제 시 사용하는 저장소 내부 경로 또는 키
	Path string
	// URL 공개 접근 URL
	URL  string
	Size int64
}

// FileStorage 파일 저장소 어댑터 계약 (로컬 디스크, S3 호환, Firebase)
type FileStorage interface {
	// Name 어댑터 이름
	Name() string

	// Upload 파일을 저장합니다. 실패는 그대로 반환됩니다
	Upload(ctx context.Context, input UploadInput) (*StoredObject, error)

	// Delete 파일을 삭제합니다. 실패는 로그로 남기고 false를 반환합니다
	Delete(ctx context.Context, path string) (bool, error)
}
