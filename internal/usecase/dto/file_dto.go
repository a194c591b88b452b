package dto

import "io"

// FileUpload 업로드할 파일 하나
type FileUpload struct {
	// FileName 원본 파일 이름 (확장자 포함)
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileUploadParams 파일 업로드 매개변수
type FileUploadParams struct {
	Files     []FileUpload
	ModelName string
	ModelID   string
	// Name 지정 시 확장자를 제외한 저장 파일 이름
	Name        string
	Label       *string
	Description *string
	// AllowedExtensions 비어 있으면 설정의 허용 확장자를 사용합니다
	AllowedExtensions []string
}
