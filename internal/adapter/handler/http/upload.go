package http

import (
	"io"
	"mime/multipart"

	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/labstack/echo/v4"
)

// formUploads 멀티파트 필드의 파일들을 엽니다. 호출자는 반환된 closer를 닫아야 합니다.
func formUploads(c echo.Context, field string) ([]dto.FileUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, apperrors.Validation("Invalid multipart form")
	}

	headers := form.File[field]
	if len(headers) == 0 {
		return nil, func() {}, apperrors.Validation("Field '" + field + "' is required")
	}

	opened := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	uploads := make([]dto.FileUpload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.Wrap(err, "failed to open uploaded file")
		}
		opened = append(opened, f)
		uploads = append(uploads, toUpload(header, f))
	}
	return uploads, closeAll, nil
}

func toUpload(header *multipart.FileHeader, body multipart.File) dto.FileUpload {
	return dto.FileUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        body,
	}
}

// optionalForm 값이 비어 있으면 nil
func optionalForm(c echo.Context, name string) *string {
	value := c.FormValue(name)
	if value == "" {
		return nil
	}
	return &value
}
