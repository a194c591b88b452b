package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fileConfig = usecase.FileConfig{LimitMB: 1, AllowedExtensions: []string{"png", "pdf", "txt"}}

func newFileUseCase(h *harness, storage repository.FileStorage) interfaces.FileUseCase {
	return usecase.NewFileUseCase(zap.NewNop(), fileConfig, h.repos.Transactor, h.repos.File, storage)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// storeAt 업로드 입력의 경로를 그대로 돌려주는 저장소 응답
func storeAt(input repository.UploadInput) *repository.StoredObject {
	key := "uploads/" + input.Folder + "/" + input.OwnerID + "/" + input.FileName
	return &repository.StoredObject{Path: key, URL: "http://cdn.test/" + key, Size: input.Size}
}

func TestFileUseCase_UploadValidation(t *testing.T) {
	h := newHarness(t)
	storage := new(MockFileStorage)
	uc := newFileUseCase(h, storage)
	ctx := context.Background()

	tests := []struct {
		name    string
		params  dto.FileUploadParams
		code    string
		message string
	}{
		{
			name:    "빈 파일",
			params:  dto.FileUploadParams{ModelName: "projects", Files: []dto.FileUpload{{FileName: "a.txt", Body: strings.NewReader("")}}},
			code:    apperrors.ErrUploadRejected,
			message: "File is empty",
		},
		{
			name:    "허용되지 않은 확장자",
			params:  dto.FileUploadParams{ModelName: "projects", Files: []dto.FileUpload{{FileName: "run.exe", Body: strings.NewReader("x")}}},
			code:    apperrors.ErrUploadRejected,
			message: "File extension 'exe' is not allowed. Allowed extensions are: png, pdf, txt",
		},
		{
			name: "크기 초과",
			params: dto.FileUploadParams{ModelName: "projects", Files: []dto.FileUpload{
				{FileName: "big.txt", Body: bytes.NewReader(make([]byte, 1024*1024+1))},
			}},
			code:    apperrors.ErrUploadRejected,
			message: "File size exceeds the limit of 1 MB",
		},
		{
			name:    "손상된 이미지",
			params:  dto.FileUploadParams{ModelName: "projects", Files: []dto.FileUpload{{FileName: "logo.png", Body: strings.NewReader("not a png")}}},
			code:    apperrors.ErrUploadRejected,
			message: "File is not a valid 'png' image",
		},
		{
			name:    "잘못된 소유자 종류",
			params:  dto.FileUploadParams{ModelName: "planets", Files: []dto.FileUpload{{FileName: "a.txt", Body: strings.NewReader("x")}}},
			code:    apperrors.ErrInvalidArgument,
			message: "'planets' is not a valid model type for file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Upload(ctx, tt.params)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.code))
			assert.Equal(t, tt.message, appMessage(t, err))
		})
	}

	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestFileUseCase_Upload(t *testing.T) {
	h := newHarness(t)
	storage := new(MockFileStorage)
	uc := newFileUseCase(h, storage)
	ctx := context.Background()

	storage.On("Upload", mock.Anything, mock.Anything).Return(storeAt, nil)

	t.Run("이름 지정", func(t *testing.T) {
		files, err := uc.Upload(ctx, dto.FileUploadParams{
			ModelName: "projects",
			ModelID:   "project-1",
			Name:      "cover image",
			Label:     ptr("Cover"),
			Files:     []dto.FileUpload{{FileName: "original.png", ContentType: "image/png", Body: bytes.NewReader(pngBytes(t))}},
		})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "cover_image.png", files[0].FileName)
		assert.Equal(t, "uploads/projects/project-1/cover_image.png", files[0].FilePath)
		assert.Equal(t, "http://cdn.test/uploads/projects/project-1/cover_image.png", files[0].URL)
		assert.Equal(t, "Cover", *files[0].Label)
		assert.Equal(t, 0, files[0].Position)
	})

	t.Run("여러 파일", func(t *testing.T) {
		files, err := uc.Upload(ctx, dto.FileUploadParams{
			ModelName: "projects",
			ModelID:   "project-1",
			Files: []dto.FileUpload{
				{FileName: "my notes.txt", Body: strings.NewReader("hello")},
				{FileName: "brief.pdf", Body: strings.NewReader("%PDF-1.4")},
			},
		})
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Regexp(t, `^my_notes_[0-9a-f]{16}\.txt$`, files[0].FileName)
		assert.Regexp(t, `^brief_[0-9a-f]{16}\.pdf$`, files[1].FileName)
		assert.Equal(t, int64(5), files[0].FileSize)
		assert.Equal(t, 1, files[0].Position)
		assert.Equal(t, 2, files[1].Position)
	})

	t.Run("소유자별 위치", func(t *testing.T) {
		files, err := uc.Upload(ctx, dto.FileUploadParams{
			ModelName: "projects",
			ModelID:   "project-2",
			Files:     []dto.FileUpload{{FileName: "a.txt", Body: strings.NewReader("a")}},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, files[0].Position)
	})

	page, err := uc.List(ctx, dto.ListQuery{Filters: map[string]interface{}{"model_name": "projects", "model_id": "project-1"}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 50, page.Size)
	assert.Equal(t, "cover_image.png", page.Items[0].FileName)
	storage.AssertNumberOfCalls(t, "Upload", 4)
}

func TestFileUseCase_UploadFailureCleansUp(t *testing.T) {
	h := newHarness(t)
	storage := new(MockFileStorage)
	uc := newFileUseCase(h, storage)
	ctx := context.Background()

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in repository.UploadInput) bool {
		return strings.HasPrefix(in.FileName, "first")
	})).Return(&repository.StoredObject{Path: "uploads/general/first.txt", URL: "u", Size: 1}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket unavailable"))
	storage.On("Delete", mock.Anything, "uploads/general/first.txt").Return(true, nil)

	_, err := uc.Upload(ctx, dto.FileUploadParams{
		ModelName: "general",
		Files: []dto.FileUpload{
			{FileName: "first.txt", Body: strings.NewReader("1")},
			{FileName: "second.txt", Body: strings.NewReader("2")},
		},
	})
	require.Error(t, err)

	count, err := h.repos.File.Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	storage.AssertCalled(t, "Delete", mock.Anything, "uploads/general/first.txt")
}

func TestFileUseCase_UploadCleanupFailureIsLogged(t *testing.T) {
	h := newHarness(t)
	storage := new(MockFileStorage)
	core, logs := observer.New(zapcore.WarnLevel)
	uc := usecase.NewFileUseCase(zap.New(core), fileConfig, h.repos.Transactor, h.repos.File, storage)
	ctx := context.Background()

	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in repository.UploadInput) bool {
		return strings.HasPrefix(in.FileName, "first")
	})).Return(&repository.StoredObject{Path: "uploads/general/first.txt", URL: "u", Size: 1}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("bucket unavailable"))
	storage.On("Delete", mock.Anything, "uploads/general/first.txt").Return(false, errors.New("access denied"))

	_, err := uc.Upload(ctx, dto.FileUploadParams{
		ModelName: "general",
		Files: []dto.FileUpload{
			{FileName: "first.txt", Body: strings.NewReader("1")},
			{FileName: "second.txt", Body: strings.NewReader("2")},
		},
	})
	require.Error(t, err)

	cleanup := logs.FilterMessage("업로드 정리 실패").All()
	require.Len(t, cleanup, 1)
	assert.Equal(t, "uploads/general/first.txt", cleanup[0].ContextMap()["path"])
	assert.Equal(t, "access denied", cleanup[0].ContextMap()["error"])
}

func TestFileUseCase_Delete(t *testing.T) {
	h := newHarness(t)
	storage := new(MockFileStorage)
	uc := newFileUseCase(h, storage)
	ctx := context.Background()

	storage.On("Upload", mock.Anything, mock.Anything).Return(&repository.StoredObject{Path: "uploads/general/a.txt", URL: "u", Size: 1}, nil)
	files, err := uc.Upload(ctx, dto.FileUploadParams{
		ModelName: "general",
		Files:     []dto.FileUpload{{FileName: "a.txt", Body: strings.NewReader("a")}},
	})
	require.NoError(t, err)

	// 저장소 삭제가 실패해도 행은 삭제됩니다
	storage.On("Delete", mock.Anything, "uploads/general/a.txt").Return(false, errors.New("gone"))
	require.NoError(t, uc.Delete(ctx, files[0].ID))

	_, err = uc.Get(ctx, files[0].ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
	storage.AssertExpectations(t)
}
