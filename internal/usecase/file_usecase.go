package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// rasterExtensions imaging으로 디코딩을 확인하는 이미지 확장자
var rasterExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "jfif": true, "png": true, "gif": true, "bmp": true, "tif": true, "tiff": true,
}

// FileConfig 업로드 제한
type FileConfig struct {
	// LimitMB 0 이하이면 크기를 검사하지 않습니다
	LimitMB           int
	AllowedExtensions []string
}

// FileUseCase 파일 업로드 유스케이스 구현체
type FileUseCase struct {
	logger     *zap.Logger
	config     FileConfig
	transactor repository.Transactor
	store      repository.Store[entity.File]
	storage    repository.FileStorage
}

// NewFileUseCase 새 파일 유스케이스 생성
func NewFileUseCase(
	logger *zap.Logger,
	config FileConfig,
	transactor repository.Transactor,
	store repository.Store[entity.File],
	storage repository.FileStorage,
) interfaces.FileUseCase {
	return &FileUseCase{
		logger:     logger,
		config:     config,
		transactor: transactor,
		store:      store,
		storage:    storage,
	}
}

// Upload 모든 파일을 먼저 검증한 뒤 저장소에 올리고 메타데이터를 기록합니다.
func (uc *FileUseCase) Upload(ctx context.Context, params dto.FileUploadParams) ([]entity.File, error) {
	// 1. 소유자 종류 검증
	kind, err := entity.ParseOwnerKind(strings.ToLower(params.ModelName), entity.UseFile)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if len(params.Files) == 0 {
		return nil, apperrors.UploadRejected("File is empty")
	}

	allowed := params.AllowedExtensions
	if len(allowed) == 0 {
		allowed = uc.config.AllowedExtensions
	}

	// 2. 본문을 읽어 검증 (하나라도 실패하면 아무것도 저장하지 않음)
	prepared := make([]preparedFile, 0, len(params.Files))
	for _, upload := range params.Files {
		p, err := uc.prepare(upload, allowed)
		if err != nil {
			fileUploads.WithLabelValues(uc.storage.Name(), "rejected").Inc()
			return nil, err
		}
		p.name = storedName(params.Name, p.stem, p.ext, len(params.Files) > 1)
		prepared = append(prepared, p)
	}

	// 3. 저장소 업로드와 행 기록
	var ownerID *string
	scope := map[string]interface{}{"model_name": string(kind), "model_id": nil}
	if params.ModelID != "" {
		ownerID = &params.ModelID
		scope["model_id"] = params.ModelID
	}

	files := make([]entity.File, 0, len(prepared))
	uploaded := make([]string, 0, len(prepared))
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, p := range prepared {
			stored, err := uc.storage.Upload(ctx, repository.UploadInput{
				Body:        bytes.NewReader(p.data),
				Size:        int64(len(p.data)),
				ContentType: p.contentType,
				FileName:    p.name,
				Folder:      string(kind),
				OwnerID:     params.ModelID,
			})
			if err != nil {
				fileUploads.WithLabelValues(uc.storage.Name(), "failed").Inc()
				return fmt.Errorf("파일 업로드 실패: %w", err)
			}
			uploaded = append(uploaded, stored.Path)

			file := entity.File{
				FileName:    p.name,
				FilePath:    stored.Path,
				FileSize:    stored.Size,
				ModelID:     ownerID,
				ModelName:   string(kind),
				URL:         stored.URL,
				Label:       params.Label,
				Description: params.Description,
			}
			if err := appendRecord[entity.File](ctx, uc.transactor, uc.store, &file, scope); err != nil {
				return err
			}
			files = append(files, file)
			fileUploads.WithLabelValues(uc.storage.Name(), "stored").Inc()
		}
		return nil
	})
	if err != nil {
		// 기록에 실패하면 이미 올린 객체를 정리합니다
		for _, key := range uploaded {
			if removed, delErr := uc.storage.Delete(context.WithoutCancel(ctx), key); !removed {
				uc.logger.Warn("업로드 정리 실패", zap.String("path", key), zap.Error(delErr))
			}
		}
		uc.logger.Error("파일 업로드 실패", zap.String("model_name", string(kind)), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("파일 업로드 완료",
		zap.String("model_name", string(kind)),
		zap.String("model_id", params.ModelID),
		zap.Int("count", len(files)),
	)
	return files, nil
}

type preparedFile struct {
	data        []byte
	stem        string
	ext         string
	name        string
	contentType string
}

// prepare 확장자, 크기, 이미지 디코딩을 검사합니다.
func (uc *FileUseCase) prepare(upload dto.FileUpload, allowed []string) (preparedFile, error) {
	if upload.Body == nil {
		return preparedFile{}, apperrors.UploadRejected("File is empty")
	}

	base := path.Base(strings.ReplaceAll(upload.FileName, "\\", "/"))
	stem, ext := base, ""
	if i := strings.LastIndex(base, "."); i >= 0 {
		stem, ext = base[:i], strings.ToLower(base[i+1:])
	}

	if len(allowed) > 0 && !containsFold(allowed, ext) {
		return preparedFile{}, apperrors.UploadRejected(fmt.Sprintf(
			"File extension '%s' is not allowed. Allowed extensions are: %s", ext, strings.Join(allowed, ", ")))
	}

	// 제한보다 1바이트 더 읽어 초과 여부를 판단합니다
	reader := upload.Body
	limit := int64(uc.config.LimitMB) * 1024 * 1024
	if limit > 0 {
		reader = io.LimitReader(upload.Body, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return preparedFile{}, fmt.Errorf("파일 읽기 실패: %w", err)
	}
	if len(data) == 0 {
		return preparedFile{}, apperrors.UploadRejected("File is empty")
	}
	if limit > 0 && int64(len(data)) > limit {
		return preparedFile{}, apperrors.UploadRejected(fmt.Sprintf("File size exceeds the limit of %d MB", uc.config.LimitMB))
	}

	if rasterExtensions[ext] {
		if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
			return preparedFile{}, apperrors.UploadRejected(fmt.Sprintf("File is not a valid '%s' image", ext))
		}
	}

	return preparedFile{data: data, stem: stem, ext: ext, contentType: upload.ContentType}, nil
}

// storedName 이름이 주어지면 그대로, 아니면 원본 이름 뒤에 난수를 붙입니다.
// 여러 파일에 같은 이름을 쓰면 덮어쓰지 않도록 난수를 붙입니다.
func storedName(name, stem, ext string, multiple bool) string {
	var out string
	switch {
	case name != "" && !multiple:
		out = name
	case name != "":
		out = name + "_" + RandomHex(8)
	default:
		out = stem + "_" + RandomHex(8)
	}
	if ext != "" {
		out += "." + ext
	}
	return strings.ReplaceAll(out, " ", "_")
}

func containsFold(items []string, value string) bool {
	for _, item := range items {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}

func (uc *FileUseCase) Get(ctx context.Context, id string) (*entity.File, error) {
	return uc.store.FetchByID(ctx, id)
}

// List 기본 50개씩, 위치 오름차순
func (uc *FileUseCase) List(ctx context.Context, query dto.ListQuery) (*dto.Page[entity.File], error) {
	return listPage(ctx, uc.store, query, constants.FilePageSize, repository.ListParams{})
}

func (uc *FileUseCase) Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.File, error) {
	return uc.store.Update(ctx, id, fields)
}

// Delete 저장된 객체를 지운 뒤 행을 물리 삭제합니다. 객체 삭제 실패는 기록만 합니다.
func (uc *FileUseCase) Delete(ctx context.Context, id string) error {
	file, err := uc.store.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	removed, err := uc.storage.Delete(ctx, file.FilePath)
	if !removed {
		uc.logger.Warn("저장소 객체 삭제 실패", zap.String("path", file.FilePath), zap.Error(err))
	}

	if err := uc.store.HardDelete(ctx, file.ID); err != nil {
		return err
	}
	uc.logger.Info("파일 삭제", zap.String("id", file.ID), zap.String("path", file.FilePath))
	return nil
}
