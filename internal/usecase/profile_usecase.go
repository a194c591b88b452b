package usecase

import (
	"context"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// profileImageExtensions 프로필 이미지 허용 확장자
var profileImageExtensions = []string{"jpg", "jpeg", "png", "jfif", "svg"}

// ProfileUseCase 단일 프로필 유스케이스 구현체
type ProfileUseCase struct {
	logger     *zap.Logger
	transactor repository.Transactor
	store      repository.Store[entity.Profile]
	projects   repository.Store[entity.Project]
	skills     repository.Store[entity.Skill]
	files      interfaces.FileUseCase
}

// NewProfileUseCase 새 프로필 유스케이스 생성
func NewProfileUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	store repository.Store[entity.Profile],
	projects repository.Store[entity.Project],
	skills repository.Store[entity.Skill],
	files interfaces.FileUseCase,
) interfaces.ProfileUseCase {
	return &ProfileUseCase{
		logger:     logger,
		transactor: transactor,
		store:      store,
		projects:   projects,
		skills:     skills,
		files:      files,
	}
}

// Create 프로필이 없을 때만 생성합니다.
func (uc *ProfileUseCase) Create(ctx context.Context, profile *entity.Profile) (*dto.ProfileView, error) {
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := uc.store.Count(ctx, nil)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.Validation("Profile already exists")
		}
		return uc.store.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("프로필 생성", zap.String("id", profile.ID))
	return uc.view(ctx, profile)
}

func (uc *ProfileUseCase) current(ctx context.Context) (*entity.Profile, error) {
	profile, err := uc.store.FetchOne(ctx, nil, false)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NotFound("Profile not found")
	}
	return profile, nil
}

// Get 프로필과 계산 필드
func (uc *ProfileUseCase) Get(ctx context.Context) (*dto.ProfileView, error) {
	profile, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, profile)
}

func (uc *ProfileUseCase) Update(ctx context.Context, fields map[string]interface{}) (*dto.ProfileView, error) {
	profile, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := uc.store.Update(ctx, profile.ID, fields)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, updated)
}

func (uc *ProfileUseCase) Delete(ctx context.Context) error {
	profile, err := uc.current(ctx)
	if err != nil {
		return err
	}
	if err := uc.store.Delete(ctx, profile.ID); err != nil {
		return err
	}
	uc.logger.Info("프로필 삭제", zap.String("id", profile.ID))
	return nil
}

// UploadImage 이미지를 profile 폴더에 올리고 image_url을 바꿉니다.
func (uc *ProfileUseCase) UploadImage(ctx context.Context, upload dto.FileUpload) (*dto.ProfileView, error) {
	profile, err := uc.current(ctx)
	if err != nil {
		return nil, err
	}

	files, err := uc.files.Upload(ctx, dto.FileUploadParams{
		Files:             []dto.FileUpload{upload},
		ModelName:         string(entity.OwnerProfile),
		ModelID:           profile.ID,
		Label:             strPtr("Profile"),
		Description:       strPtr("Profile image"),
		AllowedExtensions: profileImageExtensions,
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.store.Update(ctx, profile.ID, map[string]interface{}{"image_url": files[0].URL})
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, updated)
}

func (uc *ProfileUseCase) view(ctx context.Context, profile *entity.Profile) (*dto.ProfileView, error) {
	projects, err := uc.projects.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	skills, err := uc.skills.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileView{
		Profile:       *profile,
		FullName:      profile.FullName(),
		ProjectsCount: projects,
		SkillsCount:   skills,
	}, nil
}
