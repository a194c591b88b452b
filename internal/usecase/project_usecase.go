package usecase

import (
	"context"

	"github.com/gosimple/slug"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const projectsKind = string(entity.OwnerProjects)

// ProjectUseCase 프로젝트 유스케이스 구현체
type ProjectUseCase struct {
	logger     *zap.Logger
	transactor repository.Transactor
	store      repository.Store[entity.Project]
	tags       interfaces.TaxonomyUseCase
	categories interfaces.TaxonomyUseCase
}

// NewProjectUseCase 새 프로젝트 유스케이스 생성
func NewProjectUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	store repository.Store[entity.Project],
	tags interfaces.TaxonomyUseCase,
	categories interfaces.TaxonomyUseCase,
) interfaces.ProjectUseCase {
	return &ProjectUseCase{
		logger:     logger,
		transactor: transactor,
		store:      store,
		tags:       tags,
		categories: categories,
	}
}

// Create 프로젝트를 생성합니다.
func (uc *ProjectUseCase) Create(ctx context.Context, project *entity.Project, details dto.ProjectDetails) (*dto.ProjectView, error) {
	// 1. 슬러그에 쓰기 위해 보조 식별자를 먼저 정합니다
	uid, err := entity.NewUniqueID(project.TableName())
	if err != nil {
		return nil, err
	}
	project.UniqueID = &uid
	project.Slug = slug.Make(uid + "-" + project.Name)

	// 2. 키/값 입력을 맵으로 변환
	project.TechnicalDetails = datatypes.JSONMap(dto.KeyValueMap(details.TechnicalDetails))
	project.ChallengesAndSolutions = datatypes.JSONMap(dto.KeyValueMap(details.ChallengesAndSolutions))

	// 3. 저장과 태그 연결을 한 트랜잭션으로 처리
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := appendRecord[entity.Project](ctx, uc.transactor, uc.store, project, nil); err != nil {
			return err
		}
		if len(details.Tags) > 0 {
			return uc.tags.Attach(ctx, details.Tags, projectsKind, project.ID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("프로젝트 생성 실패", zap.String("name", project.Name), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("프로젝트 생성", zap.String("id", project.ID), zap.String("slug", project.Slug))
	return uc.view(ctx, project)
}

// Get 식별자 또는 슬러그로 조회
func (uc *ProjectUseCase) Get(ctx context.Context, id string) (*dto.ProjectView, error) {
	project, err := uc.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, project)
}

// List 태그 이름이 주어지면 그중 하나라도 붙은 프로젝트만 조회합니다.
func (uc *ProjectUseCase) List(ctx context.Context, query dto.ListQuery, tags []string) (*dto.Page[dto.ProjectView], error) {
	base := repository.ListParams{}
	if len(tags) > 0 {
		ids, err := uc.tags.EntityIDsByNames(ctx, projectsKind, tags)
		if err != nil {
			return nil, err
		}
		base.IDs = ids
		base.RestrictIDs = true
	}

	page, err := listPage(ctx, uc.store, query, constants.DefaultPageSize, base)
	if err != nil {
		return nil, err
	}

	views, err := uc.views(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.ProjectView]{Items: views, Total: page.Total, Page: page.Page, Size: page.Size}, nil
}

// Featured 위치 순서상 앞의 프로젝트
func (uc *ProjectUseCase) Featured(ctx context.Context) ([]dto.ProjectView, error) {
	projects, _, err := uc.store.List(ctx, repository.ListParams{
		SortBy:   "position",
		Order:    "asc",
		Page:     1,
		PerPage:  constants.FeaturedProjects,
		Paginate: true,
	})
	if err != nil {
		return nil, err
	}
	return uc.views(ctx, projects)
}

// Update 일반 필드를 수정하고 키/값 필드는 기존 값에 병합합니다.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, fields map[string]interface{}, details dto.ProjectDetails) (*dto.ProjectView, error) {
	var updated *entity.Project
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := uc.store.FetchByID(ctx, id)
		if err != nil {
			return err
		}

		if fields == nil {
			fields = make(map[string]interface{})
		}
		if len(details.TechnicalDetails) > 0 || len(details.TechnicalDetailsRemove) > 0 {
			fields["technical_details"] = datatypes.JSONMap(dto.MergeKeyValues(
				current.TechnicalDetails, details.TechnicalDetails, details.TechnicalDetailsRemove))
		}
		if len(details.ChallengesAndSolutions) > 0 || len(details.ChallengesAndSolutionsRemove) > 0 {
			fields["challenges_and_solutions"] = datatypes.JSONMap(dto.MergeKeyValues(
				current.ChallengesAndSolutions, details.ChallengesAndSolutions, details.ChallengesAndSolutionsRemove))
		}

		if updated, err = uc.store.Update(ctx, current.ID, fields); err != nil {
			return err
		}
		if len(details.Tags) > 0 {
			return uc.tags.Attach(ctx, details.Tags, projectsKind, current.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, updated)
}

// Delete 소프트 삭제
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("프로젝트 삭제", zap.String("id", id))
	return nil
}

func (uc *ProjectUseCase) view(ctx context.Context, project *entity.Project) (*dto.ProjectView, error) {
	views, err := uc.views(ctx, []entity.Project{*project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views 태그와 카테고리를 한 번에 조회하여 붙입니다.
func (uc *ProjectUseCase) views(ctx context.Context, projects []entity.Project) ([]dto.ProjectView, error) {
	ids := make([]string, len(projects))
	for i := range projects {
		ids[i] = projects[i].ID
	}

	tags, err := uc.tags.ListFor(ctx, projectsKind, ids)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.ListFor(ctx, projectsKind, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ProjectView, len(projects))
	for i := range projects {
		views[i] = dto.ProjectView{
			Project:    projects[i],
			Tags:       nonNilItems(tags[projects[i].ID]),
			Categories: nonNilItems(categories[projects[i].ID]),
		}
	}
	return views, nil
}

// nonNilItems JSON 응답에서 null 대신 빈 배열이 되도록 합니다.
func nonNilItems(items []dto.TaxonomyItem) []dto.TaxonomyItem {
	if items == nil {
		return []dto.TaxonomyItem{}
	}
	return items
}
