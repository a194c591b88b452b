package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"go.uber.org/zap"
)

// taxonomyKind 태그와 카테고리의 차이를 담는 구성
type taxonomyKind[T any, L any] struct {
	label      string // 응답 메시지에 쓰는 이름 (Tag, Category)
	use        entity.OwnerUse
	linkColumn string // 연결 테이블의 항목 컬럼 (tag_id, category_id)
	toItem     func(*T) dto.TaxonomyItem
	newItem    func(ctx context.Context, input dto.TaxonomyInput) (*T, error)
	newLink    func(itemID, modelType, entityID string) *L
	linkOf     func(*L) (entityID, itemID string)
}

// TaxonomyUseCase 태그/카테고리 유스케이스 구현체
type TaxonomyUseCase[T any, PT model[T], L any, PL model[L]] struct {
	logger     *zap.Logger
	transactor repository.Transactor
	items      repository.Store[T]
	links      repository.Store[L]
	kind       taxonomyKind[T, L]
}

// NewTagUseCase 태그 유스케이스 생성
func NewTagUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	tagRepo repository.Store[entity.Tag],
	linkRepo repository.Store[entity.TagAssociation],
) interfaces.TaxonomyUseCase {
	return &TaxonomyUseCase[entity.Tag, *entity.Tag, entity.TagAssociation, *entity.TagAssociation]{
		logger:     logger.With(zap.String("taxonomy", "tag")),
		transactor: transactor,
		items:      tagRepo,
		links:      linkRepo,
		kind: taxonomyKind[entity.Tag, entity.TagAssociation]{
			label:      "Tag",
			use:        entity.UseTag,
			linkColumn: "tag_id",
			toItem: func(t *entity.Tag) dto.TaxonomyItem {
				return dto.TaxonomyItem{ID: t.ID, UniqueID: t.UniqueID, Name: t.Name, ModelType: t.ModelType, Position: t.Position}
			},
			newItem: func(_ context.Context, input dto.TaxonomyInput) (*entity.Tag, error) {
				return &entity.Tag{Name: input.Name, ModelType: input.ModelType}, nil
			},
			newLink: func(itemID, modelType, entityID string) *entity.TagAssociation {
				return &entity.TagAssociation{TagID: itemID, ModelType: modelType, EntityID: entityID}
			},
			linkOf: func(l *entity.TagAssociation) (string, string) {
				return l.EntityID, l.TagID
			},
		},
	}
}

// NewCategoryUseCase 카테고리 유스케이스 생성
func NewCategoryUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	categoryRepo repository.Store[entity.Category],
	linkRepo repository.Store[entity.CategoryAssociation],
) interfaces.TaxonomyUseCase {
	return &TaxonomyUseCase[entity.Category, *entity.Category, entity.CategoryAssociation, *entity.CategoryAssociation]{
		logger:     logger.With(zap.String("taxonomy", "category")),
		transactor: transactor,
		items:      categoryRepo,
		links:      linkRepo,
		kind: taxonomyKind[entity.Category, entity.CategoryAssociation]{
			label:      "Category",
			use:        entity.UseCategory,
			linkColumn: "category_id",
			toItem: func(c *entity.Category) dto.TaxonomyItem {
				return dto.TaxonomyItem{
					ID: c.ID, UniqueID: c.UniqueID, Name: c.Name, ModelType: c.ModelType,
					Description: c.Description, Slug: c.Slug, Position: c.Position,
				}
			},
			newItem: func(ctx context.Context, input dto.TaxonomyInput) (*entity.Category, error) {
				// 같은 슬러그가 다른 모델 종류에 있으면 모델 종류를 붙입니다
				s := slug.Make(input.Name)
				// 고유 인덱스는 삭제된 행도 포함하므로 삭제 여부와 무관하게 확인합니다
				_, taken, err := categoryRepo.List(ctx, repository.ListParams{
					Filters:        map[string]interface{}{"slug": s},
					IncludeDeleted: true,
				})
				if err != nil {
					return nil, err
				}
				if taken > 0 {
					s = slug.Make(input.Name + "-" + input.ModelType)
				}
				return &entity.Category{Name: input.Name, ModelType: input.ModelType, Description: input.Description, Slug: &s}, nil
			},
			newLink: func(itemID, modelType, entityID string) *entity.CategoryAssociation {
				return &entity.CategoryAssociation{CategoryID: itemID, ModelType: modelType, EntityID: entityID}
			},
			linkOf: func(l *entity.CategoryAssociation) (string, string) {
				return l.EntityID, l.CategoryID
			},
		},
	}
}

func (uc *TaxonomyUseCase[T, PT, L, PL]) parseModelType(modelType string) (string, error) {
	kind, err := entity.ParseOwnerKind(strings.ToLower(strings.TrimSpace(modelType)), uc.kind.use)
	if err != nil {
		return "", apperrors.Validation(err.Error())
	}
	return string(kind), nil
}

func (uc *TaxonomyUseCase[T, PT, L, PL]) findByName(ctx context.Context, name, modelType string) (*T, error) {
	return uc.items.FetchOne(ctx, map[string]interface{}{"name": strings.ToLower(name), "model_type": modelType}, false)
}

// Create 이름과 모델 종류를 소문자로 맞춘 뒤 중복을 확인하고 생성합니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) Create(ctx context.Context, input dto.TaxonomyInput) (*dto.TaxonomyItem, error) {
	input.Name = strings.ToLower(strings.TrimSpace(input.Name))
	if input.Name == "" {
		return nil, apperrors.Validation("Name is required")
	}
	modelType, err := uc.parseModelType(input.ModelType)
	if err != nil {
		return nil, err
	}
	input.ModelType = modelType

	var item dto.TaxonomyItem
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := uc.findByName(ctx, input.Name, input.ModelType)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.Validation(uc.kind.label + " already exists")
		}

		record, err := uc.kind.newItem(ctx, input)
		if err != nil {
			return err
		}
		if err := appendRecord[T, PT](ctx, uc.transactor, uc.items, record, nil); err != nil {
			return err
		}
		item = uc.kind.toItem(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Get 식별자로 조회
func (uc *TaxonomyUseCase[T, PT, L, PL]) Get(ctx context.Context, id string) (*dto.TaxonomyItem, error) {
	record, err := uc.items.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	item := uc.kind.toItem(record)
	return &item, nil
}

// List 조건 조회
func (uc *TaxonomyUseCase[T, PT, L, PL]) List(ctx context.Context, query dto.ListQuery) (*dto.Page[dto.TaxonomyItem], error) {
	page, err := listPage(ctx, uc.items, query, constants.TaxonomyPageSize, repository.ListParams{})
	if err != nil {
		return nil, err
	}

	items := make([]dto.TaxonomyItem, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, uc.kind.toItem(&page.Items[i]))
	}
	return &dto.Page[dto.TaxonomyItem]{Items: items, Total: page.Total, Page: page.Page, Size: page.Size}, nil
}

// Update 이름 변경 시 같은 모델 종류 안의 중복을 거부합니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) Update(ctx context.Context, id string, input dto.TaxonomyUpdate) (*dto.TaxonomyItem, error) {
	var item dto.TaxonomyItem
	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.items.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		current := uc.kind.toItem(record)

		fields := make(map[string]interface{})
		modelType := current.ModelType
		if input.ModelType != nil {
			if modelType, err = uc.parseModelType(*input.ModelType); err != nil {
				return err
			}
			fields["model_type"] = modelType
		}
		if input.Name != nil {
			name := strings.ToLower(strings.TrimSpace(*input.Name))
			existing, err := uc.findByName(ctx, name, modelType)
			if err != nil {
				return err
			}
			if existing != nil && PT(existing).Base().ID != current.ID {
				return apperrors.Validation(fmt.Sprintf("%s with this name already exists", uc.kind.label))
			}
			fields["name"] = name
		}
		if input.Description != nil {
			fields["description"] = *input.Description
		}
		if input.Position != nil {
			fields["position"] = *input.Position
		}

		updated, err := uc.items.Update(ctx, current.ID, fields)
		if err != nil {
			return err
		}
		item = uc.kind.toItem(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete 항목과 그 연결을 함께 소프트 삭제합니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) Delete(ctx context.Context, id string) error {
	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := uc.items.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		itemID := PT(record).Base().ID

		links, _, err := uc.links.List(ctx, repository.ListParams{Filters: map[string]interface{}{uc.kind.linkColumn: itemID}})
		if err != nil {
			return err
		}
		for i := range links {
			if err := uc.links.SoftDelete(ctx, PL(&links[i]).Base().ID); err != nil {
				return err
			}
		}
		return uc.items.Delete(ctx, itemID)
	})
}

// resolve 식별자로 찾고, 없으면 같은 모델 종류 안에서 이름으로 찾습니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) resolve(ctx context.Context, ref, modelType string) (*T, error) {
	record, err := uc.items.FetchOne(ctx, map[string]interface{}{"id": ref, "model_type": modelType}, false)
	if err != nil || record != nil {
		return record, err
	}
	return uc.findByName(ctx, ref, modelType)
}

func (uc *TaxonomyUseCase[T, PT, L, PL]) findLink(ctx context.Context, itemID, modelType, entityID string) (*L, error) {
	return uc.links.FetchOne(ctx, map[string]interface{}{
		uc.kind.linkColumn: itemID,
		"model_type":       modelType,
		"entity_id":        entityID,
	}, false)
}

// Attach 항목을 찾거나 만들고, 살아 있는 연결이 없을 때만 연결을 만듭니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) Attach(ctx context.Context, ids []string, modelType, entityID string) error {
	modelType, err := uc.parseModelType(modelType)
	if err != nil {
		return err
	}

	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, ref := range ids {
			ref = strings.TrimSpace(ref)
			if ref == "" {
				continue
			}

			record, err := uc.resolve(ctx, ref, modelType)
			if err != nil {
				return err
			}
			if record == nil {
				// 식별자를 이름으로 간주하여 새로 만듭니다
				if record, err = uc.kind.newItem(ctx, dto.TaxonomyInput{Name: strings.ToLower(ref), ModelType: modelType}); err != nil {
					return err
				}
				if err := appendRecord[T, PT](ctx, uc.transactor, uc.items, record, nil); err != nil {
					return err
				}
			}
			itemID := PT(record).Base().ID

			link, err := uc.findLink(ctx, itemID, modelType, entityID)
			if err != nil {
				return err
			}
			if link != nil {
				continue
			}
			if err := uc.links.Create(ctx, uc.kind.newLink(itemID, modelType, entityID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Detach 항목이나 연결이 없으면 건너뛰고, 있으면 연결을 소프트 삭제합니다.
func (uc *TaxonomyUseCase[T, PT, L, PL]) Detach(ctx context.Context, ids []string, modelType, entityID string) error {
	modelType, err := uc.parseModelType(modelType)
	if err != nil {
		return err
	}

	return uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, ref := range ids {
			record, err := uc.resolve(ctx, strings.TrimSpace(ref), modelType)
			if err != nil {
				return err
			}
			if record == nil {
				continue
			}

			link, err := uc.findLink(ctx, PT(record).Base().ID, modelType, entityID)
			if err != nil {
				return err
			}
			if link == nil {
				continue
			}
			if err := uc.links.SoftDelete(ctx, PL(link).Base().ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListFor 소유자 ID별 연결 항목
func (uc *TaxonomyUseCase[T, PT, L, PL]) ListFor(ctx context.Context, modelType string, entityIDs []string) (map[string][]dto.TaxonomyItem, error) {
	out := make(map[string][]dto.TaxonomyItem, len(entityIDs))
	if len(entityIDs) == 0 {
		return out, nil
	}

	links, _, err := uc.links.List(ctx, repository.ListParams{
		Filters: map[string]interface{}{"model_type": modelType, "entity_id": entityIDs},
		SortBy:  "created_at",
		Order:   "asc",
	})
	if err != nil {
		return nil, err
	}

	itemIDs := make([]string, 0)
	byItem := make(map[string][]string)
	for i := range links {
		entityID, itemID := uc.kind.linkOf(&links[i])
		if _, seen := byItem[itemID]; !seen {
			itemIDs = append(itemIDs, itemID)
		}
		byItem[itemID] = append(byItem[itemID], entityID)
	}
	if len(itemIDs) == 0 {
		return out, nil
	}

	records, _, err := uc.items.List(ctx, repository.ListParams{IDs: itemIDs, RestrictIDs: true, SortBy: "name", Order: "asc"})
	if err != nil {
		return nil, err
	}
	for i := range records {
		item := uc.kind.toItem(&records[i])
		for _, entityID := range byItem[item.ID] {
			out[entityID] = append(out[entityID], item)
		}
	}
	return out, nil
}

// EntityIDsByNames 이름 중 하나라도 연결된 소유자 ID (중복 제거)
func (uc *TaxonomyUseCase[T, PT, L, PL]) EntityIDsByNames(ctx context.Context, modelType string, names []string) ([]string, error) {
	seen := make(map[string]bool)
	ids := make([]string, 0)

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		record, err := uc.findByName(ctx, name, modelType)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}

		links, _, err := uc.links.List(ctx, repository.ListParams{Filters: map[string]interface{}{
			uc.kind.linkColumn: PT(record).Base().ID,
			"model_type":       modelType,
		}})
		if err != nil {
			return nil, err
		}
		for i := range links {
			entityID, _ := uc.kind.linkOf(&links[i])
			if !seen[entityID] {
				seen[entityID] = true
				ids = append(ids, entityID)
			}
		}
	}
	return ids, nil
}
