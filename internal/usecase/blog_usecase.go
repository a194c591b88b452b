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
)

const blogsKind = string(entity.OwnerBlogs)

// BlogUseCase 블로그 유스케이스 구현체
type BlogUseCase struct {
	logger     *zap.Logger
	transactor repository.Transactor
	store      repository.Store[entity.Blog]
	tags       interfaces.TaxonomyUseCase
	categories interfaces.TaxonomyUseCase
}

// NewBlogUseCase 새 블로그 유스케이스 생성
func NewBlogUseCase(
	logger *zap.Logger,
	transactor repository.Transactor,
	store repository.Store[entity.Blog],
	tags interfaces.TaxonomyUseCase,
	categories interfaces.TaxonomyUseCase,
) interfaces.BlogUseCase {
	return &BlogUseCase{
		logger:     logger,
		transactor: transactor,
		store:      store,
		tags:       tags,
		categories: categories,
	}
}

// Create 블로그 글을 만들고 태그와 카테고리를 연결합니다.
func (uc *BlogUseCase) Create(ctx context.Context, blog *entity.Blog, tags, categories []string) (*dto.BlogView, error) {
	uid, err := entity.NewUniqueID(blog.TableName())
	if err != nil {
		return nil, err
	}
	blog.UniqueID = &uid
	blog.Slug = slug.Make(uid + "-" + blog.Title)

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := appendRecord[entity.Blog](ctx, uc.transactor, uc.store, blog, nil); err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := uc.tags.Attach(ctx, tags, blogsKind, blog.ID); err != nil {
				return err
			}
		}
		if len(categories) > 0 {
			return uc.categories.Attach(ctx, categories, blogsKind, blog.ID)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("블로그 생성 실패", zap.String("title", blog.Title), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("블로그 생성", zap.String("id", blog.ID), zap.String("slug", blog.Slug))
	return uc.view(ctx, blog)
}

func (uc *BlogUseCase) Get(ctx context.Context, id string) (*dto.BlogView, error) {
	blog, err := uc.store.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, blog)
}

func (uc *BlogUseCase) List(ctx context.Context, query dto.ListQuery) (*dto.Page[dto.BlogView], error) {
	page, err := listPage(ctx, uc.store, query, constants.DefaultPageSize, repository.ListParams{})
	if err != nil {
		return nil, err
	}
	views, err := uc.views(ctx, page.Items)
	if err != nil {
		return nil, err
	}
	return &dto.Page[dto.BlogView]{Items: views, Total: page.Total, Page: page.Page, Size: page.Size}, nil
}

func (uc *BlogUseCase) Update(ctx context.Context, id string, fields map[string]interface{}) (*dto.BlogView, error) {
	blog, err := uc.store.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, blog)
}

func (uc *BlogUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("블로그 삭제", zap.String("id", id))
	return nil
}

func (uc *BlogUseCase) view(ctx context.Context, blog *entity.Blog) (*dto.BlogView, error) {
	views, err := uc.views(ctx, []entity.Blog{*blog})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (uc *BlogUseCase) views(ctx context.Context, blogs []entity.Blog) ([]dto.BlogView, error) {
	ids := make([]string, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
	}

	tags, err := uc.tags.ListFor(ctx, blogsKind, ids)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.ListFor(ctx, blogsKind, ids)
	if err != nil {
		return nil, err
	}

	views := make([]dto.BlogView, len(blogs))
	for i := range blogs {
		views[i] = dto.BlogView{
			Blog:       blogs[i],
			Tags:       nonNilItems(tags[blogs[i].ID]),
			Categories: nonNilItems(categories[blogs[i].ID]),
		}
	}
	return views, nil
}
