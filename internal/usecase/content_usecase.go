package usecase

import (
	"context"
	"fmt"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	"go.uber.org/zap"
)

// model 콘텐츠 유스케이스의 타입 제약. *T가 엔티티 계약을 구현해야 합니다.
type model[T any] interface {
	*T
	entity.Model
}

// ContentUseCase 테이블 전체를 형제 범위로 쓰는 콘텐츠의 공통 CRUD 구현체
type ContentUseCase[T any, PT model[T]] struct {
	logger      *zap.Logger
	transactor  repository.Transactor
	store       repository.Store[T]
	defaultSize int
}

// NewContentUseCase 새 콘텐츠 유스케이스 생성
func NewContentUseCase[T any, PT model[T]](
	logger *zap.Logger,
	transactor repository.Transactor,
	store repository.Store[T],
) interfaces.ContentUseCase[T] {
	return &ContentUseCase[T, PT]{
		logger:      logger.With(zap.String("table", PT(new(T)).TableName())),
		transactor:  transactor,
		store:       store,
		defaultSize: constants.DefaultPageSize,
	}
}

// Create 마지막 위치 뒤에 추가
func (uc *ContentUseCase[T, PT]) Create(ctx context.Context, record *T) (*T, error) {
	if err := appendRecord[T, PT](ctx, uc.transactor, uc.store, record, nil); err != nil {
		uc.logger.Error("레코드 생성 실패", zap.Error(err))
		return nil, err
	}
	uc.logger.Info("레코드 생성", zap.String("id", PT(record).Base().ID))
	return record, nil
}

// Get 식별자로 조회
func (uc *ContentUseCase[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return uc.store.FetchByID(ctx, id)
}

// List 조건 조회
func (uc *ContentUseCase[T, PT]) List(ctx context.Context, query dto.ListQuery) (*dto.Page[T], error) {
	return listPage(ctx, uc.store, query, uc.defaultSize, repository.ListParams{})
}

// Update 지정 필드 수정
func (uc *ContentUseCase[T, PT]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	return uc.store.Update(ctx, id, fields)
}

// Delete 삭제
func (uc *ContentUseCase[T, PT]) Delete(ctx context.Context, id string) error {
	if err := uc.store.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("레코드 삭제", zap.String("id", id))
	return nil
}

// appendRecord 형제 범위의 최대 위치 다음으로 위치를 정하고 같은 트랜잭션에서 저장합니다.
func appendRecord[T any, PT model[T]](ctx context.Context, transactor repository.Transactor, store repository.Store[T], record *T, scope map[string]interface{}) error {
	return transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		highest, err := store.MaxPosition(ctx, scope)
		if err != nil {
			return fmt.Errorf("최대 위치 조회 실패: %w", err)
		}
		PT(record).Base().Position = highest + 1
		return store.Create(ctx, record)
	})
}

// listPage 페이지 크기를 보정하고, 범위를 벗어난 페이지는 첫 페이지로 다시 조회합니다.
func listPage[T any](ctx context.Context, store repository.Store[T], query dto.ListQuery, defaultSize int, base repository.ListParams) (*dto.Page[T], error) {
	size := dto.NormalizeSize(query.Size, defaultSize)
	page := query.Page
	if page <= 0 {
		page = 1
	}

	params := base
	params.Filters = mergeFilters(base.Filters, query.Filters)
	params.Search = query.Search
	params.SortBy = query.SortBy
	params.Order = query.Order
	params.Page = page
	params.PerPage = size
	params.Paginate = true

	items, total, err := store.List(ctx, params)
	if err != nil {
		return nil, err
	}

	if normalized := dto.NormalizePage(page, dto.PageCount(total, size)); normalized != page {
		page = normalized
		if total > 0 {
			params.Page = page
			if items, total, err = store.List(ctx, params); err != nil {
				return nil, err
			}
		}
	}

	return &dto.Page[T]{Items: items, Total: total, Page: page, Size: size}, nil
}

// mergeFilters 고정 필터가 요청 필터보다 우선합니다.
func mergeFilters(fixed, requested map[string]interface{}) map[string]interface{} {
	if len(fixed) == 0 {
		return requested
	}
	out := make(map[string]interface{}, len(fixed)+len(requested))
	for k, v := range requested {
		out[k] = v
	}
	for k, v := range fixed {
		out[k] = v
	}
	return out
}
