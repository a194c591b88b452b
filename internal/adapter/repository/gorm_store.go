package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/domain/repository"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// modelPtr 범용 저장소의 타입 제약. *T가 엔티티 계약을 구현해야 합니다.
type modelPtr[T any] interface {
	*T
	entity.Model
}

// GormStore 모든 엔티티가 공유하는 gorm 기반 레코드 저장소
type GormStore[T any, PT modelPtr[T]] struct {
	db     *gorm.DB
	table  string
	spec   entity.QuerySpec
	mode   entity.DeletionMode
	schema *schema.Schema
}

// NewGormStore 저장소를 생성하고 QuerySpec의 컬럼을 스키마와 대조합니다.
func NewGormStore[T any, PT modelPtr[T]](db *gorm.DB) (*GormStore[T, PT], error) {
	model := PT(new(T))

	sch, err := schema.Parse(model, &sync.Map{}, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("%s 스키마 파싱 실패: %w", model.TableName(), err)
	}

	spec := model.QuerySpec()
	for _, col := range append(spec.Columns(), "id", "unique_id", "position", "is_deleted", "created_at", "updated_at") {
		if f := sch.LookUpField(col); f == nil || f.DBName != col {
			return nil, fmt.Errorf("%s: 알 수 없는 컬럼 %q", model.TableName(), col)
		}
	}
	if spec.DefaultSort != "" {
		if _, ok := spec.SortColumn(spec.DefaultSort); !ok {
			return nil, fmt.Errorf("%s: 기본 정렬 %q가 정렬 목록에 없습니다", model.TableName(), spec.DefaultSort)
		}
	}

	return &GormStore[T, PT]{
		db:     db,
		table:  model.TableName(),
		spec:   spec,
		mode:   model.DeletionMode(),
		schema: sch,
	}, nil
}

// MustGormStore 스펙이 잘못된 경우 패닉합니다. 시작 시 저장소 조립에만 사용합니다.
func MustGormStore[T any, PT modelPtr[T]](db *gorm.DB) *GormStore[T, PT] {
	store, err := NewGormStore[T, PT](db)
	if err != nil {
		panic(err)
	}
	return store
}

var _ repository.Store[entity.User] = (*GormStore[entity.User, *entity.User])(nil)

// Table 테이블 이름
func (s *GormStore[T, PT]) Table() string {
	return s.table
}

func (s *GormStore[T, PT]) conn(ctx context.Context) *gorm.DB {
	return conn(ctx, s.db)
}

func (s *GormStore[T, PT]) live(ctx context.Context) *gorm.DB {
	return s.conn(ctx).Model(new(T)).Where("is_deleted = ?", false)
}

// Create 새 레코드 생성
func (s *GormStore[T, PT]) Create(ctx context.Context, record *T) error {
	base := PT(record).Base()
	if base.ID == "" {
		base.ID = entity.NewID()
	}
	if base.UniqueID == nil {
		uid, err := entity.NewUniqueID(s.table)
		if err != nil {
			return err
		}
		base.UniqueID = &uid
	}

	if err := s.conn(ctx).Create(record).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// FetchByID id, unique_id, slug 순서로 조회
func (s *GormStore[T, PT]) FetchByID(ctx context.Context, id string) (*T, error) {
	columns := []string{"id", "unique_id"}
	if s.spec.SlugColumn != "" {
		columns = append(columns, s.spec.SlugColumn)
	}

	for _, col := range columns {
		var record T
		err := s.live(ctx).Where(clause.Eq{Column: clause.Column{Name: col}, Value: id}).Take(&record).Error
		if err == nil {
			return &record, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, apperrors.RecordNotFound(s.table)
}

// FetchByIDIncludingDeleted 삭제 상태와 무관하게 조회
func (s *GormStore[T, PT]) FetchByIDIncludingDeleted(ctx context.Context, id string) (*T, error) {
	var record T
	err := s.conn(ctx).Where("id = ? OR unique_id = ?", id, id).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.RecordNotFound(s.table)
		}
		return nil, err
	}
	return &record, nil
}

// FetchOne 필터 조건의 첫 레코드 조회
func (s *GormStore[T, PT]) FetchOne(ctx context.Context, filters map[string]interface{}, throwOnMiss bool) (*T, error) {
	q := s.conn(ctx).Model(new(T))
	if _, ok := filters["is_deleted"]; !ok {
		q = q.Where("is_deleted = ?", false)
	}

	q, err := s.applyFilters(q, filters, true)
	if err != nil {
		return nil, err
	}
	if repository.RowLocked(ctx) {
		// SQLite 드라이버는 FOR 절을 생략합니다
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var record T
	if err := q.Order("created_at desc").Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if throwOnMiss {
				return nil, apperrors.RecordNotFound(s.table)
			}
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// List 필터, 검색, 정렬, 페이지네이션 조회
func (s *GormStore[T, PT]) List(ctx context.Context, params repository.ListParams) ([]T, int64, error) {
	q := s.conn(ctx).Model(new(T))
	if !params.IncludeDeleted {
		q = q.Where("is_deleted = ?", false)
	}

	if params.RestrictIDs {
		if len(params.IDs) == 0 {
			return []T{}, 0, nil
		}
		q = q.Where("id IN ?", params.IDs)
	}

	q, err := s.applyFilters(q, params.Filters, false)
	if err != nil {
		return nil, 0, err
	}

	for name, term := range params.Search {
		if term == "" {
			continue
		}
		col, ok := s.spec.Search[name]
		if !ok {
			return nil, 0, apperrors.Validation(fmt.Sprintf("Cannot search by '%s'", name))
		}
		q = q.Where(fmt.Sprintf("LOWER(%s) LIKE ?", q.Statement.Quote(col)), "%"+strings.ToLower(term)+"%")
	}

	orderBy, err := s.orderBy(params.SortBy, params.Order)
	if err != nil {
		return nil, 0, err
	}

	// 같은 조건으로 개수와 행을 모두 조회하기 위해 세션을 분리합니다
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]T, 0)
	find := q.Order(orderBy).Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	if params.Paginate {
		page, perPage := params.Page, params.PerPage
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 10
		}
		find = find.Offset((page - 1) * perPage).Limit(perPage)
	}
	if err := find.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Count 필터 조건의 삭제되지 않은 레코드 수
func (s *GormStore[T, PT]) Count(ctx context.Context, filters map[string]interface{}) (int64, error) {
	q, err := s.applyFilters(s.live(ctx), filters, true)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update 지정된 필드만 수정
func (s *GormStore[T, PT]) Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	var updated *T
	err := withinTransaction(ctx, s.db, func(ctx context.Context) error {
		record, err := s.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		base := PT(record).Base()

		columns := make(map[string]interface{}, len(fields)+1)
		newPosition, hasPosition := 0, false
		for name, value := range fields {
			col, ok := s.spec.Writable[name]
			if !ok {
				return apperrors.Validation(fmt.Sprintf("Field '%s' cannot be updated", name))
			}
			if col == "position" {
				pos, err := toInt(value)
				if err != nil {
					return apperrors.Validation("position must be an integer")
				}
				newPosition, hasPosition = pos, true
				continue
			}
			columns[col] = value
		}

		if hasPosition {
			if err := s.Reorder(ctx, base.ID, newPosition); err != nil {
				return err
			}
		}

		if len(columns) > 0 {
			columns["updated_at"] = time.Now()
			if err := s.conn(ctx).Model(new(T)).Where("id = ?", base.ID).Updates(columns).Error; err != nil {
				return translateError(err)
			}
		}

		updated, err = s.FetchByID(ctx, base.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete is_deleted 플래그 설정
func (s *GormStore[T, PT]) SoftDelete(ctx context.Context, id string) error {
	if s.mode == entity.NoDelete {
		return apperrors.Validation(fmt.Sprintf("Records in table `%s` cannot be deleted", s.table))
	}

	record, err := s.FetchByID(ctx, id)
	if err != nil {
		return err
	}

	return s.conn(ctx).Model(new(T)).
		Where("id = ?", PT(record).Base().ID).
		UpdateColumns(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
}

// HardDelete 물리 삭제
func (s *GormStore[T, PT]) HardDelete(ctx context.Context, id string) error {
	if s.mode == entity.NoDelete {
		return apperrors.Validation(fmt.Sprintf("Records in table `%s` cannot be deleted", s.table))
	}

	record, err := s.FetchByIDIncludingDeleted(ctx, id)
	if err != nil {
		return err
	}

	return s.conn(ctx).Delete(record).Error
}

// Delete 엔티티의 삭제 방식에 따라 삭제
func (s *GormStore[T, PT]) Delete(ctx context.Context, id string) error {
	switch s.mode {
	case entity.HardDelete:
		return s.HardDelete(ctx, id)
	case entity.SoftDelete:
		return s.SoftDelete(ctx, id)
	default:
		return apperrors.Validation(fmt.Sprintf("Records in table `%s` cannot be deleted", s.table))
	}
}

// Reorder 형제 레코드를 밀고 대상의 위치를 변경합니다.
// 앞으로 이동하면 [new, old) 구간을 +1, 뒤로 이동하면 (old, new] 구간을 -1 합니다.
// 위치는 0 이상 형제 최대 위치 이하로 제한됩니다.
func (s *GormStore[T, PT]) Reorder(ctx context.Context, id string, newPosition int) error {
	return withinTransaction(ctx, s.db, func(ctx context.Context) error {
		record, err := s.FetchByID(ctx, id)
		if err != nil {
			return err
		}
		base := PT(record).Base()

		scope, err := s.scopeOf(ctx, record)
		if err != nil {
			return err
		}

		maxPosition, err := s.MaxPosition(ctx, scope)
		if err != nil {
			return err
		}
		if newPosition > maxPosition {
			newPosition = maxPosition
		}
		if newPosition < 0 {
			newPosition = 0
		}

		oldPosition := base.Position
		if newPosition == oldPosition {
			return nil
		}

		siblings, err := s.applyScope(s.live(ctx).Where("id <> ?", base.ID), scope)
		if err != nil {
			return err
		}

		if newPosition < oldPosition {
			err = siblings.Where("position >= ? AND position < ?", newPosition, oldPosition).
				UpdateColumn("position", gorm.Expr("position + ?", 1)).Error
		} else {
			err = siblings.Where("position > ? AND position <= ?", oldPosition, newPosition).
				UpdateColumn("position", gorm.Expr("position - ?", 1)).Error
		}
		if err != nil {
			return err
		}

		return s.conn(ctx).Model(new(T)).Where("id = ?", base.ID).
			UpdateColumns(map[string]interface{}{"position": newPosition, "updated_at": time.Now()}).Error
	})
}

// MaxPosition 범위 내 삭제되지 않은 형제의 최대 위치
func (s *GormStore[T, PT]) MaxPosition(ctx context.Context, scope map[string]interface{}) (int, error) {
	q, err := s.applyScope(s.live(ctx), scope)
	if err != nil {
		return 0, err
	}

	var highest sql.NullInt64
	if err := q.Select("MAX(position)").Row().Scan(&highest); err != nil {
		return 0, err
	}
	if !highest.Valid {
		return -1, nil
	}
	return int(highest.Int64), nil
}

// scopeOf 레코드의 형제 범위 컬럼 값을 읽습니다.
func (s *GormStore[T, PT]) scopeOf(ctx context.Context, record *T) (map[string]interface{}, error) {
	scope := make(map[string]interface{}, len(s.spec.Scope))
	rv := reflect.ValueOf(record)
	for _, col := range s.spec.Scope {
		field := s.schema.LookUpField(col)
		if field == nil {
			return nil, fmt.Errorf("%s: 알 수 없는 범위 컬럼 %q", s.table, col)
		}
		value, zero := field.ValueOf(ctx, rv)
		if zero {
			value = nil
		}
		scope[col] = derefValue(value)
	}
	return scope, nil
}

func (s *GormStore[T, PT]) applyScope(q *gorm.DB, scope map[string]interface{}) (*gorm.DB, error) {
	for col, value := range scope {
		if !s.isScopeColumn(col) {
			return nil, apperrors.Validation(fmt.Sprintf("Cannot scope by '%s'", col))
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: value})
	}
	return q, nil
}

func (s *GormStore[T, PT]) isScopeColumn(col string) bool {
	for _, c := range s.spec.Scope {
		if c == col {
			return true
		}
	}
	return false
}

// applyFilters 필터 이름을 컬럼으로 변환하여 조건을 추가합니다.
// keepNil이 true이면 nil 값은 IS NULL 조건이 되고, []string 값은 IN 조건이 됩니다.
func (s *GormStore[T, PT]) applyFilters(q *gorm.DB, filters map[string]interface{}, keepNil bool) (*gorm.DB, error) {
	for name, value := range filters {
		if value == nil && !keepNil {
			continue
		}
		col, ok := s.spec.Filters[name]
		if !ok {
			switch name {
			case "id", "unique_id", "is_deleted", "position":
				col = name
			default:
				return nil, apperrors.Validation(fmt.Sprintf("Cannot filter by '%s'", name))
			}
		}
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: value})
	}
	return q, nil
}

func (s *GormStore[T, PT]) orderBy(sortBy, order string) (clause.OrderByColumn, error) {
	if sortBy == "" {
		sortBy = s.spec.DefaultSort
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	col, ok := s.spec.SortColumn(sortBy)
	if !ok {
		return clause.OrderByColumn{}, apperrors.Validation(fmt.Sprintf("Cannot sort by '%s'", sortBy))
	}

	if order == "" {
		order = s.spec.DefaultOrder
	}
	if order == "" {
		order = "desc"
	}
	switch strings.ToLower(order) {
	case "asc":
		return clause.OrderByColumn{Column: clause.Column{Name: col}}, nil
	case "desc":
		return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: true}, nil
	default:
		return clause.OrderByColumn{}, apperrors.Validation(fmt.Sprintf("Invalid order '%s'. Use 'asc' or 'desc'", order))
	}
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case *int:
		if v == nil {
			return 0, fmt.Errorf("nil position")
		}
		return *v, nil
	default:
		return 0, fmt.Errorf("unsupported position type %T", value)
	}
}

func derefValue(value interface{}) interface{} {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		return rv.Elem().Interface()
	}
	return value
}
