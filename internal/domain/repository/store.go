package repository

import "context"

type rowLockKey struct{}

// WithRowLock 이 컨텍스트로 호출한 FetchOne은 트랜잭션이 끝날 때까지 행을 잠급니다 (SELECT ... FOR UPDATE).
func WithRowLock(ctx context.Context) context.Context {
	return context.WithValue(ctx, rowLockKey{}, true)
}

// RowLocked WithRowLock이 적용된 컨텍스트인지 확인합니다
func RowLocked(ctx context.Context) bool {
	locked, _ := ctx.Value(rowLockKey{}).(bool)
	return locked
}

// ListParams 목록 조회 조건
type ListParams struct {
	// Filters 정확히 일치하는 필터 (필터 이름 -> 값, nil 값은 무시)
	Filters map[string]interface{}
	// Search 부분 일치 검색 (검색 이름 -> 검색어, 빈 값은 무시)
	Search map[string]string
	// SortBy 정렬 이름, 비어 있으면 엔티티 기본값
	SortBy string
	// Order asc 또는 desc
	Order   string
	Page    int
	PerPage int
	// Paginate false이면 조건에 맞는 모든 행을 반환합니다
	Paginate bool
	// IncludeDeleted true이면 소프트 삭제된 행도 포함합니다
	IncludeDeleted bool
	// IDs RestrictIDs가 true일 때 결과를 이 ID 목록으로 제한합니다
	IDs         []string
	RestrictIDs bool
}

// Store 모든 엔티티가 공유하는 레코드 저장소 계약
type Store[T any] interface {
	// Create 새 레코드 생성 (id, unique_id, 타임스탬프 자동 할당)
	Create(ctx context.Context, record *T) error

	// FetchByID id, unique_id, slug 순으로 삭제되지 않은 레코드 조회
	FetchByID(ctx context.Context, id string) (*T, error)

	// FetchByIDIncludingDeleted 삭제 상태와 무관하게 id 또는 unique_id로 조회
	FetchByIDIncludingDeleted(ctx context.Context, id string) (*T, error)

	// FetchOne 필터 조건의 첫 레코드 조회. throwOnMiss가 false이면 없을 때 nil을 반환합니다.
	// WithRowLock 컨텍스트면 행 잠금을 겁니다
	FetchOne(ctx context.Context, filters map[string]interface{}, throwOnMiss bool) (*T, error)

	// List 필터, 검색, 정렬, 페이지네이션 조회. 전체 개수를 함께 반환합니다
	List(ctx context.Context, params ListParams) ([]T, int64, error)

	// Update 지정된 필드만 수정. position이 포함되면 순서 변경이 먼저 적용됩니다
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)

	// SoftDelete is_deleted 플래그 설정
	SoftDelete(ctx context.Context, id string) error

	// HardDelete 물리 삭제 (삭제 상태 무시)
	HardDelete(ctx context.Context, id string) error

	// Delete 엔티티의 삭제 방식에 따라 삭제
	Delete(ctx context.Context, id string) error

	// Reorder 형제 레코드의 순서를 밀고 대상 위치를 변경
	Reorder(ctx context.Context, id string, newPosition int) error

	// MaxPosition 범위 내 삭제되지 않은 형제의 최대 위치. 없으면 -1
	MaxPosition(ctx context.Context, scope map[string]interface{}) (int, error)

	// Count 필터 조건의 삭제되지 않은 레코드 수
	Count(ctx context.Context, filters map[string]interface{}) (int64, error)
}

// Transactor 컨텍스트에 트랜잭션을 실어 여러 저장소 호출을 묶습니다
type Transactor interface {
	// WithinTransaction fn 안의 저장소 호출은 같은 트랜잭션을 사용합니다
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
