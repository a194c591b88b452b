package entity

import "time"

// Record 모든 엔티티가 공유하는 기본 컬럼
type Record struct {
	ID        string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	UniqueID  *string   `gorm:"uniqueIndex" json:"unique_id"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Base 임베드된 Record 포인터를 반환합니다.
func (r *Record) Base() *Record {
	return r
}

// DeletionMode 엔티티 삭제 방식
type DeletionMode int

const (
	// SoftDelete is_deleted 플래그만 변경
	SoftDelete DeletionMode = iota
	// HardDelete 물리 삭제 (일회용 토큰, 파일)
	HardDelete
	// NoDelete 추가 전용 (블랙리스트)
	NoDelete
)

func (m DeletionMode) String() string {
	switch m {
	case SoftDelete:
		return "soft"
	case HardDelete:
		return "hard"
	default:
		return "none"
	}
}

// Deletable 모든 엔티티가 선언해야 하는 삭제 방식
type Deletable interface {
	DeletionMode() DeletionMode
}

// Model 범용 저장소가 다루는 엔티티 계약
type Model interface {
	Deletable
	TableName() string
	Base() *Record
	QuerySpec() QuerySpec
}

// QuerySpec 엔티티별 조회 가능 필드 매핑 (요청 이름 -> 컬럼)
type QuerySpec struct {
	// Filters 정확히 일치하는 필터
	Filters map[string]string
	// Search 대소문자 무시 부분 일치 검색
	Search map[string]string
	// Sorts 정렬 가능 컬럼 (created_at, updated_at, position은 항상 허용)
	Sorts map[string]string
	// Writable 수정 가능 필드 (JSON 이름 -> 컬럼)
	Writable map[string]string
	// SlugColumn 식별자 조회 시 사용하는 슬러그 컬럼
	SlugColumn string
	// Scope 순서 변경 시 형제 범위를 결정하는 컬럼
	Scope []string
	// DefaultSort 기본 정렬 컬럼과 방향
	DefaultSort  string
	DefaultOrder string
}

var baseSorts = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"position":   "position",
}

// SortColumn 정렬 이름을 컬럼으로 변환합니다.
func (s QuerySpec) SortColumn(name string) (string, bool) {
	if col, ok := baseSorts[name]; ok {
		return col, true
	}
	col, ok := s.Sorts[name]
	return col, ok
}

// Columns 스펙이 참조하는 모든 컬럼을 반환합니다.
func (s QuerySpec) Columns() []string {
	cols := make([]string, 0, len(s.Filters)+len(s.Search)+len(s.Sorts)+len(s.Writable)+len(s.Scope)+1)
	for _, m := range []map[string]string{s.Filters, s.Search, s.Sorts, s.Writable} {
		for _, col := range m {
			cols = append(cols, col)
		}
	}
	cols = append(cols, s.Scope...)
	if s.SlugColumn != "" {
		cols = append(cols, s.SlugColumn)
	}
	return cols
}

// fields 같은 이름과 컬럼을 갖는 매핑을 만듭니다.
func fields(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = n
	}
	return m
}
