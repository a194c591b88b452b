package interfaces

import (
	"context"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
)

// ContentUseCase 위치 순서를 갖는 콘텐츠의 공통 CRUD 인터페이스
type ContentUseCase[T any] interface {
	// Create 마지막 위치 뒤에 레코드를 추가합니다
	Create(ctx context.Context, record *T) (*T, error)

	// Get id, unique_id 또는 슬러그로 조회합니다
	Get(ctx context.Context, id string) (*T, error)

	// List 필터, 검색, 정렬, 페이지 조건으로 조회합니다
	List(ctx context.Context, query dto.ListQuery) (*dto.Page[T], error)

	// Update 지정된 필드만 수정합니다
	Update(ctx context.Context, id string, fields map[string]interface{}) (*T, error)

	// Delete 엔티티의 삭제 방식으로 삭제합니다
	Delete(ctx context.Context, id string) error
}

// ProjectUseCase 프로젝트 유스케이스 인터페이스
type ProjectUseCase interface {
	Create(ctx context.Context, project *entity.Project, details dto.ProjectDetails) (*dto.ProjectView, error)
	Get(ctx context.Context, id string) (*dto.ProjectView, error)

	// List tags가 있으면 해당 태그 중 하나라도 붙은 프로젝트로 제한합니다
	List(ctx context.Context, query dto.ListQuery, tags []string) (*dto.Page[dto.ProjectView], error)

	// Featured 위치 순서상 앞의 프로젝트
	Featured(ctx context.Context) ([]dto.ProjectView, error)

	Update(ctx context.Context, id string, fields map[string]interface{}, details dto.ProjectDetails) (*dto.ProjectView, error)
	Delete(ctx context.Context, id string) error
}

// BlogUseCase 블로그 유스케이스 인터페이스
type BlogUseCase interface {
	Create(ctx context.Context, blog *entity.Blog, tags, categories []string) (*dto.BlogView, error)
	Get(ctx context.Context, id string) (*dto.BlogView, error)
	List(ctx context.Context, query dto.ListQuery) (*dto.Page[dto.BlogView], error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dto.BlogView, error)
	Delete(ctx context.Context, id string) error
}

// ProfileUseCase 단일 프로필 유스케이스 인터페이스
type ProfileUseCase interface {
	// Create 프로필이 이미 있으면 ValidationError
	Create(ctx context.Context, profile *entity.Profile) (*dto.ProfileView, error)
	Get(ctx context.Context) (*dto.ProfileView, error)
	Update(ctx context.Context, fields map[string]interface{}) (*dto.ProfileView, error)
	Delete(ctx context.Context) error

	// UploadImage 프로필 이미지를 업로드하고 image_url을 갱신합니다
	UploadImage(ctx context.Context, file dto.FileUpload) (*dto.ProfileView, error)
}

// TaxonomyUseCase 태그 또는 카테고리와 그 연결 관리 인터페이스
type TaxonomyUseCase interface {
	// Create 이름과 모델 종류를 소문자로 맞추고 중복을 거부합니다
	Create(ctx context.Context, input dto.TaxonomyInput) (*dto.TaxonomyItem, error)
	Get(ctx context.Context, id string) (*dto.TaxonomyItem, error)
	List(ctx context.Context, query dto.ListQuery) (*dto.Page[dto.TaxonomyItem], error)
	Update(ctx context.Context, id string, input dto.TaxonomyUpdate) (*dto.TaxonomyItem, error)
	Delete(ctx context.Context, id string) error

	// Attach 식별자 또는 이름으로 찾고 없으면 만든 뒤 연결합니다. 멱등입니다
	Attach(ctx context.Context, ids []string, modelType, entityID string) error

	// Detach 연결을 소프트 삭제합니다. 없는 항목은 건너뜁니다
	Detach(ctx context.Context, ids []string, modelType, entityID string) error

	// ListFor 소유자별로 연결된 항목을 묶어 반환합니다
	ListFor(ctx context.Context, modelType string, entityIDs []string) (map[string][]dto.TaxonomyItem, error)

	// EntityIDsByNames 이름 중 하나라도 연결된 소유자 ID 목록
	EntityIDsByNames(ctx context.Context, modelType string, names []string) ([]string, error)
}

// FileUseCase 파일 업로드 유스케이스 인터페이스
type FileUseCase interface {
	// Upload 파일을 검증하고 저장소에 올린 뒤 메타데이터를 기록합니다
	Upload(ctx context.Context, params dto.FileUploadParams) ([]entity.File, error)
	Get(ctx context.Context, id string) (*entity.File, error)
	List(ctx context.Context, query dto.ListQuery) (*dto.Page[entity.File], error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*entity.File, error)

	// Delete 저장된 객체를 지운 뒤 행을 물리 삭제합니다
	Delete(ctx context.Context, id string) error
}

// NotificationUseCase 연락 메시지와 추천사 알림 유스케이스 인터페이스
type NotificationUseCase interface {
	// SendMessage 메시지를 저장하고 알림 이벤트를 발행합니다
	SendMessage(ctx context.Context, message *entity.Message) (*entity.Message, error)

	// SubmitTestimonial 추천사를 마지막 위치에 저장하고 알림 이벤트를 발행합니다
	SubmitTestimonial(ctx context.Context, testimonial *entity.Testimonial) (*entity.Testimonial, error)

	// Run 알림 채널을 구독하여 메일로 전달합니다. ctx가 끝나면 반환합니다
	Run(ctx context.Context) error
}
