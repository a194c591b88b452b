package dto

import "github.com/joboy-dev/portfolio.api/internal/domain/entity"

// ProjectDetails 프로젝트 키/값 필드와 태그 입력
type ProjectDetails struct {
	TechnicalDetails             []KeyValue
	TechnicalDetailsRemove       []string
	ChallengesAndSolutions       []KeyValue
	ChallengesAndSolutionsRemove []string
	Tags                         []string
}

// ProjectView 태그와 카테고리가 포함된 프로젝트
type ProjectView struct {
	entity.Project
	Tags       []TaxonomyItem `json:"tags"`
	Categories []TaxonomyItem `json:"categories"`
}

// BlogView 태그와 카테고리가 포함된 블로그
type BlogView struct {
	entity.Blog
	Tags       []TaxonomyItem `json:"tags"`
	Categories []TaxonomyItem `json:"categories"`
}

// ProfileView 계산 필드가 포함된 프로필
type ProfileView struct {
	entity.Profile
	FullName      string `json:"full_name"`
	ProjectsCount int64  `json:"projects_count"`
	SkillsCount   int64  `json:"skills_count"`
}

// TaxonomyItem 태그 또는 카테고리 공통 표현
type TaxonomyItem struct {
	ID          string  `json:"id"`
	UniqueID    *string `json:"unique_id"`
	Name        string  `json:"name"`
	ModelType   string  `json:"model_type"`
	Description *string `json:"description,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Position    int     `json:"position"`
}

// TaxonomyInput 태그 또는 카테고리 생성 입력
type TaxonomyInput struct {
	Name        string
	ModelType   string
	Description *string
}

// TaxonomyUpdate 태그 또는 카테고리 수정 입력. nil 필드는 변경하지 않습니다.
type TaxonomyUpdate struct {
	Name        *string
	ModelType   *string
	Description *string
	Position    *int
}
