package entity

import "fmt"

// OwnerKind 태그, 카테고리, 파일의 다형성 소유자 구분값
// 실제 외래 키 대신 애플리케이션에서 유효성을 검사합니다.
type OwnerKind string

const (
	OwnerGeneral        OwnerKind = "general"
	OwnerUsers          OwnerKind = "users"
	OwnerProfile        OwnerKind = "profile"
	OwnerProjects       OwnerKind = "projects"
	OwnerSkills         OwnerKind = "skills"
	OwnerExperiences    OwnerKind = "experiences"
	OwnerEducation      OwnerKind = "education"
	OwnerAwards         OwnerKind = "awards"
	OwnerCertifications OwnerKind = "certifications"
	OwnerBlogs          OwnerKind = "blogs"
	OwnerServices       OwnerKind = "services"
	OwnerTestimonials   OwnerKind = "testimonials"
)

// OwnerUse 소유자 구분값이 사용되는 관계
type OwnerUse int

const (
	UseTag OwnerUse = iota
	UseCategory
	UseFile
)

func (u OwnerUse) String() string {
	switch u {
	case UseTag:
		return "tag"
	case UseCategory:
		return "category"
	default:
		return "file"
	}
}

// ownerValidity 관계별 허용 소유자 표
var ownerValidity = map[OwnerUse]map[OwnerKind]bool{
	UseTag:      {OwnerBlogs: true, OwnerProjects: true},
	UseCategory: {OwnerBlogs: true, OwnerProjects: true},
	UseFile: {
		OwnerGeneral: true, OwnerUsers: true, OwnerProfile: true, OwnerProjects: true,
		OwnerSkills: true, OwnerExperiences: true, OwnerEducation: true, OwnerAwards: true,
		OwnerCertifications: true, OwnerBlogs: true, OwnerServices: true, OwnerTestimonials: true,
	},
}

// ParseOwnerKind 문자열을 검증하여 OwnerKind로 변환합니다.
func ParseOwnerKind(value string, use OwnerUse) (OwnerKind, error) {
	kind := OwnerKind(value)
	if !ownerValidity[use][kind] {
		return "", fmt.Errorf("'%s' is not a valid model type for %s", value, use)
	}
	return kind, nil
}

// ValidFor 관계에서 허용되는 소유자인지 확인합니다.
func (k OwnerKind) ValidFor(use OwnerUse) bool {
	return ownerValidity[use][k]
}
