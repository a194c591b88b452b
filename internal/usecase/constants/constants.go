package constants

import "time"

// Redis 키 관련 상수
const (
	// OAuthStatePrefix Google OAuth state 키 접두사
	OAuthStatePrefix = "oauth:state:"

	// OAuthStateExpiry OAuth state 만료 시간
	OAuthStateExpiry = 10 * time.Minute
)

// 알림 채널
const (
	// ChannelMessages 연락 폼 메시지 알림 채널
	ChannelMessages = "portfolio:notifications:messages"

	// ChannelTestimonials 추천사 알림 채널
	ChannelTestimonials = "portfolio:notifications:testimonials"
)

// 페이지네이션 기본값
const (
	// DefaultPageSize 요청에 size가 없을 때 사용하는 페이지 크기
	DefaultPageSize = 10

	// MaxPageSize 페이지 크기 상한
	MaxPageSize = 100

	// FilePageSize 파일 목록 기본 페이지 크기
	FilePageSize = 50

	// TaxonomyPageSize 태그, 카테고리 목록 기본 페이지 크기
	TaxonomyPageSize = 25

	// FeaturedProjects 추천 프로젝트 개수
	FeaturedProjects = 4
)

// 토큰 클레임 키
const (
	ClaimUserID = "user_id"
	ClaimType   = "type"
	ClaimExpiry = "exp"
	ClaimID     = "jti"
	ClaimEmail  = "email"
)

// 응답 메시지
const (
	MsgCredentials      = "Could not validate credentials"
	MsgForbidden        = "You do not have access to use this resource"
	MsgItemsFetched     = "Items fetched successfully"
	MsgEmailExists      = "User with email already exist"
	MsgEmailInUse       = "Email already in use"
	MsgSamePassword     = "New and old password cannot be the same"
	MsgWrongOldPassword = "Old password is incorrect"
)
