package dto

import (
	"fmt"
	"math"

	"github.com/joboy-dev/portfolio.api/internal/usecase/constants"
)

// ListQuery 목록 조회 요청 조건
type ListQuery struct {
	Page    int
	Size    int
	SortBy  string
	Order   string
	Filters map[string]interface{}
	Search  map[string]string
}

// Page 한 페이지 분량의 조회 결과
type Page[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

// PaginationData 목록 응답의 페이지 정보
type PaginationData struct {
	CurrentPage  int     `json:"current_page"`
	Size         int     `json:"size"`
	Total        int64   `json:"total"`
	Pages        int     `json:"pages"`
	PreviousPage *string `json:"previous_page"`
	NextPage     *string `json:"next_page"`
}

// NormalizeSize 페이지 크기를 1..100 범위로 맞춥니다. 0 이하는 기본값을 사용합니다.
func NormalizeSize(size, fallback int) int {
	if size > constants.MaxPageSize {
		return constants.MaxPageSize
	}
	if size <= 0 {
		if fallback > 0 {
			return fallback
		}
		return constants.DefaultPageSize
	}
	return size
}

// PageCount 전체 페이지 수
func PageCount(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}

// NormalizePage 범위를 벗어난 페이지는 1로 되돌립니다.
func NormalizePage(page, pages int) int {
	if page <= 0 || page > pages {
		return 1
	}
	return page
}

// NewPaginationData 엔드포인트 기준 이전/다음 페이지 링크를 계산합니다.
func NewPaginationData(endpoint string, page, size int, total int64) PaginationData {
	pages := PageCount(total, size)
	page = NormalizePage(page, pages)
	offset := (page - 1) * size

	data := PaginationData{
		CurrentPage: page,
		Size:        size,
		Total:       total,
		Pages:       pages,
	}

	if page > 1 {
		prev := fmt.Sprintf("%s?page=%d&size=%d", endpoint, page-1, size)
		data.PreviousPage = &prev
	}
	if int64(size+offset) < total {
		next := fmt.Sprintf("%s?page=%d&size=%d", endpoint, page+1, size)
		data.NextPage = &next
	}

	return data
}
