package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, 100, NormalizeSize(500, 10))
	assert.Equal(t, 10, NormalizeSize(0, 0))
	assert.Equal(t, 25, NormalizeSize(-3, 25))
	assert.Equal(t, 7, NormalizeSize(7, 10))
}

func TestNewPaginationData(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		total    int64
		current  int
		pages    int
		previous *string
		next     *string
	}{
		{"first page", 1, 10, 25, 1, 3, nil, strPtr("/projects?page=2&size=10")},
		{"middle page", 2, 10, 25, 2, 3, strPtr("/projects?page=1&size=10"), strPtr("/projects?page=3&size=10")},
		{"last page", 3, 10, 25, 3, 3, strPtr("/projects?page=2&size=10"), nil},
		{"out of range resets", 9, 10, 25, 1, 3, nil, strPtr("/projects?page=2&size=10")},
		{"non positive resets", 0, 10, 25, 1, 3, nil, strPtr("/projects?page=2&size=10")},
		{"empty", 1, 10, 0, 1, 0, nil, nil},
		{"exact fit", 1, 5, 5, 1, 1, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := NewPaginationData("/projects", tt.page, tt.size, tt.total)
			assert.Equal(t, tt.current, data.CurrentPage)
			assert.Equal(t, tt.pages, data.Pages)
			assert.Equal(t, tt.total, data.Total)
			assert.Equal(t, tt.previous, data.PreviousPage)
			assert.Equal(t, tt.next, data.NextPage)
		})
	}
}

func strPtr(s string) *string { return &s }
