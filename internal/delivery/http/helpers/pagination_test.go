package helpers

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"clubhub/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.Page
	}{
		{"defaults", "", domain.Page{Number: DefaultPage, Size: DefaultPageSize}},
		{"explicit", "?page=3&page_size=5", domain.Page{Number: 3, Size: 5}},
		{"clamped page size", "?page_size=1000", domain.Page{Number: 1, Size: MaxPageSize}},
		{"huge page is kept", "?page=461168601842738792&page_size=20", domain.Page{Number: 461168601842738792, Size: 20}},
		{"invalid values fall back", "?page=-1&page_size=abc", domain.Page{Number: DefaultPage, Size: DefaultPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://test/clubs/C1/members"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{1, 2}, Paginate(items, domain.Page{Number: 1, Size: 2}))
	assert.Equal(t, []int{5}, Paginate(items, domain.Page{Number: 3, Size: 2}))
	assert.Equal(t, []int{}, Paginate(items, domain.Page{Number: 4, Size: 2}))
	assert.Equal(t, []int{}, Paginate(items, domain.Page{Number: math.MaxInt, Size: MaxPageSize}))
	assert.Equal(t, PaginationMeta{Page: 3, PageSize: 2, Total: 5, TotalPages: 3}, NewPaginationMeta(3, 2, 5))
}

func TestPaginate_huge_page_from_query_is_empty(t *testing.T) {
	r := httptest.NewRequest("GET", "http://test/clubs/C1/members?page=461168601842738792&page_size=20", nil)
	assert.Equal(t, []int{}, Paginate([]int{1, 2, 3}, ParsePagination(r)))
}
