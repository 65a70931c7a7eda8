package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"employeedir/internal/directory/domain/pagination"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		page    int
		perPage int
		want    pagination.Page[int]
	}{
		{
			name: "first page of 25 by 10", n: 25, page: 1, perPage: 10,
			want: pagination.Page[int]{Items: seq(10), TotalPages: 3, CurrentPage: 1, HasNext: true, TotalItems: 25},
		},
		{
			name: "last partial page", n: 25, page: 3, perPage: 10,
			want: pagination.Page[int]{Items: []int{21, 22, 23, 24, 25}, TotalPages: 3, CurrentPage: 3, HasPrev: true, TotalItems: 25},
		},
		{
			name: "page zero clamps to first", n: 5, page: 0, perPage: 4,
			want: pagination.Page[int]{Items: []int{1, 2, 3, 4}, TotalPages: 2, CurrentPage: 1, HasNext: true, TotalItems: 5},
		},
		{
			name: "page beyond range is empty", n: 5, page: 9, perPage: 4,
			want: pagination.Page[int]{Items: []int{}, TotalPages: 2, CurrentPage: 9, HasPrev: true, TotalItems: 5},
		},
		{
			name: "empty collection", n: 0, page: 1, perPage: 10,
			want: pagination.Page[int]{Items: []int{}, TotalPages: 0, CurrentPage: 1, TotalItems: 0},
		},
		{
			name: "exact multiple has no next", n: 8, page: 2, perPage: 4,
			want: pagination.Page[int]{Items: []int{5, 6, 7, 8}, TotalPages: 2, CurrentPage: 2, HasPrev: true, TotalItems: 8},
		},
		{
			name: "non-positive page size treated as one", n: 3, page: 2, perPage: 0,
			want: pagination.Page[int]{Items: []int{2}, TotalPages: 3, CurrentPage: 2, HasNext: true, HasPrev: true, TotalItems: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Paginate(seq(tt.n), tt.page, tt.perPage))
		})
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	items := seq(17)
	first := pagination.Paginate(items, 2, 4)
	second := pagination.Paginate(items, 2, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, seq(17), items, "input must not be modified")
}

func TestPaginate_ResultDoesNotAliasInput(t *testing.T) {
	items := seq(4)
	page := pagination.Paginate(items, 1, 2)
	page.Items[0] = 100
	assert.Equal(t, 1, items[0])
}

func TestVisiblePages(t *testing.T) {
	g := pagination.Gap

	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{name: "no pages", current: 1, total: 0, want: []int{}},
		{name: "few pages", current: 2, total: 3, want: []int{1, 2, 3}},
		{name: "start of long range", current: 1, total: 10, want: []int{1, 2, 3, g, 10}},
		{name: "middle of long range", current: 5, total: 10, want: []int{1, g, 3, 4, 5, 6, 7, g, 10}},
		{name: "end of long range", current: 10, total: 10, want: []int{1, g, 8, 9, 10}},
		{name: "near start without gap", current: 4, total: 10, want: []int{1, 2, 3, 4, 5, 6, g, 10}},
		{name: "four pages", current: 2, total: 4, want: []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.VisiblePages(tt.current, tt.total))
		})
	}
}
