// Package pagination нарезает упорядоченные коллекции на страницы.
package pagination

// Page одна страница коллекции и сведения о соседних страницах.
type Page[T any] struct {
	Items       []T  `json:"items"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
	TotalItems  int  `json:"totalItems"`
}

// Paginate возвращает страницу page размером perPage.
// page < 1 считается первой страницей; номер сверху не ограничивается,
// страница за пределами коллекции пуста. perPage < 1 считается равным 1.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	total := len(items)
	start := (page - 1) * perPage
	end := start + perPage

	lo, hi := min(start, total), min(end, total)
	slice := make([]T, hi-lo)
	copy(slice, items[lo:hi])

	return Page[T]{
		Items:       slice,
		TotalPages:  (total + perPage - 1) / perPage,
		CurrentPage: page,
		HasNext:     end < total,
		HasPrev:     start > 0,
		TotalItems:  total,
	}
}

// Gap обозначает пропуск номеров в VisiblePages.
const Gap = 0

const maxVisiblePages = 3

// VisiblePages возвращает номера страниц для навигации: первую, последнюю
// и до двух соседей текущей с каждой стороны. Пропуски обозначаются Gap.
func VisiblePages(current, total int) []int {
	if total <= maxVisiblePages {
		pages := make([]int, 0, max(total, 0))
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	pages := []int{1}
	start := max(2, current-2)
	end := min(total-1, current+2)

	if start > 2 {
		pages = append(pages, Gap)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, Gap)
	}
	return append(pages, total)
}
