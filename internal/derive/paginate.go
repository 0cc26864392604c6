package derive

import "slices"

// Page is one page of a derived result
type Page[T any] struct {
	Items     []T `json:"items"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
	PageSize  int `json:"pageSize"`
	Total     int `json:"total"`
}

// Paginate slices items into pages of size. The page number is clamped to
// the valid range, which is [1, 1] for an empty result.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)
	if size <= 0 {
		size = max(total, 1)
	}

	pageCount := (total + size - 1) / size
	page = min(max(page, 1), max(pageCount, 1))

	start := min((page-1)*size, total)
	end := min(start+size, total)

	return Page[T]{
		Items:     slices.Clone(items[start:end]),
		Page:      page,
		PageCount: pageCount,
		PageSize:  size,
		Total:     total,
	}
}
