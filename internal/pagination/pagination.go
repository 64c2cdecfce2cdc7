// Package pagination holds the page/per_page rules shared by list endpoints.
package pagination

import "math"

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	// MaxPage keeps (page-1)*MaxPerPage inside int.
	MaxPage = math.MaxInt / MaxPerPage
)

// Page is one slice of a listing plus the total number of rows.
type Page[T any] struct {
	Items   []T
	Page    int
	PerPage int
	Total   int
}

// Offset is the number of rows skipped before this page.
func (p Page[T]) Offset() int {
	return Offset(p.Page, p.PerPage)
}

// Clamp coerces page into [1, MaxPage] and perPage into [1, MaxPerPage].
func Clamp(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

func Offset(page, perPage int) int {
	return (page - 1) * perPage
}
