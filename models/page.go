package models

// Page is one slice of a filtered list. Page numbers start at 1.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
}

// Paginate clamps page into [1, TotalPages]; an empty list still has one page.
func Paginate[T any](list []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	pages := (len(list) + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if end > len(list) {
		end = len(list)
	}
	items := make([]T, end-start)
	copy(items, list[start:end])
	return Page[T]{Items: items, Page: page, TotalPages: pages, Total: len(list)}
}
