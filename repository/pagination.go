package repository

import "strconv"

// Pagination describes one page of an ordered result set.
type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	NumPages    int   `json:"num_pages"`
	Total       int64 `json:"total"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// ParsePage reads a 1-based page number from a query parameter.
// Absent or malformed input falls back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate clamps a requested page to the valid range for total items and
// returns its navigation metadata. An empty result set still has one
// (empty) page so callers never deal with page zero.
func Paginate(total int64, page, size int) Pagination {
	if size < 1 {
		size = 1
	}
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > numPages {
		page = numPages
	}
	return Pagination{
		Page:        page,
		PageSize:    size,
		NumPages:    numPages,
		Total:       total,
		HasNext:     page < numPages,
		HasPrevious: page > 1,
	}
}

// Offset converts the clamped page into a SQL offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
