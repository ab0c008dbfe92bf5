package helpers

import (
	"net/http"
	"strconv"

	"eventvenues/internal/domain"
)

// Attendee listing defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// PageSizeAll asks for the whole listing as a single page.
	PageSizeAll = "all"
)

// ParsePagination reads page and page_size from the query string. Out-of-range or
// malformed values fall back to the defaults and page_size is capped at MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	page := DefaultPage
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		page = v
	}

	pageSize := DefaultPageSize
	switch s := q.Get("page_size"); {
	case s == PageSizeAll:
		return domain.PaginationParams{Page: DefaultPage}
	case s != "":
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = min(v, MaxPageSize)
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}

// PaginationMeta describes the page returned by a list endpoint.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta reports the page served for params out of total rows. An unbounded
// listing is one page holding every row.
func NewPaginationMeta(params domain.PaginationParams, total int) PaginationMeta {
	if params.Unbounded() {
		pages := 0
		if total > 0 {
			pages = 1
		}
		return PaginationMeta{Page: DefaultPage, PageSize: total, Total: total, TotalPages: pages}
	}
	return PaginationMeta{
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}
}
