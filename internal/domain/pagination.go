package domain

// PaginationParams selects one page of an attendee listing. A PageSize of zero or
// less means the whole listing in one page.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Unbounded reports whether the listing is returned without a limit.
func (p PaginationParams) Unbounded() bool {
	return p.PageSize <= 0
}

// Offset is the number of rows skipped before the page starts. Pages are 1-based and
// an unbounded listing always starts at the first row.
func (p PaginationParams) Offset() int {
	if p.Page < 1 || p.Unbounded() {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
