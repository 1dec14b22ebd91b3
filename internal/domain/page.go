package domain

// PaginationParams carries the page/limit of a trip listing from the HTTP
// layer to the repo layer, or to the service when a status filter forces the
// page to be cut in memory. Page is 1-indexed. Limit is capped at 100.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of trips on one page.
	Limit int
}

// NewPaginationParams builds a PaginationParams from the optional ?page and
// ?limit of GET /trips. Nil or non-positive values fall back to page=1,
// limit=20.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based index of the page's first trip, used both as
// the SQL OFFSET and as the slice bound for filtered lists.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
