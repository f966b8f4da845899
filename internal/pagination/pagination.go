// Package pagination pages expense listings, which grow without bound
// as users keep recording spending.
package pagination

import "gorm.io/gorm"

const (
	// DefaultPageSize is applied when a listing request omits page_size.
	DefaultPageSize = 20
	// MaxPageSize caps page_size so one request cannot pull a user's
	// entire expense history.
	MaxPageSize = 100
)

// PageRequest holds the page and page_size query parameters of a listing
// request. Zero values mean "not provided".
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Defaults resolves unset parameters to the first page of DefaultPageSize items.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the number of rows to skip for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps one page of results with the counts a client needs
// to render paging controls.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds a PageResponse; a nil slice serializes as an
// empty JSON array rather than null.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate is a GORM scope applying the request's OFFSET and LIMIT.
// Call Defaults first; a zero PageSize would return no rows.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
