package pagination

import "math"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Pagination is the page metadata returned alongside list results
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// Params are the page/per_page query parameters
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Default returns the first page with the default page size
func Default() *Params {
	return &Params{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps the parameters into range
func (p *Params) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// New builds page metadata for a result set of total rows
func New(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// Result is one page of items plus its metadata
type Result[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewResult creates a paginated result, never returning a nil item slice
func NewResult[T any](items []T, p *Params, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items:      items,
		Pagination: New(p.Page, p.PerPage, total),
	}
}
