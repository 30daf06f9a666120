package leads

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination describes a window over the filtered lead set.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// PageRequest is a parsed listing query.
type PageRequest struct {
	Page   int
	Limit  int
	Search string
}

// ParsePageRequest applies integer-parse-with-fallback to raw query values.
// Non-numeric or non-positive values fall back to the defaults. There is no
// upper bound on limit. The search term is kept as given; only an empty term
// means no filter.
func ParsePageRequest(page, limit, search string) PageRequest {
	return PageRequest{
		Page:   parsePositive(page, DefaultPage),
		Limit:  parsePositive(limit, DefaultLimit),
		Search: search,
	}
}

func parsePositive(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Skip is the number of records before the requested page.
func (r PageRequest) Skip() int {
	if r.Page < 1 || r.Limit < 1 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }
