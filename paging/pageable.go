package paging

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Request parameter names.
const (
	ParamPage  = "page"
	ParamSize  = "size"
	ParamSorts = "sorts"
)

// PageRequest holds the raw paging parameters of a request. Nil fields were
// not sent.
type PageRequest struct {
	Page  *int
	Size  *int
	Sorts []string
}

// RequestFromQuery reads page, size and sorts from query parameters.
// Values that are not integers are treated as absent. Sorts may be repeated
// or comma separated.
func RequestFromQuery(q url.Values) PageRequest {
	return PageRequest{
		Page:  intParam(q, ParamPage),
		Size:  intParam(q, ParamSize),
		Sorts: q[ParamSorts],
	}
}

func intParam(q url.Values, name string) *int {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// Pageable is a resolved page request: a 1-based page number, a page size
// (0 lists everything) and an ordered multi-key sort.
type Pageable struct {
	Page  int
	Size  int
	Sorts []Sort
}

// NewPageable clamps page to at least 1 and size to at least 0.
func NewPageable(page, size int, sorts ...Sort) Pageable {
	if page < 1 {
		page = 1
	}
	if size < 0 {
		size = 0
	}
	if sorts == nil {
		sorts = []Sort{}
	}

	return Pageable{Page: page, Size: size, Sorts: sorts}
}

// Offset returns the number of items before the first item of the page.
// It saturates at math.MaxInt for pages too far out to address.
func (p Pageable) Offset() int {
	if p.Size <= 0 || p.Page <= 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Size
}

// WithPage returns a copy of p for another page.
func (p Pageable) WithPage(page int) Pageable {
	return NewPageable(page, p.Size, p.Sorts...)
}

// Params renders p back into request parameters.
func (p Pageable) Params() url.Values {
	params := url.Values{}
	params.Set(ParamPage, strconv.Itoa(p.Page))
	params.Set(ParamSize, strconv.Itoa(p.Size))
	if len(p.Sorts) > 0 {
		params.Set(ParamSorts, FormatSorts(p.Sorts))
	}
	return params
}
