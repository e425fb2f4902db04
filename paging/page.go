package paging

// Page is one page of results with its navigation state. A Page is built
// once per request and never modified.
//
// Type parameter T is the item type being paginated.
type Page[T any] struct {
	content  []T
	pageable Pageable
	total    int

	// Metadata provides observability and debugging information.
	Metadata Metadata
}

// Metadata provides observability information about how a page was built.
type Metadata struct {
	// Strategy identifies the pagination strategy, e.g. "offset".
	Strategy string

	// QueryTimeMs is the total time spent in the fetcher.
	QueryTimeMs int64

	// ItemsExamined is the number of items returned by the fetcher.
	ItemsExamined int
}

// NewPage builds a page of content out of total matching items.
//
// Example:
//
//	page := paging.NewPage(users, 81, paging.NewPageable(5, 20))
//	page.TotalPages() // 5
//	page.IsLast()     // true
func NewPage[T any](content []T, total int, pageable Pageable) *Page[T] {
	if content == nil {
		content = []T{}
	}
	if total < 0 {
		total = 0
	}

	return &Page[T]{
		content:  content,
		pageable: NewPageable(pageable.Page, pageable.Size, pageable.Sorts...),
		total:    total,
	}
}

// Content returns the items of the page.
func (p *Page[T]) Content() []T { return p.content }

// Pageable returns the request the page answers.
func (p *Page[T]) Pageable() Pageable { return p.pageable }

// Page returns the 1-based page number.
func (p *Page[T]) Page() int { return p.pageable.Page }

// Size returns the requested page size; 0 means unpaged.
func (p *Page[T]) Size() int { return p.pageable.Size }

// Sorts returns the sort the content was fetched with.
func (p *Page[T]) Sorts() []Sort { return p.pageable.Sorts }

// Total returns the number of items matching the request across all pages.
func (p *Page[T]) Total() int { return p.total }

// TotalPages returns ceil(total/size), or 0 for an unpaged request.
func (p *Page[T]) TotalPages() int {
	size := p.pageable.Size
	if size == 0 {
		return 0
	}
	return pageCount(int64(p.total), size)
}

// pageCount returns ceil(total/size) without overflowing near math.MaxInt.
func pageCount(total int64, size int) int {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

// HasPrev reports whether a page precedes this one.
func (p *Page[T]) HasPrev() bool { return p.pageable.Page > 1 }

// HasNext reports whether a page follows this one.
func (p *Page[T]) HasNext() bool { return p.pageable.Page < p.TotalPages() }

// IsFirst reports whether no page precedes this one.
func (p *Page[T]) IsFirst() bool { return !p.HasPrev() }

// IsLast reports whether no page follows this one.
func (p *Page[T]) IsLast() bool { return !p.HasNext() }

// Map converts the content of a page, keeping its navigation state. It is
// typically used to turn database models into response types.
//
// Example:
//
//	dtos, err := paging.Map(page, func(u *models.User) (UserDTO, error) {
//	    return toDTO(u), nil
//	})
func Map[From any, To any](page *Page[From], fn func(From) (To, error)) (*Page[To], error) {
	out := make([]To, 0, len(page.content))
	for _, item := range page.content {
		converted, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}

	mapped := NewPage(out, page.total, page.pageable)
	mapped.Metadata = page.Metadata
	return mapped, nil
}
