// Package paging provides page-number pagination: request parsing into a
// Pageable, page fetching through a Fetcher, and the Page result container
// with its derived navigation state.
//
// Example usage:
//
//	config := paging.NewPageConfig().WithDefaultSorts(paging.Desc("createdAt"))
//	pageable := config.Pageable(paging.RequestFromQuery(r.URL.Query()))
//
//	paginator := paging.NewPaginator(fetcher)
//	page, err := paginator.Paginate(ctx, pageable, filterTree)
package paging

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// StrategyOffset names the limit/offset strategy in page metadata.
const StrategyOffset = "offset"

// Paginator fetches pages through a Fetcher.
type Paginator[T any] struct {
	fetcher Fetcher[T]
}

// NewPaginator creates a paginator backed by fetcher.
func NewPaginator[T any](fetcher Fetcher[T]) *Paginator[T] {
	return &Paginator[T]{fetcher: fetcher}
}

// Paginate counts the items matching filter and fetches the requested page.
// Nothing is fetched when the count is zero or the page lies past the end.
func (p *Paginator[T]) Paginate(ctx context.Context, pageable Pageable, filter *criteria.Tree) (*Page[T], error) {
	start := time.Now()

	params := FetchParams{
		Limit:  pageable.Size,
		Offset: pageable.Offset(),
		Filter: filter,
		Sorts:  pageable.Sorts,
	}

	total, err := p.fetcher.Count(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "paging: count items")
	}

	var items []T
	if total > 0 && !pastEnd(pageable, total) {
		items, err = p.fetcher.Fetch(ctx, params)
		if err != nil {
			return nil, errors.Wrap(err, "paging: fetch items")
		}
	}

	page := NewPage(items, int(total), pageable)
	page.Metadata = Metadata{
		Strategy:      StrategyOffset,
		QueryTimeMs:   time.Since(start).Milliseconds(),
		ItemsExamined: len(items),
	}
	return page, nil
}

// Paginate is a convenience for NewPaginator(fetcher).Paginate.
func Paginate[T any](ctx context.Context, fetcher Fetcher[T], pageable Pageable, filter *criteria.Tree) (*Page[T], error) {
	return NewPaginator(fetcher).Paginate(ctx, pageable, filter)
}

// pastEnd reports whether pageable starts after the last of total items.
// It compares page numbers so that huge pages never overflow an offset.
func pastEnd(pageable Pageable, total int64) bool {
	if pageable.Size <= 0 {
		return false
	}
	return pageable.Page > pageCount(total, pageable.Size)
}
