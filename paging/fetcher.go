package paging

import (
	"context"

	"github.com/nrfta/criteria-go"
)

// Fetcher abstracts database queries for any ORM or database layer.
// This interface allows the paginator to work with SQLBoiler or raw SQL
// without being tied to either.
//
// Type parameter T is the database model type (e.g., *models.Announcement).
type Fetcher[T any] interface {
	// Fetch retrieves the items of one page, applying the filter, the sort
	// and the limit/offset window.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the number of items matching the filter, ignoring the
	// window.
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains all parameters needed to fetch a page of data.
type FetchParams struct {
	// Limit is the maximum number of items to fetch; 0 means no limit.
	Limit int

	// Offset is the number of items to skip.
	Offset int

	// Filter is the decoded search filter; nil matches everything.
	Filter *criteria.Tree

	// Sorts is the ordered sort, primary key first.
	Sorts []Sort
}
