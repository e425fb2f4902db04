// Package sqlboiler provides a paging.Fetcher backed by SQLBoiler queries.
//
// Decoded filters are turned into WHERE clauses through Bindings, which map
// filter fields to columns and operators. Only bound fields reach SQL, and
// sorts are restricted to bound properties.
//
// Example usage:
//
//	bindings := sqlboiler.NewBindings().
//	    Filter("title", models.AnnouncementColumns.Title, sqlboiler.OpLike).
//	    Filter("priceStart", models.AnnouncementColumns.Price, sqlboiler.OpGte).
//	    Filter("address.locality", models.AnnouncementColumns.Locality, sqlboiler.OpEq).
//	    Sort("createdAt", models.AnnouncementColumns.CreatedAt)
//
//	fetcher := sqlboiler.NewFetcher(
//	    func(ctx context.Context, mods ...qm.QueryMod) ([]*models.Announcement, error) {
//	        return models.Announcements(mods...).All(ctx, db)
//	    },
//	    func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
//	        return models.Announcements(mods...).Count(ctx, db)
//	    },
//	    bindings,
//	)
//
//	page, err := paging.Paginate(ctx, fetcher, pageable, filterTree)
package sqlboiler

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/nrfta/criteria-go/paging"
)

// QueryFunc executes a SQLBoiler query and returns results.
//
// Type parameter T is the SQLBoiler model type (e.g., *models.Announcement).
type QueryFunc[T any] func(ctx context.Context, mods ...qm.QueryMod) ([]T, error)

// CountFunc executes a SQLBoiler count query.
type CountFunc func(ctx context.Context, mods ...qm.QueryMod) (int64, error)

// Fetcher implements paging.Fetcher[T] for SQLBoiler queries.
type Fetcher[T any] struct {
	queryFunc QueryFunc[T]
	countFunc CountFunc
	bindings  *Bindings
}

// NewFetcher creates a SQLBoiler fetcher. A nil bindings value ignores
// filters and rejects every sort.
func NewFetcher[T any](queryFunc QueryFunc[T], countFunc CountFunc, bindings *Bindings) *Fetcher[T] {
	if bindings == nil {
		bindings = NewBindings()
	}

	return &Fetcher[T]{
		queryFunc: queryFunc,
		countFunc: countFunc,
		bindings:  bindings,
	}
}

// Fetch retrieves one page: filter, order, then offset and limit.
func (f *Fetcher[T]) Fetch(ctx context.Context, params paging.FetchParams) ([]T, error) {
	mods, err := f.QueryMods(params)
	if err != nil {
		return nil, err
	}
	return f.queryFunc(ctx, mods...)
}

// Count returns the number of rows matching the filter.
func (f *Fetcher[T]) Count(ctx context.Context, params paging.FetchParams) (int64, error) {
	return f.countFunc(ctx, f.bindings.FilterMods(params.Filter)...)
}

// QueryMods builds the query mods Fetch runs with.
func (f *Fetcher[T]) QueryMods(params paging.FetchParams) ([]qm.QueryMod, error) {
	mods := f.bindings.FilterMods(params.Filter)

	if len(params.Sorts) > 0 {
		orderBy, err := f.bindings.OrderBy(params.Sorts)
		if err != nil {
			return nil, err
		}
		mods = append(mods, orderBy)
	}

	return append(mods, OffsetToQueryMods(params)...), nil
}
