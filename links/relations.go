// Package links derives page navigation parameters and renders them into
// URLs through a pluggable Builder.
//
// Example usage:
//
//	rels := links.Relations(r.URL.Query(), page)
//	urls, err := links.Render(links.MuxBuilder(router, baseURL), "announcements", rels)
//	// urls["next"] == "https://api.example.com/announcements?filter=...&page=3"
package links

import (
	"net/url"
	"strconv"

	"github.com/nrfta/criteria-go/paging"
)

// Relation names.
const (
	Self  = "self"
	First = "first"
	Prev  = "prev"
	Next  = "next"
	Last  = "last"
)

// PageState is the navigation state Relations reads. *paging.Page
// implements it for every item type.
type PageState interface {
	Page() int
	TotalPages() int
	HasPrev() bool
	HasNext() bool
}

var _ PageState = (*paging.Page[any])(nil)

// Relation is one navigation link: a relation name and its request
// parameters.
type Relation struct {
	Name   string
	Params url.Values
}

// Relations copies current once per relation and overwrites only the page
// parameter:
//   - self keeps the current page
//   - first is page 1, omitted on the first page
//   - prev is page-1, only when a previous page exists
//   - next is page+1, only when a next page exists
//   - last is the last page, omitted when there is at most one page
//
// Relations are returned in that order.
func Relations(current url.Values, state PageState) []Relation {
	page := state.Page()
	totalPages := state.TotalPages()

	rels := []Relation{{Name: Self, Params: withPage(current, page)}}

	if page != 1 {
		rels = append(rels, Relation{Name: First, Params: withPage(current, 1)})
	}
	if state.HasPrev() {
		rels = append(rels, Relation{Name: Prev, Params: withPage(current, page-1)})
	}
	if state.HasNext() {
		rels = append(rels, Relation{Name: Next, Params: withPage(current, page+1)})
	}
	if totalPages > 1 {
		rels = append(rels, Relation{Name: Last, Params: withPage(current, totalPages)})
	}

	return rels
}

// withPage returns a deep copy of params with the page parameter replaced.
func withPage(params url.Values, page int) url.Values {
	out := make(url.Values, len(params)+1)
	for k, v := range params {
		out[k] = append([]string(nil), v...)
	}
	out.Set(paging.ParamPage, strconv.Itoa(page))
	return out
}
