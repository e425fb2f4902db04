// Package httpapi serves paginated, filtered list endpoints.
//
// A ListHandler reads the filter, page, size and sorts query parameters,
// decodes the filter through a criteria.Transport, fetches one page and
// answers with the page and its navigation links:
//
//	router := mux.NewRouter()
//	handler := httpapi.NewListHandler("announcements",
//	    func() *filters.AnnouncementFilter { return &filters.AnnouncementFilter{} },
//	    fetcher,
//	    httpapi.Options{PageConfig: cfg.PageConfig(), Logger: logger},
//	)
//	router.Handle("/announcements", handler).Methods(http.MethodGet).Name("announcements")
//	handler.SetLinks(links.MuxBuilder(router, baseURL))
package httpapi

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/internal/log"
	"github.com/nrfta/criteria-go/links"
	"github.com/nrfta/criteria-go/mapper"
	"github.com/nrfta/criteria-go/paging"
	"github.com/nrfta/criteria-go/plain"
)

// ParamFilter is the query parameter carrying the encoded filter.
const ParamFilter = "filter"

// Response is the JSON body of a successful list request.
type Response[T any] struct {
	Content    []T               `json:"content"`
	Page       int               `json:"page"`
	Size       int               `json:"size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
	HasNext    bool              `json:"hasNext"`
	HasPrev    bool              `json:"hasPrev"`
	Links      map[string]string `json:"links,omitempty"`
}

// Options configures a ListHandler. Zero fields get defaults: the plain
// codec, the JSON mapper, paging.NewPageConfig() and a logrus logger.
//
// With StrictSize a size above the config's MaxSize is refused with 400
// instead of being capped.
type Options struct {
	Codec      criteria.Codec
	Mapper     criteria.Mapper
	PageConfig *paging.PageConfig
	Links      links.Builder
	Logger     *log.Logger
	StrictSize bool
}

// ListHandler serves one list endpoint for filter type F and item type T.
type ListHandler[F criteria.Filter, T any] struct {
	route     string
	newFilter func() F
	fetcher   paging.Fetcher[T]
	transport *criteria.Transport
	mapper    criteria.Mapper
	config    *paging.PageConfig
	strict    bool
	links     links.Builder
	logger    *log.Logger
}

// NewListHandler creates a handler. route names the route links are built
// for; newFilter returns an empty filter for every request.
func NewListHandler[F criteria.Filter, T any](route string, newFilter func() F, fetcher paging.Fetcher[T], opts Options) *ListHandler[F, T] {
	if opts.Codec == nil {
		opts.Codec = plain.NewCodec()
	}
	if opts.Mapper == nil {
		opts.Mapper = mapper.New()
	}
	if opts.PageConfig == nil {
		opts.PageConfig = paging.NewPageConfig()
	}
	if opts.Logger == nil {
		opts.Logger = log.New()
	}

	return &ListHandler[F, T]{
		route:     route,
		newFilter: newFilter,
		fetcher:   fetcher,
		transport: criteria.NewTransport(opts.Codec, opts.Mapper),
		mapper:    opts.Mapper,
		config:    opts.PageConfig,
		strict:    opts.StrictSize,
		links:     opts.Links,
		logger:    opts.Logger,
	}
}

// SetLinks sets the link builder. Routers usually exist only after the
// handler was registered, hence the setter.
func (h *ListHandler[F, T]) SetLinks(b links.Builder) {
	h.links = b
}

func (h *ListHandler[F, T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	tree, err := h.decodeFilter(query.Get(ParamFilter))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req := paging.RequestFromQuery(query)
	if h.strict {
		if err := h.config.Validate(req); err != nil {
			h.fail(w, r, err)
			return
		}
	}
	pageable := h.config.Pageable(req)

	page, err := paging.Paginate(r.Context(), h.fetcher, pageable, tree)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	content := page.Content()
	if content == nil {
		content = []T{}
	}

	resp := Response[T]{
		Content:    content,
		Page:       page.Page(),
		Size:       page.Size(),
		Total:      page.Total(),
		TotalPages: page.TotalPages(),
		HasNext:    page.HasNext(),
		HasPrev:    page.HasPrev(),
	}

	if h.links != nil {
		rendered, err := links.Render(h.links, h.route, links.Relations(linkParams(r, pageable), page))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		resp.Links = rendered
	}

	h.logger.Debug("%s %s: page %d of %d, %d items in %dms",
		r.Method, r.URL.Path, page.Page(), page.TotalPages(), len(content), page.Metadata.QueryTimeMs)

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Warn("write response: %v", err)
	}
}

// decodeFilter decodes raw into a fresh filter and returns its typed field
// tree. An absent filter matches everything.
func (h *ListHandler[F, T]) decodeFilter(raw string) (*criteria.Tree, error) {
	if raw == "" {
		return nil, nil
	}

	filter := h.newFilter()
	if err := h.transport.Unmarshal(raw, filter); err != nil {
		return nil, err
	}
	return h.mapper.ToFieldTree(filter)
}

func (h *ListHandler[F, T]) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("%s %s: %+v", r.Method, r.URL.Path, err)
	} else {
		h.logger.Debug("%s %s: rejected: %v", r.Method, r.URL.Path, err)
	}

	if werr := writeJSON(w, status, body); werr != nil {
		h.logger.Warn("write error response: %v", werr)
	}
}

// linkParams returns the request's query merged with its route variables
// and the resolved page size and sorts.
func linkParams(r *http.Request, pageable paging.Pageable) url.Values {
	params := r.URL.Query()
	for k, v := range mux.Vars(r) {
		params.Set(k, v)
	}
	for k, v := range pageable.Params() {
		if k == paging.ParamPage {
			continue
		}
		params[k] = v
	}
	return params
}
