package paging

import "fmt"

const (
	// DefaultPageSize is the page size used when a request does not name one.
	DefaultPageSize = 20

	// DefaultMaxPageSize caps requested page sizes.
	DefaultMaxPageSize = 100
)

// PageConfig holds pagination defaults for one endpoint or service.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := paging.NewPageConfig().
//	    WithMaxSize(50).
//	    WithDefaultSorts(paging.Desc("createdAt"))
//	pageable := config.Pageable(paging.RequestFromQuery(r.URL.Query()))
type PageConfig struct {
	// DefaultSize is the page size used when the request does not set one.
	DefaultSize int

	// MaxSize is the maximum allowed page size. Requests exceeding this
	// will be capped to MaxSize (not rejected).
	MaxSize int

	// DefaultSorts apply when the request names no sort.
	DefaultSorts []Sort
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 20
// - MaxSize: 100
// - no default sort
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size >= 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// WithDefaultSorts sets the sorts used when a request has none.
func (c *PageConfig) WithDefaultSorts(sorts ...Sort) *PageConfig {
	c.DefaultSorts = sorts
	return c
}

// EffectiveSize returns the page size to use for a requested size:
// - nil returns DefaultSize
// - negative sizes become 0
// - sizes above MaxSize are capped to MaxSize
//
// A size of 0 means "everything on one page" and is never capped.
func (c *PageConfig) EffectiveSize(requested *int) int {
	if c == nil {
		c = NewPageConfig()
	}

	if requested == nil {
		return c.DefaultSize
	}

	size := *requested
	if size < 0 {
		size = 0
	}
	if c.MaxSize > 0 && size > c.MaxSize {
		return c.MaxSize
	}
	return size
}

// Validate checks if the requested size exceeds MaxSize and returns an error
// if so. Unlike EffectiveSize which caps silently, Validate is for endpoints
// that reject oversized requests.
func (c *PageConfig) Validate(req PageRequest) error {
	if c == nil {
		c = NewPageConfig()
	}

	if req.Size == nil || c.MaxSize <= 0 {
		return nil
	}

	if *req.Size > c.MaxSize {
		return &PageSizeError{
			Requested: *req.Size,
			Maximum:   c.MaxSize,
		}
	}

	return nil
}

// Pageable resolves a request against the config's defaults.
func (c *PageConfig) Pageable(req PageRequest) Pageable {
	if c == nil {
		c = NewPageConfig()
	}

	page := 1
	if req.Page != nil {
		page = *req.Page
	}

	sorts := ParseSorts(req.Sorts)
	if len(sorts) == 0 && len(c.DefaultSorts) > 0 {
		sorts = append([]Sort(nil), c.DefaultSorts...)
	}

	size := c.EffectiveSize(req.Size)
	return NewPageable(page, size, sorts...)
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}
