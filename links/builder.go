package links

import (
	"net/url"

	"github.com/friendsofgo/errors"
	"github.com/gorilla/mux"
)

// Builder renders a named route with parameters as an absolute URL.
type Builder interface {
	URL(route string, params url.Values) (string, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(route string, params url.Values) (string, error)

func (f BuilderFunc) URL(route string, params url.Values) (string, error) {
	return f(route, params)
}

// Render builds the URL of every relation, keyed by relation name.
func Render(b Builder, route string, rels []Relation) (map[string]string, error) {
	out := make(map[string]string, len(rels))
	for _, rel := range rels {
		u, err := b.URL(route, rel.Params)
		if err != nil {
			return nil, errors.Wrapf(err, "links: render %s", rel.Name)
		}
		out[rel.Name] = u
	}
	return out, nil
}

// MuxBuilder resolves named gorilla/mux routes. Parameters matching route
// variables fill the path; the rest become the query string. The result is
// resolved against base, which may be nil for relative URLs.
//
// Example:
//
//	router.HandleFunc("/groups/{groupId}/messages", h).Name("messages")
//	b := links.MuxBuilder(router, base)
//	b.URL("messages", url.Values{"groupId": {"7"}, "page": {"2"}})
//	// https://api.example.com/groups/7/messages?page=2
func MuxBuilder(router *mux.Router, base *url.URL) Builder {
	return BuilderFunc(func(name string, params url.Values) (string, error) {
		route := router.Get(name)
		if route == nil {
			return "", errors.Errorf("links: no route named %q", name)
		}

		vars, err := route.GetVarNames()
		if err != nil {
			return "", errors.Wrapf(err, "links: route %q", name)
		}

		query := make(url.Values, len(params))
		for k, v := range params {
			query[k] = v
		}

		pairs := make([]string, 0, len(vars)*2)
		for _, v := range vars {
			pairs = append(pairs, v, query.Get(v))
			query.Del(v)
		}

		u, err := route.URLPath(pairs...)
		if err != nil {
			return "", errors.Wrapf(err, "links: build route %q", name)
		}
		u.RawQuery = query.Encode()

		if base != nil {
			u = base.ResolveReference(u)
		}
		return u.String(), nil
	})
}
