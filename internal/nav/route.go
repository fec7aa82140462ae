package nav

import (
	"fmt"
	"net/url"
	"strings"
)

// Route is a navigable location: a path plus query parameters.
type Route struct {
	Path  string
	Query url.Values
}

// Get returns the first value of a query parameter.
func (r Route) Get(key string) string {
	return r.Query.Get(key)
}

// With returns a copy of r with the given query parameter set.
func (r Route) With(key, value string) Route {
	q := cloneValues(r.Query)
	q.Set(key, value)
	return Route{Path: r.Path, Query: q}
}

// WithQuery returns a copy of r carrying exactly q.
func (r Route) WithQuery(q url.Values) Route {
	return Route{Path: r.Path, Query: cloneValues(q)}
}

// String renders the route as path[?query]. Query keys are sorted.
func (r Route) String() string {
	if len(r.Query) == 0 {
		return r.Path
	}
	return r.Path + "?" + r.Query.Encode()
}

// Equal reports whether both routes render identically.
func (r Route) Equal(other Route) bool {
	return r.String() == other.String()
}

// ParseRoute parses "path[?query]". Trailing slashes are dropped.
func ParseRoute(s string) (Route, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Route{}, fmt.Errorf("parse route: empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return Route{}, fmt.Errorf("parse route %q: %w", s, err)
	}
	if u.Scheme != "" || u.Host != "" {
		return Route{}, fmt.Errorf("parse route %q: absolute URLs are not routes", s)
	}
	path := u.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return Route{Path: path, Query: u.Query()}, nil
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
