package nav

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// ErrNoRoute is returned when a path or route name is not registered.
var ErrNoRoute = errors.New("no such route")

// Route names.
const (
	Dashboard      = "dashboard"
	Incidents      = "incident"
	IncidentCreate = "incident.create"
	IncidentEdit   = "incident.edit"
	IncidentDetail = "incident.detail"
	Taxes          = "taxes"
	TaxCreate      = "taxes.create"
	TaxEdit        = "taxes.edit"
	Activity       = "activity"
)

var table = []struct {
	name string
	path string
}{
	{Dashboard, "/ops"},
	{Incidents, "/ops/incident"},
	{IncidentCreate, "/ops/incident/create"},
	{IncidentEdit, "/ops/incident/{id}/edit"},
	{IncidentDetail, "/ops/incident/{id}/detail"},
	{Taxes, "/ops/finances/taxes"},
	{TaxCreate, "/ops/finances/taxes/create"},
	{TaxEdit, "/ops/finances/taxes/{id}/edit"},
	{Activity, "/ops/activity"},
}

// Match is a resolved route.
type Match struct {
	Name string
	Vars map[string]string
}

// Var returns a path variable, or "".
func (m Match) Var(key string) string {
	return m.Vars[key]
}

// Router resolves paths to named screens and builds paths from names.
type Router struct {
	mux *mux.Router
}

// NewRouter registers every opsboard route.
func NewRouter() *Router {
	m := mux.NewRouter()
	for _, r := range table {
		m.Path(r.path).Methods(http.MethodGet).Name(r.name)
	}
	return &Router{mux: m}
}

// Names lists the registered route names in registration order.
func (r *Router) Names() []string {
	names := make([]string, 0, len(table))
	for _, t := range table {
		names = append(names, t.name)
	}
	return names
}

// Resolve matches route.Path. Query parameters are ignored.
func (r *Router) Resolve(route Route) (Match, error) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: route.Path}}
	var rm mux.RouteMatch
	if !r.mux.Match(req, &rm) || rm.Route == nil {
		return Match{}, fmt.Errorf("resolve %s: %w", route.Path, ErrNoRoute)
	}
	return Match{Name: rm.Route.GetName(), Vars: rm.Vars}, nil
}

// Build returns the route registered under name with the path variables
// given as key/value pairs.
func (r *Router) Build(name string, pairs ...string) (Route, error) {
	mr := r.mux.Get(name)
	if mr == nil {
		return Route{}, fmt.Errorf("build %s: %w", name, ErrNoRoute)
	}
	u, err := mr.URLPath(pairs...)
	if err != nil {
		return Route{}, fmt.Errorf("build %s: %w", name, err)
	}
	return Route{Path: u.Path, Query: url.Values{}}, nil
}

// MustBuild is Build for static route names known at compile time.
func (r *Router) MustBuild(name string, pairs ...string) Route {
	route, err := r.Build(name, pairs...)
	if err != nil {
		panic(err)
	}
	return route
}
