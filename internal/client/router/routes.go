// Package router maps navigation paths to views and decides, on every
// navigation, whether the current session may see the matched view.
package router

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"

	"github.com/gorilla/mux"
)

// View names a screen of the client.
type View string

const (
	ViewLanding           View = "landing"
	ViewLogin             View = "login"
	ViewRegister          View = "register"
	ViewDashboard         View = "dashboard"
	ViewApplications      View = "applications"
	ViewApplicationDetail View = "application_detail"
	ViewProfile           View = "profile"
	ViewCompanies         View = "companies"
	ViewSavedJobs         View = "saved_jobs"
	ViewNotFound          View = "not_found"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"

	// CatchAll matches any path not matched by an earlier route.
	CatchAll = "*"
)

// Route binds a path pattern to a view. Patterns are exact paths, may
// contain ":name" segments, or are CatchAll.
type Route struct {
	Pattern   string
	View      View
	Protected bool
}

// DefaultRoutes is the route table of the client, in match order.
var DefaultRoutes = []Route{
	{Pattern: LoginPath, View: ViewLogin},
	{Pattern: "/", View: ViewLanding},
	{Pattern: "/register", View: ViewRegister},
	{Pattern: DashboardPath, View: ViewDashboard, Protected: true},
	{Pattern: "/applications", View: ViewApplications, Protected: true},
	{Pattern: "/applications/:id", View: ViewApplicationDetail, Protected: true},
	{Pattern: "/profile", View: ViewProfile, Protected: true},
	{Pattern: "/companies", View: ViewCompanies, Protected: true},
	{Pattern: "/saved-jobs", View: ViewSavedJobs, Protected: true},
	{Pattern: CatchAll, View: ViewNotFound},
}

var paramSegment = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

// Table is an ordered route table; the first matching route wins.
type Table struct {
	mux    *mux.Router
	routes map[*mux.Route]Route
}

func NewTable(routes []Route) (*Table, error) {
	t := &Table{mux: mux.NewRouter(), routes: make(map[*mux.Route]Route, len(routes))}
	for _, r := range routes {
		var mr *mux.Route
		switch {
		case r.Pattern == CatchAll:
			// never protected, whatever the entry says
			r.Protected = false
			mr = t.mux.PathPrefix("/")
		case len(r.Pattern) > 0 && r.Pattern[0] == '/':
			mr = t.mux.Path(paramSegment.ReplaceAllString(r.Pattern, "{$1}"))
		default:
			return nil, fmt.Errorf("router: invalid pattern %q", r.Pattern)
		}
		if err := mr.GetError(); err != nil {
			return nil, fmt.Errorf("router: pattern %q: %w", r.Pattern, err)
		}
		t.routes[mr] = r
	}
	return t, nil
}

// MustTable is NewTable for static tables.
func MustTable(routes []Route) *Table {
	t, err := NewTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Match returns the first route matching p and its path parameters.
func (t *Table) Match(p string) (Route, map[string]string, bool) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: Clean(p)}}
	var m mux.RouteMatch
	if !t.mux.Match(req, &m) || m.Route == nil {
		return Route{}, nil, false
	}
	r, ok := t.routes[m.Route]
	if !ok {
		return Route{}, nil, false
	}
	return r, m.Vars, true
}

// Clean normalizes a navigation path: rooted, no trailing slash, no query.
func Clean(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	return path.Clean(p)
}
