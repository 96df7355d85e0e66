package router

import (
	"sync/atomic"

	"github.com/dmitrijs2005/jobtracker/internal/client/session"
)

// SessionReader exposes the hydrated session to the guard.
type SessionReader interface {
	Current() session.Session
}

type Kind int

const (
	// Render shows the matched view.
	Render Kind = iota
	// Redirect replaces the requested location with RedirectTo.
	Redirect
)

func (k Kind) String() string {
	if k == Redirect {
		return "redirect"
	}
	return "render"
}

// Decision is the outcome of one navigation.
type Decision struct {
	Kind Kind
	// Path is the location being rendered. For a redirect it is the login
	// path; the originally requested path is not kept.
	Path   string
	Route  Route
	Params map[string]string
	// RedirectTo is set for Redirect decisions.
	RedirectTo string
	// Gen identifies this navigation; see Guard.IsCurrent.
	Gen uint64
}

// Param returns the named path parameter of the matched route.
func (d Decision) Param(name string) string {
	return d.Params[name]
}

// Guard decides on every navigation whether the session may see the
// requested view. It only reads the session, so the decision is
// synchronous and never waits on the network.
type Guard struct {
	table   *Table
	session SessionReader
	gen     atomic.Uint64
}

func NewGuard(table *Table, sess SessionReader) *Guard {
	return &Guard{table: table, session: sess}
}

// Navigate evaluates path. A protected route without an authenticated
// session redirects to the login view; everything else renders.
func (g *Guard) Navigate(p string) Decision {
	p = Clean(p)
	gen := g.gen.Add(1)

	route, params, ok := g.table.Match(p)
	if !ok {
		return Decision{Kind: Render, Path: p, Route: Route{Pattern: CatchAll, View: ViewNotFound}, Gen: gen}
	}

	if route.Protected && !g.session.Current().Authenticated {
		login, _, _ := g.table.Match(LoginPath)
		return Decision{Kind: Redirect, Path: LoginPath, Route: login, RedirectTo: LoginPath, Gen: gen}
	}

	return Decision{Kind: Render, Path: p, Route: route, Params: params, Gen: gen}
}

// IsCurrent reports whether gen is still the latest navigation. Results of
// requests started under an older generation belong to a dismissed view and
// must be dropped.
func (g *Guard) IsCurrent(gen uint64) bool {
	return g.gen.Load() == gen
}
