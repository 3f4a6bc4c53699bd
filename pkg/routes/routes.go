// Package routes declares HTTP endpoints as data and registers them on a ServeMux.
package routes

import "net/http"

// Route binds a method and path pattern to a handler.
// Summary is optional and only surfaces in generated API descriptions.
type Route struct {
	Method  string
	Pattern string
	Summary string
	Handler http.HandlerFunc
}

// Group collects routes under a shared prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns returns every "METHOD /path" pattern in the group, children included.
func (g Group) Patterns() []string {
	var out []string
	g.Each(func(path string, r Route) {
		out = append(out, r.Method+" "+path)
	})
	return out
}

// Each calls fn for every route with its fully prefixed path, depth first.
func (g Group) Each(fn func(path string, r Route)) {
	g.walk("", fn)
}

func (g Group) walk(parent string, fn func(path string, r Route)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		fn(prefix+r.Pattern, r)
	}
	for _, child := range g.Children {
		child.walk(prefix, fn)
	}
}

// Register adds every route in groups to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.Each(func(path string, r Route) {
			mux.HandleFunc(r.Method+" "+path, r.Handler)
		})
	}
}
