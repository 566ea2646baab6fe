// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

// Package mux provides a small HTTP router built on the trail pattern engine.
// Routes are compiled once at registration time and kept ordered by pattern
// specificity, so the most literal pattern always wins when several match the
// same request path. Sub-routers and arbitrary http.Handler trees can be
// mounted under a pattern prefix.
package mux

import (
	netcontext "context"
	"fmt"
	"iter"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tigerwill90/trail"
)

// HandlerFunc is a function type that responds to an HTTP request. It enforces
// the same contract as [http.Handler] but provides additional features like
// matched pattern variables via the [Context] type. The [Context] is freed
// once the HandlerFunc returns and may be reused later to save resources. If
// you need to hold the context longer, you have to copy it (see
// [Context.Clone] method).
//
// HandlerFunc functions should be thread-safe, as they will be called
// concurrently.
type HandlerFunc func(c *Context)

// MiddlewareFunc is a function type for implementing [HandlerFunc] middleware.
// The returned [HandlerFunc] usually wraps the input [HandlerFunc], allowing
// you to perform operations before and/or after the wrapped [HandlerFunc] is
// executed. MiddlewareFunc functions should be thread-safe, as they will be
// called concurrently.
type MiddlewareFunc func(next HandlerFunc) HandlerFunc

// Mux is an HTTP request router backed by compiled [trail.Pattern] matchers.
// Routes may be added or removed while the router is serving requests, the
// route table is swapped atomically on every mutation.
type Mux struct {
	parser  *trail.Parser
	index   atomic.Pointer[routeIndex]
	pool    sync.Pool
	mu      sync.Mutex
	mws     []MiddlewareFunc
	noRoute HandlerFunc
	// base handlers are kept unwrapped so option validation happens before
	// the middleware chain is assembled in New.
	noRouteBase            HandlerFunc
	noMethodBase           HandlerFunc
	noMethod               HandlerFunc
	tsrRedirect            HandlerFunc
	handleMethodNotAllowed bool
	redirectTrailingSlash  bool
}

// routeIndex is the immutable route table. Lookups load it atomically while
// mutations build and swap a fresh copy under the router mutex.
type routeIndex struct {
	// byMethod holds routes sorted by pattern specificity, most specific
	// first. Routes of equal specificity keep registration order.
	byMethod map[string][]*Route
	mounts   []*mount
	size     int
}

type mount struct {
	pattern *trail.Pattern
	next    http.Handler
}

var _ http.Handler = (*Mux)(nil)

// New returns a ready to use instance of Mux, configured with the provided
// options.
func New(opts ...Option) (*Mux, error) {
	parser, err := trail.New()
	if err != nil {
		return nil, err
	}

	m := new(Mux)
	m.parser = parser
	m.noRouteBase = DefaultNotFoundHandler
	m.noMethodBase = DefaultMethodNotAllowedHandler

	for _, opt := range opts {
		if err := opt.applyGlob(sealedOption{mux: m}); err != nil {
			return nil, err
		}
	}

	m.noRoute = applyMiddleware(m.mws, m.noRouteBase)
	m.noMethod = applyMiddleware(m.mws, m.noMethodBase)
	m.tsrRedirect = applyMiddleware(m.mws, internalTrailingSlashHandler)

	m.index.Store(&routeIndex{byMethod: make(map[string][]*Route)})
	m.pool = sync.Pool{
		New: func() any {
			return new(Context)
		},
	}
	return m, nil
}

// MustHandle registers a new route for the given method and pattern. On
// success, it returns the newly registered [Route]. This function is a
// convenience wrapper for the [Mux.Handle] function and panics on error.
func (m *Mux) MustHandle(method, pattern string, handler HandlerFunc, opts ...RouteOption) *Route {
	rte, err := m.Handle(method, pattern, handler, opts...)
	if err != nil {
		panic(err)
	}
	return rte
}

// Handle registers a new route for the given method and pattern. On success,
// it returns the newly registered [Route]. If an error occurs, it returns one
// of the following:
//   - [ErrRouteExist]: If the route is already registered.
//   - [ErrInvalidRoute]: If the provided method or pattern is invalid.
//   - [ErrInvalidConfig]: If the provided route options are invalid.
//
// It's safe to add a new handler while the router is serving requests. This
// function is safe for concurrent use by multiple goroutines.
func (m *Mux) Handle(method, pattern string, handler HandlerFunc, opts ...RouteOption) (*Route, error) {
	if method == "" {
		return nil, fmt.Errorf("%w: missing http method", ErrInvalidRoute)
	}
	if handler == nil {
		return nil, fmt.Errorf("%w: missing handler", ErrInvalidRoute)
	}

	patt, err := m.parser.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}

	rte := &Route{
		pattern: patt,
		hbase:   handler,
		method:  method,
	}
	for _, opt := range opts {
		if err := opt.applyRoute(sealedOption{mux: m, route: rte}); err != nil {
			return nil, err
		}
	}
	rte.hall = applyMiddleware(m.mws, handler)

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index.Load()
	for _, registered := range idx.byMethod[method] {
		if registered.pattern.String() == pattern {
			return nil, fmt.Errorf("%w: %s %s", ErrRouteExist, method, pattern)
		}
	}

	next := idx.clone()
	routes := append(next.byMethod[method], rte)
	// A stable sort keeps registration order among routes of equal
	// specificity, making first-match-wins deterministic.
	slices.SortStableFunc(routes, func(a, b *Route) int {
		return a.pattern.Compare(b.pattern)
	})
	next.byMethod[method] = routes
	next.size++
	m.index.Store(next)
	return rte, nil
}

// Delete removes the route registered for the given method and pattern. On
// success, it returns the deleted [Route]. It returns [ErrRouteNotFound] when
// no such route exists. It's safe to delete a route while the router is
// serving requests. This function is safe for concurrent use by multiple
// goroutines.
func (m *Mux) Delete(method, pattern string) (*Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index.Load()
	routes := idx.byMethod[method]
	i := slices.IndexFunc(routes, func(rte *Route) bool {
		return rte.pattern.String() == pattern
	})
	if i < 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrRouteNotFound, method, pattern)
	}

	rte := routes[i]
	next := idx.clone()
	next.byMethod[method] = slices.Delete(slices.Clone(routes), i, i+1)
	if len(next.byMethod[method]) == 0 {
		delete(next.byMethod, method)
	}
	next.size--
	m.index.Store(next)
	return rte, nil
}

// Mount registers next to serve every request whose path begins with a prefix
// matched by pattern. The matched prefix is stripped from the delegated
// request path and the variables bound while matching it travel through the
// request context, see [VarsFromContext]. Routes always take precedence over
// mounted handlers; among mounted handlers the most specific pattern wins.
func (m *Mux) Mount(pattern string, next http.Handler) error {
	if next == nil {
		return fmt.Errorf("%w: missing handler", ErrInvalidRoute)
	}
	patt, err := m.parser.Parse(pattern)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRoute, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.index.Load()
	for _, mnt := range idx.mounts {
		if mnt.pattern.String() == pattern {
			return fmt.Errorf("%w: mount %s", ErrRouteExist, pattern)
		}
	}

	nextIdx := idx.clone()
	nextIdx.mounts = append(nextIdx.mounts, &mount{pattern: patt, next: next})
	slices.SortStableFunc(nextIdx.mounts, func(a, b *mount) int {
		return a.pattern.Compare(b.pattern)
	})
	m.index.Store(nextIdx)
	return nil
}

// Has allows to check if the given method and pattern exactly match a
// registered route. This function is safe for concurrent use by multiple
// goroutines and while mutations on routes are ongoing. See also [Mux.Route]
// as an alternative.
func (m *Mux) Has(method, pattern string) bool {
	return m.Route(method, pattern) != nil
}

// Route performs a lookup for a registered route matching the given method and
// pattern. It returns the [Route] if a match is found or nil otherwise. This
// function is safe for concurrent use by multiple goroutines and while
// mutations on routes are ongoing. See also [Mux.Has] as an alternative.
func (m *Mux) Route(method, pattern string) *Route {
	idx := m.index.Load()
	for _, rte := range idx.byMethod[method] {
		if rte.pattern.String() == pattern {
			return rte
		}
	}
	return nil
}

// Len returns the number of registered routes, mounted handlers excluded.
func (m *Mux) Len() int {
	return m.index.Load().size
}

// Routes returns an iterator over all registered routes, grouped by method in
// lexicographical order and by decreasing pattern specificity within a method.
// The iterator observes a point-in-time snapshot of the route table.
func (m *Mux) Routes() iter.Seq[*Route] {
	idx := m.index.Load()
	return func(yield func(*Route) bool) {
		for _, method := range slices.Sorted(maps.Keys(idx.byMethod)) {
			for _, rte := range idx.byMethod[method] {
				if !yield(rte) {
					return
				}
			}
		}
	}
}

// Lookup performs a manual route lookup for the given method and path,
// returning the matched [Route] and the variables bound while matching. It
// returns a nil route when nothing matches. This function is safe for
// concurrent use by multiple goroutines and while mutations on routes are
// ongoing.
func (m *Mux) Lookup(method, path string) (*Route, trail.Variables) {
	pp, err := m.parser.ParsePath(path)
	if err != nil {
		return nil, nil
	}
	return m.index.Load().lookup(method, pp)
}

// ServeHTTP is the main entry point to serve a request. It handles all
// incoming HTTP requests and dispatches them to the appropriate handler based
// on the request's method and path.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if len(r.URL.RawPath) > 0 {
		// Using RawPath to prevent unintended match (e.g. /search/a%2Fb/1)
		path = r.URL.RawPath
	}

	idx := m.index.Load()
	pp, err := m.parser.ParsePath(path)
	if err == nil {
		if rte, vars := idx.lookup(r.Method, pp); rte != nil {
			c := m.getContext(w, r)
			c.route = rte
			c.vars = vars
			rte.hall(c)
			m.putContext(c)
			return
		}

		for _, mnt := range idx.mounts {
			if pm := mnt.pattern.MatchPrefix(pp); pm != nil {
				mnt.serve(w, r, pm)
				return
			}
		}

		if m.redirectTrailingSlash && r.Method != http.MethodConnect && path != "/" {
			if m.matchesWithToggledSlash(r.Method, path, idx) {
				c := m.getContext(w, r)
				m.tsrRedirect(c)
				m.putContext(c)
				return
			}
		}

		if m.handleMethodNotAllowed {
			if allowed := idx.allowedMethods(r.Method, pp); allowed != "" {
				c := m.getContext(w, r)
				c.SetHeader(headerAllow, allowed)
				m.noMethod(c)
				m.putContext(c)
				return
			}
		}
	}

	c := m.getContext(w, r)
	m.noRoute(c)
	m.putContext(c)
}

func (m *Mux) getContext(w http.ResponseWriter, r *http.Request) *Context {
	c := m.pool.Get().(*Context)
	c.mux = m
	c.reset(w, r)
	return c
}

func (m *Mux) putContext(c *Context) {
	m.pool.Put(c)
}

// matchesWithToggledSlash reports whether a route registered for method
// matches the path once its trailing separator is toggled.
func (m *Mux) matchesWithToggledSlash(method, path string, idx *routeIndex) bool {
	pp, err := m.parser.ParsePath(toggleTrailingSeparator(path, m.parser.Separator()))
	if err != nil {
		return false
	}
	for _, rte := range idx.byMethod[method] {
		if rte.pattern.Match(pp) {
			return true
		}
	}
	return false
}

// toggleTrailingSeparator strips the trailing separator of path, or appends
// one when missing.
func toggleTrailingSeparator(path string, sep byte) string {
	if len(path) > 1 && path[len(path)-1] == sep {
		return path[:len(path)-1]
	}
	return path + string(sep)
}

func (idx *routeIndex) lookup(method string, pp trail.Path) (*Route, trail.Variables) {
	for _, rte := range idx.byMethod[method] {
		if vars, ok := rte.pattern.Extract(pp); ok {
			return rte, vars
		}
	}
	return nil, nil
}

// allowedMethods renders the Allow header value for a path matched by routes
// of other methods, or an empty string when no other method matches.
func (idx *routeIndex) allowedMethods(method string, pp trail.Path) string {
	var sb strings.Builder
	for _, m := range slices.Sorted(maps.Keys(idx.byMethod)) {
		if m == method {
			continue
		}
		for _, rte := range idx.byMethod[m] {
			if rte.pattern.Match(pp) {
				if sb.Len() > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(m)
				break
			}
		}
	}
	return sb.String()
}

func (idx *routeIndex) clone() *routeIndex {
	next := &routeIndex{
		byMethod: make(map[string][]*Route, len(idx.byMethod)),
		mounts:   slices.Clone(idx.mounts),
		size:     idx.size,
	}
	for method, routes := range idx.byMethod {
		next.byMethod[method] = slices.Clone(routes)
	}
	return next
}

// serve delegates the request to the mounted handler with the matched prefix
// stripped, the way [http.StripPrefix] re-roots a request.
func (mnt *mount) serve(w http.ResponseWriter, r *http.Request, pm *trail.PrefixMatch) {
	rest := pm.Remaining.String()
	if rest == "" || rest[0] != '/' {
		rest = "/" + rest
	}

	u2 := *r.URL
	if r.URL.RawPath != "" {
		u2.RawPath = rest
		if p, err := url.PathUnescape(rest); err == nil {
			u2.Path = p
		} else {
			u2.Path = rest
		}
	} else {
		u2.Path = rest
	}

	r2 := new(http.Request)
	*r2 = *r
	r2.URL = &u2
	if len(pm.Variables) > 0 {
		r2 = r2.WithContext(netcontext.WithValue(r2.Context(), varsKey, pm.Variables))
	}
	mnt.next.ServeHTTP(w, r2)
}

// internalTrailingSlashHandler replies with a permanent redirect to the
// request path with its trailing separator toggled, preserving the raw query.
func internalTrailingSlashHandler(c *Context) {
	req := c.Request()

	code := http.StatusMovedPermanently
	if req.Method != http.MethodGet {
		// Will be redirected only with the same method (SEO friendly)
		code = http.StatusPermanentRedirect
	}

	path := req.URL.Path
	if len(req.URL.RawPath) > 0 {
		path = req.URL.RawPath
	}
	location := escapeLeadingSlashes(toggleTrailingSeparator(path, c.mux.parser.Separator()))
	if q := req.URL.RawQuery; q != "" {
		location += "?" + q
	}
	http.Redirect(c.Writer(), req, location, code)
}

// escapeLeadingSlashes prevents a redirect target starting with // from being
// interpreted as a scheme-relative URL by the client.
func escapeLeadingSlashes(path string) string {
	if len(path) > 1 && path[0] == '/' && path[1] == '/' {
		return "/%2F" + strings.TrimLeft(path, "/")
	}
	return path
}

func applyMiddleware(mws []MiddlewareFunc, h HandlerFunc) HandlerFunc {
	m := h
	for i := len(mws) - 1; i >= 0; i-- {
		m = mws[i](m)
	}
	return m
}

// DefaultNotFoundHandler is a simple [HandlerFunc] that replies to each
// request with a "404 page not found" reply.
func DefaultNotFoundHandler(c *Context) {
	http.Error(c.Writer(), "404 page not found", http.StatusNotFound)
}

// DefaultMethodNotAllowedHandler is a simple [HandlerFunc] that replies to
// each request with a "405 Method Not Allowed" reply.
func DefaultMethodNotAllowedHandler(c *Context) {
	http.Error(c.Writer(), http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
