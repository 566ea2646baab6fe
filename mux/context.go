// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import (
	netcontext "context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tigerwill90/trail"
)

const (
	headerAllow       = "Allow"
	headerLocation    = "Location"
	headerContentType = "Content-Type"

	mimeTextPlainCharsetUTF8 = "text/plain; charset=utf-8"
)

// Context holds request-related information and allows interaction with the
// [ResponseWriter]. The Context API is not thread-safe and its lifetime is
// limited to the duration of the [HandlerFunc] execution, as the underlying
// instance is reused as soon as the handler returns (see [Context.Clone]).
type Context struct {
	w     ResponseWriter
	req   *http.Request
	mux   *Mux
	route *Route
	vars  trail.Variables

	cachedQuery url.Values
	rec         recorder
}

// reset prepares the context for a new request, discarding any previously
// recorded state.
func (c *Context) reset(w http.ResponseWriter, r *http.Request) {
	c.rec.reset(w)
	if _, ok := w.(http.Flusher); ok {
		c.w = flushWriter{&c.rec}
	} else {
		c.w = &c.rec
	}
	c.req = r
	c.route = nil
	c.vars = nil
	c.cachedQuery = nil
}

// Ctx returns the context associated with the current request.
func (c *Context) Ctx() netcontext.Context {
	return c.req.Context()
}

// Request returns the current *http.Request.
func (c *Context) Request() *http.Request {
	return c.req
}

// SetRequest sets the *http.Request.
func (c *Context) SetRequest(r *http.Request) {
	c.req = r
}

// Writer returns the [ResponseWriter].
func (c *Context) Writer() ResponseWriter {
	return c.w
}

// SetWriter sets the [ResponseWriter].
func (c *Context) SetWriter(w ResponseWriter) {
	c.w = w
}

// Route returns the matched [Route], or nil for handlers outside a route
// match such as the no route handler.
func (c *Context) Route() *Route {
	return c.route
}

// Pattern returns the registered pattern text of the matched route, or an
// empty string when no route matched.
func (c *Context) Pattern() string {
	if c.route == nil {
		return ""
	}
	return c.route.pattern.String()
}

// Vars returns the variables bound while matching the route pattern.
func (c *Context) Vars() trail.Variables {
	return c.vars
}

// Var retrieves a matching pattern variable by name. It's a helper for
// c.Vars().Get(name).
func (c *Context) Var(name string) string {
	return c.vars.Get(name)
}

// Matrix returns the matrix parameters recorded for the named variable, or
// nil when there are none. It's a helper for c.Vars().Params(name).
func (c *Context) Matrix(name string) url.Values {
	return c.vars.Params(name)
}

// QueryParams parses RawQuery and returns the corresponding values.
// It's a helper for c.Request().URL.Query(). Note that the parsed
// result is cached.
func (c *Context) QueryParams() url.Values {
	if c.cachedQuery == nil {
		if c.req != nil {
			c.cachedQuery = c.req.URL.Query()
		} else {
			c.cachedQuery = url.Values{}
		}
	}
	return c.cachedQuery
}

// QueryParam returns the first query value associated with the given key.
// It's a helper for c.QueryParams().Get(name).
func (c *Context) QueryParam(name string) string {
	return c.QueryParams().Get(name)
}

// SetHeader sets the response header for the given key to the specified value.
func (c *Context) SetHeader(key, value string) {
	c.w.Header().Set(key, value)
}

// Header retrieves the value of the request header for the given key.
func (c *Context) Header(key string) string {
	return c.req.Header.Get(key)
}

// String sends a formatted string with the specified status code.
func (c *Context) String(code int, format string, values ...any) (err error) {
	if c.w.Header().Get(headerContentType) == "" {
		c.w.Header().Set(headerContentType, mimeTextPlainCharsetUTF8)
	}
	c.w.WriteHeader(code)
	_, err = fmt.Fprintf(c.w, format, values...)
	return
}

// Blob sends a byte slice with the specified status code and content type.
func (c *Context) Blob(code int, contentType string, buf []byte) (err error) {
	c.w.Header().Set(headerContentType, contentType)
	c.w.WriteHeader(code)
	_, err = c.w.Write(buf)
	return
}

// Mux returns the [Mux] in use to serve the request.
func (c *Context) Mux() *Mux {
	return c.mux
}

// Clone returns a copy of the Context that is safe to use after the
// [HandlerFunc] returns. Writing on the response writer of a cloned Context
// returns [ErrDiscardedResponseWriter].
func (c *Context) Clone() *Context {
	cp := Context{
		rec:   c.rec,
		req:   c.req,
		mux:   c.mux,
		route: c.route,
		vars:  c.vars.Clone(),
	}
	cp.rec.ResponseWriter = noopWriter{}
	cp.w = &cp.rec
	return &cp
}
