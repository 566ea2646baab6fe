// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import (
	"github.com/tigerwill90/trail"
)

// Route represents an immutable registered route: a compiled pattern bound to
// a handler for one HTTP method.
type Route struct {
	pattern *trail.Pattern
	hbase   HandlerFunc
	hall    HandlerFunc
	method  string
	name    string
}

// Handle calls the route handler with the provided [Context], bypassing the
// router middleware chain.
func (r *Route) Handle(c *Context) {
	r.hbase(c)
}

// Method returns the HTTP method this route responds to.
func (r *Route) Method() string {
	return r.method
}

// Pattern returns the compiled route pattern.
func (r *Route) Pattern() *trail.Pattern {
	return r.pattern
}

// String returns the registered pattern text.
func (r *Route) String() string {
	return r.pattern.String()
}

// Name returns the name of this [Route], or an empty string when none was set
// with [WithName].
func (r *Route) Name() string {
	return r.name
}
