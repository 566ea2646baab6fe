// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import (
	netcontext "context"
	"net/http"

	"github.com/tigerwill90/trail"
)

type ctxKey struct{}

// varsKey is the request context key under which bound pattern variables
// travel across handler boundaries, e.g. into mounted handlers.
var varsKey = ctxKey{}

// VarsFromContext returns the pattern variables stored in ctx by a mounted
// handler delegation or by [WrapF]/[WrapH], or nil when there are none.
func VarsFromContext(ctx netcontext.Context) trail.Variables {
	v, _ := ctx.Value(varsKey).(trail.Variables)
	return v
}

// WrapF is an adapter for wrapping http.HandlerFunc and returns a
// [HandlerFunc] function. The pattern variables are accessed by the wrapped
// handler through the request context, see [VarsFromContext].
func WrapF(f http.HandlerFunc) HandlerFunc {
	return func(c *Context) {
		if len(c.Vars()) > 0 {
			ctx := netcontext.WithValue(c.Ctx(), varsKey, c.Vars().Clone())
			f.ServeHTTP(c.Writer(), c.Request().WithContext(ctx))
			return
		}
		f.ServeHTTP(c.Writer(), c.Request())
	}
}

// WrapH is an adapter for wrapping http.Handler and returns a [HandlerFunc]
// function. The pattern variables are accessed by the wrapped handler through
// the request context, see [VarsFromContext].
func WrapH(h http.Handler) HandlerFunc {
	return func(c *Context) {
		if len(c.Vars()) > 0 {
			ctx := netcontext.WithValue(c.Ctx(), varsKey, c.Vars().Clone())
			h.ServeHTTP(c.Writer(), c.Request().WithContext(ctx))
			return
		}
		h.ServeHTTP(c.Writer(), c.Request())
	}
}

// NewTestContext returns a standalone [Context] detached from any Mux, useful
// for unit testing handlers. The context records the response into w.
func NewTestContext(w http.ResponseWriter, r *http.Request) *Context {
	c := new(Context)
	c.reset(w, r)
	return c
}
