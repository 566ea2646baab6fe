// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import (
	"fmt"

	"github.com/tigerwill90/trail"
)

type Option interface {
	applyGlob(sealedOption) error
}

type RouteOption interface {
	applyRoute(sealedOption) error
}

type sealedOption struct {
	mux   *Mux
	route *Route
}

type optionFunc func(sealedOption) error

func (o optionFunc) applyGlob(s sealedOption) error {
	return o(s)
}

func (o optionFunc) applyRoute(s sealedOption) error {
	return o(s)
}

// WithParser sets the [trail.Parser] used to compile route patterns and parse
// request paths. All routes of a [Mux] share the parser's separator, case
// sensitivity and trailing separator configuration. By default, a parser with
// the '/' separator, case-sensitive matching and strict trailing separator
// handling is used.
func WithParser(parser *trail.Parser) Option {
	return optionFunc(func(s sealedOption) error {
		if parser == nil {
			return fmt.Errorf("%w: parser cannot be nil", ErrInvalidConfig)
		}
		s.mux.parser = parser
		return nil
	})
}

// WithMiddleware attaches middleware to the router. The middlewares are
// applied to every route handler in the order they are provided, and also wrap
// the no route and no method handlers so they observe every request outcome.
func WithMiddleware(m ...MiddlewareFunc) Option {
	return optionFunc(func(s sealedOption) error {
		for i := range m {
			if m[i] == nil {
				return fmt.Errorf("%w: middleware cannot be nil", ErrInvalidConfig)
			}
		}
		s.mux.mws = append(s.mux.mws, m...)
		return nil
	})
}

// WithNoRouteHandler register an [HandlerFunc] which is called when no
// matching route is found. By default, the [DefaultNotFoundHandler] is used.
func WithNoRouteHandler(handler HandlerFunc) Option {
	return optionFunc(func(s sealedOption) error {
		if handler == nil {
			return fmt.Errorf("%w: no route handler cannot be nil", ErrInvalidConfig)
		}
		s.mux.noRouteBase = handler
		return nil
	})
}

// WithNoMethodHandler register an [HandlerFunc] which is called when the
// request cannot be routed, but the same path matches routes registered for
// other methods. The "Allow" header is automatically set before calling the
// handler. By default, the [DefaultMethodNotAllowedHandler] is used. Note that
// this option automatically enables [WithNoMethod].
func WithNoMethodHandler(handler HandlerFunc) Option {
	return optionFunc(func(s sealedOption) error {
		if handler == nil {
			return fmt.Errorf("%w: no method handler cannot be nil", ErrInvalidConfig)
		}
		s.mux.noMethodBase = handler
		s.mux.handleMethodNotAllowed = true
		return nil
	})
}

// WithNoMethod enables the "405 Method Not Allowed" reply when the request
// path matches routes registered for other methods. The "Allow" header lists
// the permitted methods. Disabled by default.
func WithNoMethod(enable bool) Option {
	return optionFunc(func(s sealedOption) error {
		s.mux.handleMethodNotAllowed = enable
		return nil
	})
}

// WithRedirectTrailingSlash enables automatic redirection when no route
// matches the request path, but one matches it with the trailing separator
// toggled. The client is redirected with a 301 for GET requests and 308 for
// all other methods. Disabled by default.
func WithRedirectTrailingSlash(enable bool) Option {
	return optionFunc(func(s sealedOption) error {
		s.mux.redirectTrailingSlash = enable
		return nil
	})
}

// WithName attach a name to the registered route, retrievable with
// [Route.Name].
func WithName(name string) RouteOption {
	return optionFunc(func(s sealedOption) error {
		s.route.name = name
		return nil
	})
}
