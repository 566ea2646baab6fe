// Copyright 2025 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/trail/blob/master/LICENSE.txt.

package mux

import "errors"

var (
	// ErrInvalidRoute is returned when a route cannot be registered, typically
	// because its pattern does not compile or the method is missing.
	ErrInvalidRoute = errors.New("invalid route")
	// ErrRouteExist is returned when a route is already registered for the
	// same method and pattern.
	ErrRouteExist = errors.New("route already registered")
	// ErrRouteNotFound is returned when no route matches the given method and
	// pattern.
	ErrRouteNotFound = errors.New("route not found")
	// ErrInvalidConfig is returned when a mux or route option is misconfigured.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrDiscardedResponseWriter is returned when writing on the response
	// writer of a cloned [Context].
	ErrDiscardedResponseWriter = errors.New("discarded response writer")
)
