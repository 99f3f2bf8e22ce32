// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import "errors"

// Sentinel errors surfaced by the dispatch engine. Callers can match
// against them with [errors.Is].
var (
	// ErrRouteNotFound is returned when no registered pattern matches the
	// request method and path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrHandlerNotFound is returned when a route references a controller
	// or action that is not present in the controller registry.
	ErrHandlerNotFound = errors.New("handler not found")

	// ErrMiddlewareNotFound is returned when a route or the global chain
	// references a middleware identifier that is not present in the
	// middleware registry. It is a fatal configuration error for the
	// request: the chain never skips an unresolvable entry.
	ErrMiddlewareNotFound = errors.New("middleware not found")
)
