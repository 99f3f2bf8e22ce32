// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Context is the per-request invocation context threaded through the
// middleware chain and into the handler. It carries the ambient request,
// the response writer, and the path parameters captured by the matched
// route pattern, in pattern order.
//
// A Context is created by the dispatcher for a single request and must
// not be retained after the handler returns.
type Context struct {
	// Writer is the response transport. Middleware that halts the chain
	// must have written a response to it already.
	Writer http.ResponseWriter

	// Request is the inbound HTTP request.
	Request *http.Request

	// Params holds the values captured by the route pattern's
	// placeholders, positionally in pattern order. Empty for routes
	// without placeholders.
	Params []string

	debug bool
}

// Param returns the i-th captured path parameter, or an empty string when
// the index is out of range.
func (c *Context) Param(i int) string {
	if i < 0 || i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

// BindJSON decodes the request body into dst.
func (c *Context) BindJSON(dst any) error {
	if c.Request.Body == nil {
		return fmt.Errorf("empty request body")
	}
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}
	return nil
}

// HandlerFunc is a route handler. Returning a non-nil error hands control
// to the dispatcher's top-level error boundary; handlers that emit their
// own response return nil.
type HandlerFunc func(c *Context) error

// Middleware is an interceptor that inspects a request before the handler
// runs. Handle returns true to continue the chain; returning false halts
// processing, in which case the middleware must already have emitted a
// response.
type Middleware interface {
	Handle(c *Context) bool
}

// MiddlewareFunc adapts a plain function to the [Middleware] interface.
type MiddlewareFunc func(c *Context) bool

// Handle implements [Middleware].
func (f MiddlewareFunc) Handle(c *Context) bool {
	return f(c)
}
