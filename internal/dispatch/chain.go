// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import "fmt"

// RunChain executes the middleware identified by names strictly in order,
// resolving each through resolve.
//
// The first middleware whose Handle returns false halts the chain; its
// name is returned so the caller can record which interceptor blocked the
// request, and the caller must not proceed to the next dispatch stage.
// An identifier that fails to resolve is a fatal configuration error for
// the request: the chain stops immediately with a wrapped
// [ErrMiddlewareNotFound] and is never silently skipped.
//
// The executor threads no shared state between middleware beyond the
// request context itself.
func RunChain(c *Context, names []string, resolve func(string) (Middleware, bool)) (haltedBy string, err error) {
	for _, name := range names {
		m, ok := resolve(name)
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMiddlewareNotFound, name)
		}

		if !m.Handle(c) {
			return name, nil
		}
	}

	return "", nil
}
