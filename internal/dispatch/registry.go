// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import "fmt"

// Actions maps an action name (e.g. "show") to its handler. A controller
// is registered as one Actions set under a controller name.
type Actions map[string]HandlerFunc

// HandlerRef is a reference to the callable a route dispatches to: either
// a direct [HandlerFunc] or a (controller, action) name pair resolved
// through the controller registry at dispatch time.
type HandlerRef struct {
	fn         HandlerFunc
	controller string
	action     string
}

// Handler wraps a free-standing function into a HandlerRef.
func Handler(fn HandlerFunc) HandlerRef {
	return HandlerRef{fn: fn}
}

// Action references a named action on a registered controller.
func Action(controller, action string) HandlerRef {
	return HandlerRef{controller: controller, action: action}
}

// RegisterMiddleware adds a middleware to the registry under name.
// Registrations happen at startup; the registry is read-only afterwards.
func (d *Dispatcher) RegisterMiddleware(name string, m Middleware) {
	d.middlewares[name] = m
}

// RegisterController adds a controller's action set to the registry under
// name. Registrations happen at startup; the registry is read-only
// afterwards.
func (d *Dispatcher) RegisterController(name string, actions Actions) {
	d.controllers[name] = actions
}

// resolveMiddleware looks a middleware identifier up in the registry.
func (d *Dispatcher) resolveMiddleware(name string) (Middleware, bool) {
	m, ok := d.middlewares[name]
	return m, ok
}

// resolveHandler turns a HandlerRef into an invocable function. A
// reference to an unregistered controller or action yields a wrapped
// [ErrHandlerNotFound].
func (d *Dispatcher) resolveHandler(ref HandlerRef) (HandlerFunc, error) {
	if ref.fn != nil {
		return ref.fn, nil
	}

	actions, ok := d.controllers[ref.controller]
	if !ok {
		return nil, fmt.Errorf("%w: unknown controller %q", ErrHandlerNotFound, ref.controller)
	}

	fn, ok := actions[ref.action]
	if !ok {
		return nil, fmt.Errorf("%w: controller %q has no action %q", ErrHandlerNotFound, ref.controller, ref.action)
	}

	return fn, nil
}
