// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/models"
)

// Route is one entry of the route table: a compiled pattern, the handler
// reference it dispatches to, and the ordered identifiers of its
// route-specific middleware. Routes are immutable once registered.
type Route struct {
	Method     string
	Pattern    *Pattern
	Handler    HandlerRef
	Middleware []string
}

// Dispatcher resolves requests against the route table and drives each
// request through the dispatch state machine:
//
//	Received → CorsPreflightCheck → GlobalMiddleware → RouteResolution →
//	RouteMiddleware → HandlerExecution → Responded
//
// The route table and both registries are populated at startup and are
// read-only afterwards, so a single Dispatcher is safe for concurrent
// request handling without locking.
type Dispatcher struct {
	routes map[string][]*Route
	index  map[string]map[string]int

	globalChain []string
	middlewares map[string]Middleware
	controllers map[string]Actions

	app    config.App
	cors   config.CORS
	logger *logger.Logger
}

// NewDispatcher constructs an empty dispatcher configured with the
// application and CORS settings.
func NewDispatcher(app config.App, cors config.CORS, log *logger.Logger) *Dispatcher {
	log.Info().Msg("dispatcher created")
	return &Dispatcher{
		routes:      make(map[string][]*Route),
		index:       make(map[string]map[string]int),
		middlewares: make(map[string]Middleware),
		controllers: make(map[string]Actions),
		app:         app,
		cors:        cors,
		logger:      log,
	}
}

// Use appends middleware identifiers to the global chain. The global
// chain runs before route resolution on every non-preflight request.
func (d *Dispatcher) Use(names ...string) {
	d.globalChain = append(d.globalChain, names...)
}

// Handle registers a route for the given method and path template.
//
// Uniqueness is by (method, literal pattern string): registering the same
// pair again silently replaces the earlier entry while keeping its
// position in the matching order. Matching tries routes in registration
// order and stops at the first hit, so more specific patterns must be
// registered before ambiguous ones.
func (d *Dispatcher) Handle(method, pattern string, handler HandlerRef, middleware ...string) {
	route := &Route{
		Method:     method,
		Pattern:    CompilePattern(pattern),
		Handler:    handler,
		Middleware: middleware,
	}

	if d.index[method] == nil {
		d.index[method] = make(map[string]int)
	}

	if at, ok := d.index[method][pattern]; ok {
		d.routes[method][at] = route
		return
	}

	d.index[method][pattern] = len(d.routes[method])
	d.routes[method] = append(d.routes[method], route)
}

// Routes returns the registered routes for a method, in matching order.
// Intended for startup diagnostics and tests.
func (d *Dispatcher) Routes(method string) []*Route {
	return d.routes[method]
}

// ServeHTTP drives the full dispatch state machine for one request.
// Every outcome, including a panic below the boundary, terminates in a
// well-formed response.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := &Context{Writer: w, Request: r, debug: d.app.Debug}

	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Any("panic", rec).
				Msg("panic recovered during dispatch")
			d.respondInternal(c, "unexpected failure during dispatch")
		}
	}()

	// CORS headers are set before any body, on every outcome.
	d.setCORSHeaders(w)

	d.logger.Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request received")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	haltedBy, err := RunChain(c, d.globalChain, d.resolveMiddleware)
	if err != nil {
		d.respondChainError(c, r, err)
		return
	}
	if haltedBy != "" {
		d.logger.Debug().
			Str("middleware", haltedBy).
			Str("path", r.URL.Path).
			Msg("request blocked by global middleware")
		return
	}

	route, params, found := d.resolve(r.Method, r.URL.Path)
	if !found {
		d.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("no route matched")
		_ = c.Fail(ErrRouteNotFound.Error(), http.StatusNotFound)
		return
	}

	c.Params = params
	d.logger.Debug().
		Str("method", r.Method).
		Str("pattern", route.Pattern.String()).
		Strs("params", params).
		Msg("route matched")

	haltedBy, err = RunChain(c, route.Middleware, d.resolveMiddleware)
	if err != nil {
		d.respondChainError(c, r, err)
		return
	}
	if haltedBy != "" {
		d.logger.Debug().
			Str("middleware", haltedBy).
			Str("pattern", route.Pattern.String()).
			Msg("request blocked by route middleware")
		return
	}

	handler, err := d.resolveHandler(route.Handler)
	if err != nil {
		d.logger.Error().
			Err(err).
			Str("pattern", route.Pattern.String()).
			Msg("handler resolution failed")
		d.respondInternal(c, err.Error())
		return
	}

	if err = handler(c); err != nil {
		d.respondHandlerError(c, r, err)
	}
}

// resolve strips the configured base path, normalizes the request path,
// and walks the method's routes in registration order, returning the
// first match together with its captured parameters.
func (d *Dispatcher) resolve(method, path string) (*Route, []string, bool) {
	if d.app.BasePath != "" && strings.HasPrefix(path, d.app.BasePath) {
		path = path[len(d.app.BasePath):]
	}

	for _, route := range d.routes[method] {
		if params, ok := route.Pattern.Match(path); ok {
			return route, params, true
		}
	}

	return nil, nil, false
}

// setCORSHeaders writes the configured cross-origin headers.
func (d *Dispatcher) setCORSHeaders(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", d.cors.AllowOrigin)
	header.Set("Access-Control-Allow-Methods", d.cors.AllowMethods)
	header.Set("Access-Control-Allow-Headers", d.cors.AllowHeaders)
	header.Set("Access-Control-Allow-Credentials", "true")
}

// respondChainError reports a middleware chain that failed to execute,
// which is always a configuration fault, as an internal error.
func (d *Dispatcher) respondChainError(c *Context, r *http.Request, err error) {
	d.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("middleware chain failed")
	d.respondInternal(c, err.Error())
}

// respondHandlerError is the single top-level conversion point for errors
// escaping a handler. Validation failures become 422 field maps; anything
// else becomes a 500 whose detail is gated by the debug flag.
func (d *Dispatcher) respondHandlerError(c *Context, r *http.Request, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		_ = c.FailValidation(validationErr.Fields)
		return
	}

	d.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("handler returned error")
	d.respondInternal(c, err.Error())
}

// respondInternal emits the internal-error envelope: the full detail when
// the debug flag is set, a fixed generic message otherwise.
func (d *Dispatcher) respondInternal(c *Context, detail string) {
	message := "Internal server error"
	if c.debug {
		message = detail
	}
	_ = c.Fail(message, http.StatusInternalServerError)
}
