// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
)

// Application is the composition root of the request pipeline. It owns the
// dispatcher and exposes the registration surface the transport layer uses
// to declare middleware, controllers, and routes.
//
// All registration happens during startup; afterwards the Application is
// an immutable http.Handler.
type Application struct {
	dispatcher *dispatch.Dispatcher
	cfg        *config.StructuredConfig
	logger     *logger.Logger
}

// New constructs the Application from a validated configuration.
//
// The process clock is normalized to the configured IANA timezone. An
// unknown zone name is a startup failure: a misconfigured process must
// not serve a single request.
func New(cfg *config.StructuredConfig, log *logger.Logger) (*Application, error) {
	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Err(err).Str("timezone", cfg.App.Timezone).Msg("unknown timezone")
		return nil, fmt.Errorf("unknown timezone %q: %w", cfg.App.Timezone, err)
	}
	time.Local = location

	return &Application{
		dispatcher: dispatch.NewDispatcher(cfg.App, cfg.CORS, log),
		cfg:        cfg,
		logger:     log,
	}, nil
}

// Use appends middleware identifiers to the global chain.
func (a *Application) Use(names ...string) {
	a.dispatcher.Use(names...)
}

// RegisterMiddleware adds a named middleware to the registry.
func (a *Application) RegisterMiddleware(name string, m dispatch.Middleware) {
	a.dispatcher.RegisterMiddleware(name, m)
}

// RegisterController adds a named controller action set to the registry.
func (a *Application) RegisterController(name string, actions dispatch.Actions) {
	a.dispatcher.RegisterController(name, actions)
}

// GET registers a route answering HTTP GET.
func (a *Application) GET(pattern string, handler dispatch.HandlerRef, middleware ...string) {
	a.dispatcher.Handle(http.MethodGet, pattern, handler, middleware...)
}

// POST registers a route answering HTTP POST.
func (a *Application) POST(pattern string, handler dispatch.HandlerRef, middleware ...string) {
	a.dispatcher.Handle(http.MethodPost, pattern, handler, middleware...)
}

// PUT registers a route answering HTTP PUT.
func (a *Application) PUT(pattern string, handler dispatch.HandlerRef, middleware ...string) {
	a.dispatcher.Handle(http.MethodPut, pattern, handler, middleware...)
}

// DELETE registers a route answering HTTP DELETE.
func (a *Application) DELETE(pattern string, handler dispatch.HandlerRef, middleware ...string) {
	a.dispatcher.Handle(http.MethodDelete, pattern, handler, middleware...)
}

// Resource registers the five conventional routes of a REST resource on
// the given controller:
//
//	GET    pattern        → index
//	GET    pattern/{id}   → show
//	POST   pattern        → store
//	PUT    pattern/{id}   → update
//	DELETE pattern/{id}   → delete
//
// The optional middleware identifiers are attached to every route of the
// resource.
func (a *Application) Resource(pattern, controller string, middleware ...string) {
	itemPattern := pattern + "/{id}"

	a.GET(pattern, dispatch.Action(controller, "index"), middleware...)
	a.GET(itemPattern, dispatch.Action(controller, "show"), middleware...)
	a.POST(pattern, dispatch.Action(controller, "store"), middleware...)
	a.PUT(itemPattern, dispatch.Action(controller, "update"), middleware...)
	a.DELETE(itemPattern, dispatch.Action(controller, "delete"), middleware...)
}

// ServeHTTP delegates to the dispatcher.
func (a *Application) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.dispatcher.ServeHTTP(w, r)
}
