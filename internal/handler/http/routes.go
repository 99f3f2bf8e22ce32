// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-api-gate/internal/app"
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
)

// Init populates the application's registries and route table.
//
// Registration order matters for the route table: routes are matched
// first-registered-first, so more specific patterns must precede the ones
// that would shadow them.
func (h *Handler) Init(a *app.Application) {
	// named middleware registry
	a.RegisterMiddleware("auth", h.authMiddleware())
	a.RegisterMiddleware("traceid", h.traceIDMiddleware())
	a.RegisterMiddleware("logging", h.loggingMiddleware())

	// controllers
	a.RegisterController("AuthController", h.authController())
	a.RegisterController("UserController", h.userController())

	// global chain: every request is traced and logged
	a.Use("traceid", "logging")

	// routes without authorization
	a.GET("/", dispatch.Handler(h.hello))
	a.POST("/auth/register", dispatch.Action("AuthController", "register"))
	a.POST("/auth/login", dispatch.Action("AuthController", "login"))

	// protected resource
	a.Resource("/users", "UserController", "auth")
}

func (h *Handler) hello(c *dispatch.Context) error {
	return c.Success(map[string]string{"message": "Hello World!"})
}
