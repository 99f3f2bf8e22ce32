// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
)

// loggingMiddleware builds the "logging" middleware. It records every
// inbound request with the trace-scoped logger before the chain proceeds.
func (h *Handler) loggingMiddleware() dispatch.Middleware {
	return dispatch.MiddlewareFunc(func(c *dispatch.Context) bool {
		logger.FromRequest(c.Request).Info().
			Str("uri", c.Request.RequestURI).
			Str("method", c.Request.Method).
			Str("remote", c.Request.RemoteAddr).
			Msg("request received")

		return true
	})
}
