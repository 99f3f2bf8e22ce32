// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/utils"
)

const traceIDHeader = "X-Trace-ID"

// traceIDMiddleware builds the "traceid" middleware. It adopts the trace
// identifier supplied by the caller or mints a fresh one, attaches a
// trace-scoped child logger to the request context, and echoes the
// identifier back in the response headers.
func (h *Handler) traceIDMiddleware() dispatch.Middleware {
	uuidGenerator := utils.NewUUIDGenerator()

	return dispatch.MiddlewareFunc(func(c *dispatch.Context) bool {
		ctx := c.Request.Context()

		traceID := c.Request.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuidGenerator.Generate()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
			return zc.Str("trace_id", traceID)
		})
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Writer.Header().Set(traceIDHeader, traceID)
		return true
	})
}
