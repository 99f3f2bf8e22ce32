// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-api-gate/internal/app"
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/internal/utils"
)

// authMiddleware builds the "auth" middleware that guards protected routes.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// verifies it via [service.AuthService.VerifyToken], and — on success — stores
// the verified claims and the "sub" claim in the request context under
// [utils.ClaimsCtxKey] and [utils.SubjectCtxKey] before letting the chain
// continue.
//
// The middleware halts the chain with HTTP 401 Unauthorized in the
// following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value does not carry a bearer token
//     ([ErrInvalidAuthorizationHeader]).
//   - The token is expired, tampered, or otherwise fails verification.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) authMiddleware() dispatch.Middleware {
	return dispatch.MiddlewareFunc(func(c *dispatch.Context) bool {
		log := logger.FromRequest(c.Request)

		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			_ = c.Fail(app.MsgAuthorizationRequired, http.StatusUnauthorized)
			return false
		}

		tokenString, ok := token.ExtractBearer(authHeader)
		if !ok {
			log.Err(ErrInvalidAuthorizationHeader).Send()
			_ = c.Fail(app.MsgAuthorizationRequired, http.StatusUnauthorized)
			return false
		}

		ctx := c.Request.Context()
		claims, err := h.services.AuthService.VerifyToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("token verification failed")
			_ = c.Fail(app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return false
		}

		// Store the verified claims in the context so that downstream
		// handlers can read them without re-verifying the token.
		ctx = context.WithValue(ctx, utils.ClaimsCtxKey, map[string]any(claims))
		if subject, found := claims["sub"]; found {
			ctx = context.WithValue(ctx, utils.SubjectCtxKey, fmt.Sprint(subject))
		}
		c.Request = c.Request.WithContext(ctx)

		return true
	})
}
