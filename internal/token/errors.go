// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package token

import "errors"

// Sentinel errors returned by the token codec. Callers can match against
// them with [errors.Is].
var (
	// ErrEncoding is returned by Encode when the claim set cannot be
	// serialized to JSON (e.g. a claim value holds a channel or function).
	ErrEncoding = errors.New("claims are not serializable")

	// ErrMalformedToken is returned by Decode when the input is empty or
	// does not split into exactly three dot-separated segments.
	ErrMalformedToken = errors.New("malformed token")

	// ErrInvalidEncoding is returned by Decode when the header or claims
	// segment is not valid base64url-encoded JSON.
	ErrInvalidEncoding = errors.New("invalid token encoding")

	// ErrInvalidSignature is returned by Decode when the recomputed
	// HMAC-SHA256 signature does not match the one carried by the token.
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrTokenExpired is returned by Decode when the "exp" claim is present
	// and the token is no longer valid at the current time.
	ErrTokenExpired = errors.New("token is expired")
)
