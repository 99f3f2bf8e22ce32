// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package token implements the signed, expiring claim-set codec used for
// stateless authentication.
//
// A token is three dot-joined base64url segments (padding stripped):
// a fixed {"alg":"HS256","typ":"JWT"} header, the JSON-serialized claims,
// and an HMAC-SHA256 signature computed over the first two segments.
// The codec is stateless and safe for concurrent use.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Claims is the payload of a token: a key-value set describing the
// authenticated principal. Encode augments it with "iat" and "exp"
// timestamps; the codec treats every other key as opaque.
type Claims map[string]any

// encodedHeader is the base64url form of the canonical token header.
// The header never varies: only HS256 is produced or accepted.
var encodedHeader = base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

// Encode serializes claims into a signed compact token.
//
// The claim set is copied and augmented with:
//   - iat — issue time, Unix seconds, set to the current time;
//   - exp — expiry time, iat plus ttl.
//
// The signature is an HMAC-SHA256 digest over
// "base64url(header).base64url(claims)" keyed by secret.
//
// The only failure mode is a claim value that cannot be serialized to
// JSON, reported as a wrapped [ErrEncoding].
func Encode(claims Claims, secret string, ttl time.Duration) (string, error) {
	now := time.Now()

	stamped := make(Claims, len(claims)+2)
	for key, value := range claims {
		stamped[key] = value
	}
	stamped["iat"] = now.Unix()
	stamped["exp"] = now.Add(ttl).Unix()

	payload, err := json.Marshal(stamped)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}

	signingInput := encodedHeader + "." + base64.RawURLEncoding.EncodeToString(payload)
	signature := sign(signingInput, secret)

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// Decode verifies a compact token and returns its claim set, including the
// iat/exp timestamps injected at encode time.
//
// Verification order and failure modes:
//   - [ErrMalformedToken] — empty input, or not exactly three dot-separated
//     segments;
//   - [ErrInvalidEncoding] — header or claims segment is not valid
//     base64url-encoded JSON;
//   - [ErrInvalidSignature] — the HMAC-SHA256 signature recomputed from the
//     raw header and claims segments does not match the supplied one. The
//     comparison is constant-time; the signature carried by the token is
//     never trusted as an input to verification;
//   - [ErrTokenExpired] — an "exp" claim is present and the current time is
//     at or past it.
func Decode(tokenString, secret string) (Claims, error) {
	if tokenString == "" {
		return nil, ErrMalformedToken
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	headerJSON, err := base64.RawURLEncoding.Strict().DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header segment: %w", ErrInvalidEncoding, err)
	}
	var header map[string]any
	if err = json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header segment: %w", ErrInvalidEncoding, err)
	}

	claimsJSON, err := base64.RawURLEncoding.Strict().DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: claims segment: %w", ErrInvalidEncoding, err)
	}
	var claims Claims
	if err = json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, fmt.Errorf("%w: claims segment: %w", ErrInvalidEncoding, err)
	}

	// Strict decoding rejects non-zero trailing padding bits, so two textually
	// different signature segments can never decode to the same bytes.
	suppliedSignature, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil {
		return nil, ErrInvalidSignature
	}

	expectedSignature := sign(parts[0]+"."+parts[1], secret)
	if !hmac.Equal(suppliedSignature, expectedSignature) {
		return nil, ErrInvalidSignature
	}

	if expired(claims) {
		return nil, ErrTokenExpired
	}

	return claims, nil
}

// ExtractBearer pulls the token out of an "Authorization" header value.
//
// The scheme match is case-insensitive. A missing header, a different
// scheme, or an empty trailing token all report ok == false: absence of a
// token is a legitimate outcome, not a parse failure.
func ExtractBearer(headerValue string) (string, bool) {
	const prefix = "bearer "

	value := strings.TrimSpace(headerValue)
	if len(value) < len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
		return "", false
	}

	tokenString := strings.TrimSpace(value[len(prefix):])
	if tokenString == "" {
		return "", false
	}

	return tokenString, true
}

// sign computes the HMAC-SHA256 digest of signingInput keyed by secret.
func sign(signingInput, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	return mac.Sum(nil)
}

// expired reports whether the "exp" claim is present and in the past.
// A token is valid strictly before its expiry instant (RFC 7519 §4.1.4),
// so a zero-TTL token is already expired at its own issue time.
func expired(claims Claims) bool {
	raw, ok := claims["exp"]
	if !ok {
		return false
	}

	var exp int64
	switch value := raw.(type) {
	case float64:
		exp = int64(value)
	case int64:
		exp = value
	case json.Number:
		parsed, err := value.Int64()
		if err != nil {
			return false
		}
		exp = parsed
	default:
		return false
	}

	return time.Now().Unix() >= exp
}
