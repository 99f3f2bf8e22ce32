// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key used to store the verified token claims in the
// context. Used together with GetClaimsFromContext for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ClaimsCtxKey, claims)
var ClaimsCtxKey = contextKey("claims")

// SubjectCtxKey is the key used to store the authenticated principal
// identifier (the "sub" claim) in the context.
var SubjectCtxKey = contextKey("subject")

// GetClaimsFromContext retrieves the verified claim set from the context.
//
// Returns the claims as a map and an ok flag:
//   - ok == true  — value is found and has the correct type
//   - ok == false — value is missing or has an unexpected type
func GetClaimsFromContext(ctx context.Context) (map[string]any, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(map[string]any)
	return claims, ok
}

// GetSubjectFromContext retrieves the authenticated principal identifier
// from the context.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}
