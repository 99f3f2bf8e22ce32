// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the go-api-gate REST API.
//
// The primary abstraction is [APIClient], which decouples consumers from the
// wire format: envelope decoding, bearer token management, and the mapping of
// HTTP status codes to the sentinel errors defined in errors.go all happen
// inside the adapter. Callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-api-gate/models"
)

// APIClient defines transport-agnostic communication with a go-api-gate
// server.
type APIClient interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It is called automatically after
	// a successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the client, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account and stores the issued bearer token.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates with email and password and stores the issued
	// bearer token.
	Login(ctx context.Context, user models.User) (models.User, error)

	// ListUsers fetches all accounts. Requires a token.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser fetches one account by identifier. Requires a token.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// CreateUser creates an account through the users resource. Requires a
	// token.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UpdateUser rewrites an account. Requires a token.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser removes an account. Requires a token.
	DeleteUser(ctx context.Context, userID int64) error
}
