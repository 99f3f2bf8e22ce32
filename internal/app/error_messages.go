// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app wires the request pipeline together and holds the shared
// application-layer message constants used across the go-api-gate server
// handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded
	// as JSON.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidLoginPassword is returned when the supplied email/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid email/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	// MsgAuthorizationRequired is returned when a protected route is
	// requested without a usable bearer token.
	MsgAuthorizationRequired = "authorization required"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgEmailAlreadyExists is returned when a registration or update is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyExists = "email already exists"

	// MsgUserNotFound is returned when a read, update, or delete operation
	// targets an account that does not exist.
	MsgUserNotFound = "user not found"

	// MsgInvalidUserID is returned when the {id} path parameter of a users
	// route is not a decimal integer.
	MsgInvalidUserID = "invalid user id"

	// MsgRouteNotFound is returned when no registered route matches the
	// requested method and path.
	MsgRouteNotFound = "route not found"
)
