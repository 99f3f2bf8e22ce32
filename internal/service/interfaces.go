// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_service.go -package=mock

// AuthService owns the account credential lifecycle: registration, login
// verification, and the issuing and verification of access tokens.
type AuthService interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	IssueToken(ctx context.Context, user models.User) (string, error)
	VerifyToken(ctx context.Context, tokenString string) (token.Claims, error)
}

// UserService owns the users resource exposed over HTTP.
//
// Write operations validate their input and report field-level problems
// as *models.ValidationError.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}
