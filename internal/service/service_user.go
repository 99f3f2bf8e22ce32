// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/models"
)

// userService is the concrete implementation of UserService backing the
// users resource.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService on top of the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns all accounts with credential fields blanked.
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	for i := range users {
		users[i] = users[i].Sanitized()
	}

	return users, nil
}

// GetUser returns a single account by identifier with credential fields
// blanked. Missing accounts surface as store.ErrUserNotFound.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user.Sanitized(), nil
}

// CreateUser validates and persists a new account created through the
// users resource. Unlike Register, a display name is accepted and the
// password rules are identical.
func (s *userService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(user); err != nil {
		log.Error().Str("email", user.Email).Msg("invalid user data provided")
		return models.User{}, err
	}

	salt, err := newSalt()
	if err != nil {
		log.Err(err).Msg("salt generation failed")
		return models.User{}, fmt.Errorf("salt generation failed: %w", err)
	}

	user.PasswordSalt = salt
	user.PasswordHash = hashPassword(user.Password, salt)
	user.Password = ""

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created.Sanitized(), nil
}

// UpdateUser rewrites an existing account. The email stays mandatory; the
// password is optional and, when present, is re-hashed under a fresh salt.
func (s *userService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Email == "" {
		log.Error().Int64("id", user.UserID).Msg("invalid user data provided")
		return models.User{}, models.NewValidationError(map[string]string{
			"email": "The email field is required",
		})
	}

	if user.Password != "" {
		salt, err := newSalt()
		if err != nil {
			log.Err(err).Msg("salt generation failed")
			return models.User{}, fmt.Errorf("salt generation failed: %w", err)
		}
		user.PasswordSalt = salt
		user.PasswordHash = hashPassword(user.Password, salt)
		user.Password = ""
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("id", user.UserID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated.Sanitized(), nil
}

// DeleteUser removes an account. Missing accounts surface as
// store.ErrUserNotFound.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user deletion ended with error")
		return fmt.Errorf("user deletion ended with error: %w", err)
	}

	return nil
}
