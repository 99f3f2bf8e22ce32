// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/models"
)

// argon2id parameters used for password hashing.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and the access
// token lifecycle, using a UserRepository for persistence and argon2id
// for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenTTL controls how long a newly issued token remains valid.
	tokenTTL time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenTTL:       cfg.TokenTTL,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// It validates that both Email and Password are present, hashes the
// password with a fresh per-user salt, and delegates persistence to the
// UserRepository.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - *models.ValidationError naming the missing fields.
//   - A wrapped storage error if the repository call fails (e.g. email
//     already taken — see store.ErrEmailTaken).
func (a *authService) Register(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(user); err != nil {
		log.Error().Str("email", user.Email).Msg("invalid registration data provided")
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

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both Email and Password are present, looks up the
// account by email, and compares the stored hash against a hash of the
// supplied password computed with the stored salt. The comparison is
// constant-time.
//
// Returns the authenticated user record or:
//   - *models.ValidationError naming the missing fields.
//   - A wrapped storage error if the lookup fails (e.g. user not
//     found — see store.ErrUserNotFound).
//   - ErrWrongPassword if the hashes do not match.
func (a *authService) Login(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateCredentials(user); err != nil {
		log.Error().Str("email", user.Email).Msg("invalid login data provided")
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, user.Email)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	supplied := hashPassword(user.Password, foundUser.PasswordSalt)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(foundUser.PasswordHash)) != 1 {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// IssueToken mints a signed access token for the given user. The token
// carries the account identifier as "sub" and the email as "email", and
// expires after the configured TTL.
func (a *authService) IssueToken(ctx context.Context, user models.User) (string, error) {
	tokenString, err := token.Encode(token.Claims{
		"sub":   user.UserID,
		"email": user.Email,
	}, a.tokenSignKey, a.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return tokenString, nil
}

// VerifyToken validates a raw token string and returns its claims.
//
// Any validation failure (expired, bad signature, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level codec errors.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (token.Claims, error) {
	claims, err := token.Decode(tokenString, a.tokenSignKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return claims, nil
}

// validateCredentials reports the missing credential fields as a
// field-level validation error.
func validateCredentials(user models.User) error {
	fields := make(map[string]string)
	if user.Email == "" {
		fields["email"] = "The email field is required"
	}
	if user.Password == "" {
		fields["password"] = "The password field is required"
	}
	if len(fields) > 0 {
		return models.NewValidationError(fields)
	}

	return nil
}

// hashPassword derives the argon2id digest of password under the given
// base64-encoded salt.
func hashPassword(password, salt string) string {
	digest := argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.RawStdEncoding.EncodeToString(digest)
}

func newSalt() (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	return base64.RawStdEncoding.EncodeToString(salt), nil
}
