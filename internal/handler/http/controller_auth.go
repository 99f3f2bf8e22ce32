// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-api-gate/internal/app"
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/service"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/models"
)

// authController exposes the credential endpoints as a named controller.
func (h *Handler) authController() dispatch.Actions {
	return dispatch.Actions{
		"register": h.register,
		"login":    h.login,
	}
}

// register creates a new account and immediately issues a token for it.
//
// Responses:
//   - 201 with a token envelope on success.
//   - 422 with a field map when required fields are missing.
//   - 409 when the email is already taken.
func (h *Handler) register(c *dispatch.Context) error {
	ctx := c.Request.Context()
	log := logger.FromRequest(c.Request)

	var user models.User
	if err := c.BindJSON(&user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		return c.Fail(app.MsgInvalidJSON, http.StatusBadRequest)
	}

	registeredUser, err := h.services.AuthService.Register(ctx, user)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}
		if errors.Is(err, store.ErrEmailTaken) {
			log.Err(err).Str("email", user.Email).Msg(app.MsgEmailAlreadyExists)
			return c.Fail(app.MsgEmailAlreadyExists, statusFromError(err))
		}
		log.Err(err).Msg("unexpected error occurred during user registration")
		return err
	}

	tokenString, err := h.services.AuthService.IssueToken(ctx, registeredUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		return err
	}

	c.Writer.Header().Set("Authorization", "Bearer "+tokenString)
	return c.SuccessStatus(http.StatusCreated, models.TokenResponse{
		Token: tokenString,
		User:  registeredUser.Sanitized(),
	})
}

// login verifies credentials and issues a fresh token.
//
// Responses:
//   - 200 with a token envelope on success.
//   - 422 with a field map when required fields are missing.
//   - 401 when the account is unknown or the password does not match.
func (h *Handler) login(c *dispatch.Context) error {
	ctx := c.Request.Context()
	log := logger.FromRequest(c.Request)

	var user models.User
	if err := c.BindJSON(&user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		return c.Fail(app.MsgInvalidJSON, http.StatusBadRequest)
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			log.Err(err).Str("email", user.Email).Msg("no user was found/wrong password")
			return c.Fail(app.MsgInvalidLoginPassword, http.StatusUnauthorized)
		}
		log.Err(err).Msg("unexpected error occurred during user login")
		return err
	}

	tokenString, err := h.services.AuthService.IssueToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		return err
	}

	log.Debug().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	c.Writer.Header().Set("Authorization", "Bearer "+tokenString)
	return c.Success(models.TokenResponse{
		Token: tokenString,
		User:  foundUser.Sanitized(),
	})
}
