// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-api-gate/internal/app"
	"github.com/MKhiriev/go-api-gate/internal/dispatch"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/store"
	"github.com/MKhiriev/go-api-gate/models"
)

// userController exposes the users resource under the conventional action
// names wired by [app.Application.Resource].
func (h *Handler) userController() dispatch.Actions {
	return dispatch.Actions{
		"index":  h.usersIndex,
		"show":   h.usersShow,
		"store":  h.usersStore,
		"update": h.usersUpdate,
		"delete": h.usersDelete,
	}
}

// usersIndex lists all accounts.
func (h *Handler) usersIndex(c *dispatch.Context) error {
	users, err := h.services.UserService.ListUsers(c.Request.Context())
	if err != nil {
		return err
	}

	return c.Success(users)
}

// usersShow returns a single account by its {id} path parameter.
func (h *Handler) usersShow(c *dispatch.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Fail(app.MsgInvalidUserID, http.StatusBadRequest)
	}

	user, err := h.services.UserService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.Fail(app.MsgUserNotFound, statusFromError(err))
		}
		return err
	}

	return c.Success(user)
}

// usersStore creates a new account through the resource surface.
func (h *Handler) usersStore(c *dispatch.Context) error {
	log := logger.FromRequest(c.Request)

	var user models.User
	if err := c.BindJSON(&user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		return c.Fail(app.MsgInvalidJSON, http.StatusBadRequest)
	}

	created, err := h.services.UserService.CreateUser(c.Request.Context(), user)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}
		if errors.Is(err, store.ErrEmailTaken) {
			log.Err(err).Str("email", user.Email).Msg(app.MsgEmailAlreadyExists)
			return c.Fail(app.MsgEmailAlreadyExists, statusFromError(err))
		}
		return err
	}

	return c.SuccessStatus(http.StatusCreated, created)
}

// usersUpdate rewrites an existing account identified by {id}.
func (h *Handler) usersUpdate(c *dispatch.Context) error {
	log := logger.FromRequest(c.Request)

	userID, err := pathUserID(c)
	if err != nil {
		return c.Fail(app.MsgInvalidUserID, http.StatusBadRequest)
	}

	var user models.User
	if err = c.BindJSON(&user); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		return c.Fail(app.MsgInvalidJSON, http.StatusBadRequest)
	}
	user.UserID = userID

	updated, err := h.services.UserService.UpdateUser(c.Request.Context(), user)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return c.Fail(app.MsgUserNotFound, statusFromError(err))
		case errors.Is(err, store.ErrEmailTaken):
			log.Err(err).Str("email", user.Email).Msg(app.MsgEmailAlreadyExists)
			return c.Fail(app.MsgEmailAlreadyExists, statusFromError(err))
		default:
			return err
		}
	}

	return c.Success(updated)
}

// usersDelete removes the account identified by {id}.
func (h *Handler) usersDelete(c *dispatch.Context) error {
	userID, err := pathUserID(c)
	if err != nil {
		return c.Fail(app.MsgInvalidUserID, http.StatusBadRequest)
	}

	if err = h.services.UserService.DeleteUser(c.Request.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.Fail(app.MsgUserNotFound, statusFromError(err))
		}
		return err
	}

	return c.Success(nil)
}

// pathUserID parses the first captured path parameter as an account
// identifier.
func pathUserID(c *dispatch.Context) (int64, error) {
	return strconv.ParseInt(c.Param(0), 10, 64)
}
