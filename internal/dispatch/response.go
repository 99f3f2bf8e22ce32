// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package dispatch

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-api-gate/internal/utils"
	"github.com/MKhiriev/go-api-gate/models"
)

// Success emits the standard envelope with success=true, the default
// "Success" message, and HTTP 200.
func (c *Context) Success(data any) error {
	return c.SuccessStatus(http.StatusOK, data)
}

// SuccessStatus emits a success envelope with an explicit status code
// (e.g. 201 for resource creation).
func (c *Context) SuccessStatus(status int, data any) error {
	response := models.Response{
		Success: true,
		Message: "Success",
		Data:    data,
	}

	_, err := utils.WriteJSON(c.Writer, response, status)
	return err
}

// Fail emits an error envelope.
//
// The message defaults to "Error" when empty. The code argument follows
// the emitter contract:
//   - an int is used as the HTTP status verbatim;
//   - nil defaults to 400;
//   - a numeric string (e.g. the SQLSTATE "23505" carried by a
//     unique-constraint violation) maps to 422;
//   - anything else maps to 500.
func (c *Context) Fail(message string, code any) error {
	if message == "" {
		message = "Error"
	}

	response := models.Response{
		Success: false,
		Message: message,
		Data:    nil,
	}

	_, err := utils.WriteJSON(c.Writer, response, statusFromCode(code))
	return err
}

// FailValidation emits the 422 envelope for required-field failures,
// carrying the per-field message map as data.
func (c *Context) FailValidation(fields map[string]string) error {
	response := models.Response{
		Success: false,
		Message: "Validation failed",
		Data:    fields,
	}

	_, err := utils.WriteJSON(c.Writer, response, http.StatusUnprocessableEntity)
	return err
}

// statusFromCode maps the emitter's loosely-typed code argument to an
// HTTP status.
func statusFromCode(code any) int {
	switch value := code.(type) {
	case nil:
		return http.StatusBadRequest
	case int:
		return value
	case string:
		if _, err := strconv.Atoi(value); err == nil {
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
