// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/token"
	"github.com/MKhiriev/go-api-gate/models"
)

type httpAPIClient struct {
	client *resty.Client

	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates the base URL and configures the underlying
// resty client with it and the request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAPIClient(address string, requestTimeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")

	return &httpAPIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [APIClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAPIClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [APIClient].
func (h *httpAPIClient) Token() string {
	return h.token
}

// Register implements [APIClient]. It POSTs the credentials to
// POST /auth/register, stores the issued bearer token, and returns the
// created account.
func (h *httpAPIClient) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/auth/register", user)
}

// Login implements [APIClient]. It POSTs the credentials to
// POST /auth/login, stores the issued bearer token, and returns the
// authenticated account.
func (h *httpAPIClient) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/auth/login", user)
}

func (h *httpAPIClient) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(user).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("auth request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var tokenResponse models.TokenResponse
	if err = decodeEnvelope(resp, &tokenResponse); err != nil {
		return models.User{}, err
	}

	// the token travels both in the envelope and in the response header;
	// prefer the envelope, fall back to the header
	if tokenResponse.Token != "" {
		h.SetToken(tokenResponse.Token)
	} else if bearer, ok := token.ExtractBearer(resp.Header().Get("Authorization")); ok {
		h.SetToken(bearer)
	}

	return tokenResponse.User, nil
}

// ListUsers implements [APIClient].
func (h *httpAPIClient) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := h.authorized().
		SetContext(ctx).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var users []models.User
	if err = decodeEnvelope(resp, &users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser implements [APIClient].
func (h *httpAPIClient) GetUser(ctx context.Context, userID int64) (models.User, error) {
	resp, err := h.authorized().
		SetContext(ctx).
		Get(userPath(userID))
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = decodeEnvelope(resp, &user); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// CreateUser implements [APIClient].
func (h *httpAPIClient) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.authorized().
		SetContext(ctx).
		SetBody(user).
		Post("/users")
	if err != nil {
		return models.User{}, fmt.Errorf("create user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var created models.User
	if err = decodeEnvelope(resp, &created); err != nil {
		return models.User{}, err
	}

	return created, nil
}

// UpdateUser implements [APIClient].
func (h *httpAPIClient) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.authorized().
		SetContext(ctx).
		SetBody(user).
		Put(userPath(user.UserID))
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var updated models.User
	if err = decodeEnvelope(resp, &updated); err != nil {
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser implements [APIClient].
func (h *httpAPIClient) DeleteUser(ctx context.Context, userID int64) error {
	resp, err := h.authorized().
		SetContext(ctx).
		Delete(userPath(userID))
	if err != nil {
		return fmt.Errorf("delete user request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAPIClient) authorized() *resty.Request {
	req := h.client.R()
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

func userPath(userID int64) string {
	return "/users/" + strconv.FormatInt(userID, 10)
}

// decodeEnvelope unwraps the response envelope and unmarshals its data
// field into dst.
func decodeEnvelope(resp *resty.Response, dst any) error {
	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}

	return nil
}
