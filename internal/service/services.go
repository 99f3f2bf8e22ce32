// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/internal/store"
)

// Services bundles every service the handler layer depends on.
type Services struct {
	AuthService AuthService
	UserService UserService
}

// NewServices wires all services on top of the repository set.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService: NewUserService(storages.UserRepository, logger),
	}
}
