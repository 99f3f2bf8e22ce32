// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-api-gate/internal/logger"

// Storages bundles every repository the service layer depends on.
type Storages struct {
	UserRepository UserRepository
}

// NewStorages constructs all repositories on top of the shared database
// connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}
}
