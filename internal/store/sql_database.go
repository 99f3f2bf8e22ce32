// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-api-gate/internal/config"
	"github.com/MKhiriev/go-api-gate/internal/logger"
	"github.com/MKhiriev/go-api-gate/migrations"
)

// DB wraps the raw *sql.DB handle together with the driver name and the
// query builder configured for that driver's placeholder style. All
// repositories are constructed on top of a *DB.
type DB struct {
	*sql.DB

	driver  string
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

// NewConnect opens a database connection for the configured driver.
// Supported drivers are "postgres" and "sqlite3".
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case "postgres":
		return NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// Migrate applies all pending schema migrations for the connected driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
