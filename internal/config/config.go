// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-api-gate application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: token secrets and lifetime,
	// the debug flag, the base path stripped from incoming requests, and
	// the timezone the process is normalized to.
	App App `envPrefix:"APP_"`

	// CORS holds the cross-origin header values the dispatcher sets on
	// every response.
	CORS CORS `envPrefix:"CORS_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// Storage holds configuration for the relational datastore used by the
	// users resource. The dispatcher core never reads it.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// lifecycle, request routing, and error verbosity.
type App struct {
	// TokenSignKey is the secret key used to sign and verify tokens.
	// Must be kept confidential. Required.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenTTL specifies how long an issued token remains valid
	// (e.g. "1h", "30m").
	// Env: APP_TOKEN_TTL
	TokenTTL time.Duration `env:"TOKEN_TTL"`

	// Timezone is the IANA zone name the process clock is normalized to
	// at startup (e.g. "UTC", "Europe/Moscow").
	// Env: APP_TIMEZONE
	Timezone string `env:"TIMEZONE"`

	// Debug gates verbose error detail in responses. When false, any
	// unexpected failure is reported with a fixed generic message.
	// Env: APP_DEBUG
	Debug bool `env:"DEBUG"`

	// BasePath is a prefix stripped from every incoming request path
	// before route matching (e.g. "/api/v1").
	// Env: APP_BASE_PATH
	BasePath string `env:"BASE_PATH"`
}

// CORS holds the cross-origin resource sharing header values. The values
// are emitted verbatim; the dispatcher does not interpret them.
type CORS struct {
	// AllowOrigin is the Access-Control-Allow-Origin header value.
	// Env: CORS_ALLOW_ORIGIN
	AllowOrigin string `env:"ALLOW_ORIGIN"`

	// AllowMethods is the Access-Control-Allow-Methods header value.
	// Env: CORS_ALLOW_METHODS
	AllowMethods string `env:"ALLOW_METHODS"`

	// AllowHeaders is the Access-Control-Allow-Headers header value.
	// Env: CORS_ALLOW_HEADERS
	AllowHeaders string `env:"ALLOW_HEADERS"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the persistence backends available
// to resource handlers.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the database backend: "postgres" or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the Data Source Name (connection string) used to open the
	// database connection. Required.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}

// defaultConfig returns the built-in lowest-priority configuration values.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenTTL: time.Hour,
			Timezone: "UTC",
		},
		CORS: CORS{
			AllowOrigin:  "*",
			AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
			AllowHeaders: "Content-Type, Authorization, Origin, Accept",
		},
		Server: Server{
			HTTPAddress:    "0.0.0.0:8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DB: DB{
				Driver: "postgres",
			},
		},
	}
}
