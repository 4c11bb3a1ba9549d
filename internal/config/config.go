// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-video-vault application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters.
	App App `envPrefix:"APP_"`

	// Custodian holds the connection settings of the external key
	// custodian (Vault Transit) and the shared data-key name.
	Custodian Custodian `envPrefix:"CUSTODIAN_"`

	// Storage holds configuration for all persistence backends: the
	// relational database and the artifact blob store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP
	// server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Blobs holds the file-system settings for the order artifacts.
	Blobs Blobs `envPrefix:"BLOBS_"`
}

// App holds application-level configuration values that control token
// lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Custodian holds the connection settings of the external key custodian.
type Custodian struct {
	// Address is the base URL of the Vault server holding the Transit
	// engine (e.g. "http://vault:8200"). When empty, an in-process
	// custodian with ephemeral keys is used — development only.
	// Env: CUSTODIAN_ADDRESS
	Address string `env:"ADDRESS"`

	// Token is the Vault token used to authenticate custodian calls.
	// Must be kept confidential.
	// Env: CUSTODIAN_TOKEN
	Token string `env:"TOKEN"`

	// DataKeyID is the name of the system-wide wrapping key under which
	// every order's data key is wrapped. Distinct from the per-user
	// signing keys.
	// Env: CUSTODIAN_DATA_KEY_ID
	DataKeyID string `env:"DATA_KEY_ID"`

	// RequestTimeout bounds every single custodian call (e.g. "15s").
	// Env: CUSTODIAN_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
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

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. "postgres://" DSNs select the
	// PostgreSQL backend; anything else is treated as a SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Blobs holds file-system settings for the order artifact store.
type Blobs struct {
	// ArtifactDir is the absolute or relative path to the directory where
	// encrypted payloads and wrapped data keys are stored.
	// Env: STORAGE_BLOBS_ARTIFACT_DIR
	ArtifactDir string `env:"ARTIFACT_DIR"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
