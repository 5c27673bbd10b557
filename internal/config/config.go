// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Defaults applied before any other configuration source.
const (
	DefaultBaseURL         = "https://api.tangerino.com.br/api"
	DefaultEndpoint        = "/punch/search"
	DefaultRequestTimeout  = 30 * time.Second
	MinRequestTimeout      = 15 * time.Second
	DefaultBurst           = 1
	DefaultPageSize        = 200
	DefaultMaxPages        = 500
	DefaultDSN             = "punches.db"
	DefaultHTTPAddress     = "localhost:8080"
	DefaultServerTimeout   = 2 * time.Minute
	DefaultCredentialEnv   = "TANGERINO_TOKEN"
	DefaultDiagnosticsPath = "logs/api_responses.log"
)

// KnownEndpoints lists the upstream punch endpoints the tool has been used
// against. Any other path is accepted as well.
var KnownEndpoints = []string{
	"/punch/v2",
	"/punch/search",
	"/punch/page",
	"/v1/punch",
	"/v1/punch/search",
}

// StructuredConfig is the top-level configuration container. It is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Upstream describes the HR API the punches are pulled from.
	Upstream Upstream `envPrefix:"UPSTREAM_"`

	// Sync holds the pagination defaults of the sync driver.
	Sync Sync `envPrefix:"SYNC_"`

	// Storage holds the local record store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the dashboard HTTP server settings.
	Server Server `envPrefix:"SERVER_"`

	// Credential controls where the upstream credential is looked up.
	Credential Credential `envPrefix:"CREDENTIAL_"`

	// Logs holds log file locations.
	Logs Logs `envPrefix:"LOGS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Upstream holds the HR API connection settings.
type Upstream struct {
	// BaseURL is the API host including the base path.
	// Env: UPSTREAM_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Endpoint is the punch listing path appended to BaseURL.
	// Env: UPSTREAM_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// RequestTimeout bounds a single page fetch. Timeouts surface as
	// network errors. Must be at least 15s.
	// Env: UPSTREAM_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RequestsPerSecond throttles page fetches. Zero disables throttling.
	// Env: UPSTREAM_REQUESTS_PER_SECOND
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND"`

	// Burst is the token bucket size used with RequestsPerSecond.
	// Env: UPSTREAM_BURST
	Burst int `env:"BURST"`
}

// Sync holds sync driver defaults.
type Sync struct {
	// PageSize is the upstream page size.
	// Env: SYNC_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// MaxPages is the safety bound on page fetches per sync.
	// Env: SYNC_MAX_PAGES
	MaxPages int `env:"MAX_PAGES"`
}

// Storage groups local storage settings.
type Storage struct {
	// DB holds the record store connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the record store. A DSN starting with
// postgres:// or postgresql:// selects PostgreSQL; anything else is a SQLite
// file path.
type DB struct {
	// DSN is the data source name.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Server holds the dashboard HTTP server settings.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds inbound dashboard requests. It must exceed the
	// longest expected sync.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Credential controls the credential precedence chain: secret store,
// environment variable, manual entry.
type Credential struct {
	// SSMParameter is the AWS SSM parameter holding the credential.
	// Empty disables the secret-store lookup.
	// Env: CREDENTIAL_SSM_PARAMETER
	SSMParameter string `env:"SSM_PARAMETER"`

	// EnvVar is the environment variable holding the credential.
	// Env: CREDENTIAL_ENV_VAR
	EnvVar string `env:"ENV_VAR"`

	// NoPrompt disables interactive manual entry.
	// Env: CREDENTIAL_NO_PROMPT
	NoPrompt bool `env:"NO_PROMPT"`
}

// Logs holds log file locations.
type Logs struct {
	// DiagnosticsPath is the append-only JSON lines file receiving one
	// entry per upstream request.
	// Env: LOGS_DIAGNOSTICS_PATH
	DiagnosticsPath string `env:"DIAGNOSTICS_PATH"`
}

// Defaults returns the configuration used when no source sets a field.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Upstream: Upstream{
			BaseURL:        DefaultBaseURL,
			Endpoint:       DefaultEndpoint,
			RequestTimeout: DefaultRequestTimeout,
			Burst:          DefaultBurst,
		},
		Sync: Sync{
			PageSize: DefaultPageSize,
			MaxPages: DefaultMaxPages,
		},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultServerTimeout,
		},
		Credential: Credential{EnvVar: DefaultCredentialEnv},
		Logs:       Logs{DiagnosticsPath: DefaultDiagnosticsPath},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (later sources override
// earlier non-zero fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags (flagCfg, may be nil)
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig(flagCfg *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flagCfg).
		withJSON().
		build()
}
