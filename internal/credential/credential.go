// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package credential resolves the upstream API credential from an ordered
// list of sources: a secret store, an environment variable and manual
// terminal entry. Callers receive a single resolved string and never learn
// which source produced it.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
)

var (
	// ErrNotFound is returned by a [Provider] whose source holds no value.
	ErrNotFound = errors.New("credential not found")

	// ErrNoCredential is returned by [Chain.Resolve] when every source is
	// exhausted.
	ErrNoCredential = errors.New("no credential available: configure a secret store parameter, set the environment variable or enter it manually")
)

// Provider is one credential source.
type Provider interface {
	// Name identifies the source in logs. It never includes the value.
	Name() string
	// Lookup returns the raw credential or [ErrNotFound].
	Lookup(ctx context.Context) (string, error)
}

// Chain queries providers in order and returns the first non-empty value.
type Chain struct {
	providers []Provider
	logger    *logger.Logger
}

func NewChain(logger *logger.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger,
	}
}

// Resolve returns the first non-empty trimmed credential. A provider that
// fails for any reason other than [ErrNotFound] is logged and skipped; its
// error is joined to [ErrNoCredential] if no later provider succeeds.
func (c *Chain) Resolve(ctx context.Context) (string, error) {
	var failures []error

	for _, p := range c.providers {
		value, err := p.Lookup(ctx)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				c.logger.Warn().
					Err(err).
					Str("func", "Chain.Resolve").
					Str("provider", p.Name()).
					Msg("credential provider failed")
				failures = append(failures, fmt.Errorf("%s: %w", p.Name(), err))
			}
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		c.logger.Debug().
			Str("func", "Chain.Resolve").
			Str("provider", p.Name()).
			Msg("credential resolved")
		return value, nil
	}

	return "", errors.Join(append([]error{ErrNoCredential}, failures...)...)
}

// NewChainFromConfig builds the standard precedence chain: SSM parameter
// (when configured), environment variable, then a masked prompt on stdin
// unless prompting is disabled.
func NewChainFromConfig(ctx context.Context, cfg config.Credential, logger *logger.Logger) *Chain {
	var providers []Provider

	if cfg.SSMParameter != "" {
		ssmProvider, err := NewSSMProviderFromDefaultConfig(ctx, cfg.SSMParameter)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("func", "NewChainFromConfig").
				Msg("secret store unavailable, skipping")
		} else {
			providers = append(providers, ssmProvider)
		}
	}

	if cfg.EnvVar != "" {
		providers = append(providers, NewEnvProvider(cfg.EnvVar))
	}

	if !cfg.NoPrompt {
		providers = append(providers, NewPromptProvider(os.Stdin, os.Stderr, "Upstream API token"))
	}

	return NewChain(logger, providers...)
}
