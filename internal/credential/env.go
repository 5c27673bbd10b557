// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credential

import (
	"context"
	"os"
)

// EnvProvider reads the credential from an environment variable.
type EnvProvider struct {
	variable string
	lookup   func(string) (string, bool)
}

func NewEnvProvider(variable string) *EnvProvider {
	return &EnvProvider{
		variable: variable,
		lookup:   os.LookupEnv,
	}
}

func (p *EnvProvider) Name() string {
	return "env:" + p.variable
}

func (p *EnvProvider) Lookup(context.Context) (string, error) {
	value, ok := p.lookup(p.variable)
	if !ok || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}
