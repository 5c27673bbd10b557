// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credential

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PromptProvider asks for the credential on an interactive terminal without
// echoing it. On a non-terminal input it reports [ErrNotFound] so that
// scripted runs never block.
type PromptProvider struct {
	fd    int
	out   io.Writer
	label string

	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

func NewPromptProvider(in *os.File, out io.Writer, label string) *PromptProvider {
	return &PromptProvider{
		fd:           int(in.Fd()),
		out:          out,
		label:        label,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

func (p *PromptProvider) Name() string {
	return "prompt"
}

func (p *PromptProvider) Lookup(ctx context.Context) (string, error) {
	if !p.isTerminal(p.fd) {
		return "", ErrNotFound
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintf(p.out, "%s: ", p.label)
	secret, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}

	value := strings.TrimSpace(string(secret))
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}
