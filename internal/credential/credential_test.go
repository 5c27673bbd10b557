// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credential

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

type staticProvider struct {
	name  string
	value string
	err   error
	calls int
}

func (p *staticProvider) Name() string { return p.name }

func (p *staticProvider) Lookup(context.Context) (string, error) {
	p.calls++
	return p.value, p.err
}

type fakeSSM struct {
	input *ssm.GetParameterInput
	out   *ssm.GetParameterOutput
	err   error
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = in
	return f.out, f.err
}

func parameterOutput(value string) *ssm.GetParameterOutput {
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(value)}}
}

// ── Chain ─────────────────────────────────────────────────────────────────────

func TestChain_Resolve(t *testing.T) {
	boom := errors.New("access denied")

	tests := []struct {
		name      string
		providers []*staticProvider
		want      string
		wantErr   []error
		wantCalls []int
	}{
		{
			name: "first source wins",
			providers: []*staticProvider{
				{name: "ssm", value: "from-ssm"},
				{name: "env", value: "from-env"},
			},
			want:      "from-ssm",
			wantCalls: []int{1, 0},
		},
		{
			name: "not found falls through",
			providers: []*staticProvider{
				{name: "ssm", err: ErrNotFound},
				{name: "env", value: "  from-env\n"},
			},
			want:      "from-env",
			wantCalls: []int{1, 1},
		},
		{
			name: "blank value falls through",
			providers: []*staticProvider{
				{name: "env", value: "   "},
				{name: "prompt", value: "typed"},
			},
			want:      "typed",
			wantCalls: []int{1, 1},
		},
		{
			name: "failing source falls through",
			providers: []*staticProvider{
				{name: "ssm", err: boom},
				{name: "env", value: "from-env"},
			},
			want:      "from-env",
			wantCalls: []int{1, 1},
		},
		{
			name: "all exhausted",
			providers: []*staticProvider{
				{name: "ssm", err: boom},
				{name: "env", err: ErrNotFound},
			},
			wantErr:   []error{ErrNoCredential, boom},
			wantCalls: []int{1, 1},
		},
		{
			name:    "no providers",
			wantErr: []error{ErrNoCredential},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providers := make([]Provider, 0, len(tt.providers))
			for _, p := range tt.providers {
				providers = append(providers, p)
			}

			got, err := NewChain(logger.Nop(), providers...).Resolve(context.Background())

			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErr {
					assert.ErrorIs(t, err, want)
				}
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			for i, calls := range tt.wantCalls {
				assert.Equal(t, calls, tt.providers[i].calls, "provider %s", tt.providers[i].name)
			}
		})
	}
}

func TestNewChainFromConfig_EnvOnly(t *testing.T) {
	t.Setenv("PUNCHSYNC_TEST_TOKEN", "Bearer abc")

	chain := NewChainFromConfig(context.Background(), config.Credential{
		EnvVar:   "PUNCHSYNC_TEST_TOKEN",
		NoPrompt: true,
	}, logger.Nop())

	require.Len(t, chain.providers, 1)
	got, err := chain.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)
}

func TestNewChainFromConfig_PromptEnabled(t *testing.T) {
	chain := NewChainFromConfig(context.Background(), config.Credential{EnvVar: "X"}, logger.Nop())

	require.Len(t, chain.providers, 2)
	assert.Equal(t, "env:X", chain.providers[0].Name())
	assert.Equal(t, "prompt", chain.providers[1].Name())
}

// ── SSMProvider ───────────────────────────────────────────────────────────────

func TestSSMProvider_Lookup(t *testing.T) {
	client := &fakeSSM{out: parameterOutput("secret-token")}
	p := NewSSMProvider(client, "/punchsync/token")

	got, err := p.Lookup(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "secret-token", got)
	require.NotNil(t, client.input)
	assert.Equal(t, "/punchsync/token", aws.ToString(client.input.Name))
	assert.True(t, aws.ToBool(client.input.WithDecryption))
	assert.Equal(t, "ssm:/punchsync/token", p.Name())
}

func TestSSMProvider_Lookup_Errors(t *testing.T) {
	denied := errors.New("AccessDeniedException")

	tests := []struct {
		name    string
		client  *fakeSSM
		wantErr error
	}{
		{name: "parameter not found", client: &fakeSSM{err: &types.ParameterNotFound{}}, wantErr: ErrNotFound},
		{name: "empty output", client: &fakeSSM{out: &ssm.GetParameterOutput{}}, wantErr: ErrNotFound},
		{name: "nil value", client: &fakeSSM{out: &ssm.GetParameterOutput{Parameter: &types.Parameter{}}}, wantErr: ErrNotFound},
		{name: "access denied", client: &fakeSSM{err: denied}, wantErr: denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSSMProvider(tt.client, "p").Lookup(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── EnvProvider ───────────────────────────────────────────────────────────────

func TestEnvProvider_Lookup(t *testing.T) {
	t.Setenv("PUNCHSYNC_SET", "value")
	t.Setenv("PUNCHSYNC_EMPTY", "")

	got, err := NewEnvProvider("PUNCHSYNC_SET").Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "value", got)

	_, err = NewEnvProvider("PUNCHSYNC_EMPTY").Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewEnvProvider("PUNCHSYNC_DEFINITELY_UNSET").Lookup(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── PromptProvider ────────────────────────────────────────────────────────────

func newTestPrompt(terminal bool, secret string, readErr error) (*PromptProvider, *bytes.Buffer) {
	var out bytes.Buffer
	return &PromptProvider{
		fd:           0,
		out:          &out,
		label:        "Token",
		isTerminal:   func(int) bool { return terminal },
		readPassword: func(int) ([]byte, error) { return []byte(secret), readErr },
	}, &out
}

func TestPromptProvider_Lookup(t *testing.T) {
	p, out := newTestPrompt(true, " typed-secret \n", nil)

	got, err := p.Lookup(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "typed-secret", got)
	assert.Equal(t, "Token: \n", out.String())
	assert.NotContains(t, out.String(), "typed-secret")
}

func TestPromptProvider_Lookup_NotATerminal(t *testing.T) {
	p, out := newTestPrompt(false, "unused", nil)

	_, err := p.Lookup(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, out.Len())
}

func TestPromptProvider_Lookup_EmptyInput(t *testing.T) {
	p, _ := newTestPrompt(true, "", nil)

	_, err := p.Lookup(context.Background())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPromptProvider_Lookup_ReadError(t *testing.T) {
	readErr := errors.New("inappropriate ioctl for device")
	p, _ := newTestPrompt(true, "", readErr)

	_, err := p.Lookup(context.Background())

	assert.ErrorIs(t, err, readErr)
}

func TestPromptProvider_Lookup_CancelledContext(t *testing.T) {
	p, out := newTestPrompt(true, "secret", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Lookup(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}
