// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ParameterGetter is the subset of the SSM client used by [SSMProvider].
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMProvider reads the credential from an AWS SSM parameter, decrypting
// SecureString values.
type SSMProvider struct {
	client    ParameterGetter
	parameter string
}

func NewSSMProvider(client ParameterGetter, parameter string) *SSMProvider {
	return &SSMProvider{
		client:    client,
		parameter: parameter,
	}
}

// NewSSMProviderFromDefaultConfig loads the shared AWS configuration
// (environment, profile, instance role) and builds an [SSMProvider] on it.
func NewSSMProviderFromDefaultConfig(ctx context.Context, parameter string) (*SSMProvider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSSMProvider(ssm.NewFromConfig(cfg), parameter), nil
}

func (p *SSMProvider) Name() string {
	return "ssm:" + p.parameter
}

func (p *SSMProvider) Lookup(ctx context.Context) (string, error) {
	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.parameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get parameter: %w", err)
	}

	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", ErrNotFound
	}
	return *out.Parameter.Value, nil
}
