// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks that the final merged [StructuredConfig] can drive a sync.
func (cfg *StructuredConfig) validate() error {
	u, err := url.Parse(strings.TrimSpace(cfg.Upstream.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base url %q must include scheme and host", ErrInvalidUpstreamConfigs, cfg.Upstream.BaseURL)
	}

	if strings.TrimSpace(cfg.Upstream.Endpoint) == "" {
		return fmt.Errorf("%w: empty endpoint", ErrInvalidUpstreamConfigs)
	}

	if cfg.Upstream.RequestTimeout < MinRequestTimeout {
		return fmt.Errorf("%w: request timeout %s is below %s", ErrInvalidUpstreamConfigs, cfg.Upstream.RequestTimeout, MinRequestTimeout)
	}

	if cfg.Upstream.RequestsPerSecond < 0 || cfg.Upstream.Burst < 0 {
		return fmt.Errorf("%w: negative rate limit", ErrInvalidUpstreamConfigs)
	}

	if cfg.Sync.PageSize <= 0 || cfg.Sync.MaxPages <= 0 {
		return ErrInvalidSyncConfigs
	}

	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}
