// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/credential"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTokenEnv = "PUNCHSYNC_TEST_TOKEN"

func testConfig(t *testing.T) *config.StructuredConfig {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Defaults()
	cfg.Storage.DB.DSN = filepath.Join(dir, "punches.db")
	cfg.Logs.DiagnosticsPath = filepath.Join(dir, "logs", "api_responses.log")
	cfg.Credential.EnvVar = testTokenEnv
	cfg.Credential.NoPrompt = true
	return cfg
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name        string
		upstream    Upstream
		token       string
		wantErr     error
		wantSyncSvc bool
	}{
		{name: "read only", upstream: UpstreamNone},
		{name: "required with credential", upstream: UpstreamRequired, token: "secret", wantSyncSvc: true},
		{name: "required without credential", upstream: UpstreamRequired, wantErr: credential.ErrNoCredential},
		{name: "optional with credential", upstream: UpstreamOptional, token: "secret", wantSyncSvc: true},
		{name: "optional without credential", upstream: UpstreamOptional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(testTokenEnv, tt.token)
			cfg := testConfig(t)

			app, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("v0", "", ""), tt.upstream, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, app)
				return
			}
			require.NoError(t, err)
			defer app.Close()

			services := app.Services()
			require.NotNil(t, services)
			assert.NotNil(t, services.ExportService)
			assert.NotNil(t, services.StatusService)
			assert.Equal(t, "v0", services.AppInfoService.BuildInfo(context.Background()).BuildVersion())
			assert.Equal(t, tt.wantSyncSvc, services.SyncService != nil)
		})
	}
}

func TestNewApp_StatusOnFreshStore(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t), models.AppBuildInfo{}, UpstreamNone, logger.Nop())
	require.NoError(t, err)
	defer app.Close()

	status, err := app.Services().StatusService.Status(context.Background())

	require.NoError(t, err)
	assert.Nil(t, status.Watermark)
	assert.Zero(t, status.StoredPunches)
	assert.False(t, status.Running)
}
