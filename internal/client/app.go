// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/punch-sync/internal/adapter"
	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/credential"
	myHTTP "github.com/MKhiriev/punch-sync/internal/handler/http"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/internal/server"
	"github.com/MKhiriev/punch-sync/internal/service"
	"github.com/MKhiriev/punch-sync/internal/store"
	"github.com/MKhiriev/punch-sync/models"
)

// Upstream selects how the app treats upstream access.
type Upstream int

const (
	// UpstreamNone skips the credential chain. Read-only commands use it.
	UpstreamNone Upstream = iota
	// UpstreamRequired fails app construction when no credential resolves.
	UpstreamRequired
	// UpstreamOptional logs a missing credential and disables sync.
	UpstreamOptional
)

type App struct {
	cfg      *config.StructuredConfig
	storages *store.Storages
	services *service.Services

	diagnostics io.Closer
	logger      *logger.Logger
}

func NewApp(
	ctx context.Context,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	upstream Upstream,
	logger *logger.Logger,
) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	app := &App{cfg: cfg, storages: storages, logger: logger}

	var fetcher adapter.PageFetcher
	if upstream != UpstreamNone {
		fetcher, err = app.newFetcher(ctx)
		switch {
		case err == nil:
		case upstream == UpstreamOptional && errors.Is(err, credential.ErrNoCredential):
			logger.Warn().Err(err).Msg("sync disabled: no upstream credential")
		default:
			app.Close()
			return nil, err
		}
	}

	app.services = service.NewServices(storages, fetcher, *cfg, buildInfo, logger)
	return app, nil
}

// newFetcher resolves the credential and builds the page fetcher together
// with its diagnostics log.
func (a *App) newFetcher(ctx context.Context) (adapter.PageFetcher, error) {
	token, err := credential.NewChainFromConfig(ctx, a.cfg.Credential, a.logger).Resolve(ctx)
	if err != nil {
		return nil, err
	}

	diagLogger, closer, err := logger.NewFileLogger("diagnostics", a.cfg.Logs.DiagnosticsPath)
	if err != nil {
		return nil, fmt.Errorf("open diagnostics log: %w", err)
	}
	a.diagnostics = closer

	fetcher, err := adapter.NewHTTPPageFetcher(a.cfg.Upstream, token, adapter.NewLogDiagnostics(diagLogger), a.logger)
	if err != nil {
		return nil, fmt.Errorf("create page fetcher: %w", err)
	}
	return fetcher, nil
}

func (a *App) Services() *service.Services {
	return a.services
}

func (a *App) Serve(ctx context.Context) error {
	handler := myHTTP.NewHandler(a.services, a.cfg.Logs.DiagnosticsPath, a.logger)

	srv, err := server.NewServer(handler.Init(), a.cfg.Server, a.logger)
	if err != nil {
		return err
	}
	return srv.RunServer(ctx)
}

func (a *App) Close() error {
	var errs []error
	if a.storages != nil {
		errs = append(errs, a.storages.Close())
	}
	if a.diagnostics != nil {
		errs = append(errs, a.diagnostics.Close())
	}
	return errors.Join(errs...)
}
