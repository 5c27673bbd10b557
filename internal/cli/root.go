// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/punch-sync/internal/client"
	"github.com/MKhiriev/punch-sync/internal/config"
	"github.com/MKhiriev/punch-sync/internal/logger"
	"github.com/MKhiriev/punch-sync/models"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type appFactory func(ctx context.Context, cfg *config.StructuredConfig, upstream client.Upstream) (client.Client, error)

type cli struct {
	buildInfo models.AppBuildInfo

	flagCfg  *config.StructuredConfig
	logLevel string

	loadConfig func() (*config.StructuredConfig, error)
	newApp     appFactory

	baseLogger *logger.Logger
	logger     *logger.Logger
}

// NewRootCommand builds the punchsync command tree.
func NewRootCommand(buildInfo models.AppBuildInfo, log *logger.Logger) *cobra.Command {
	c := &cli{
		buildInfo:  buildInfo,
		baseLogger: log,
		logger:     log,
	}
	c.loadConfig = func() (*config.StructuredConfig, error) {
		return config.GetStructuredConfig(c.flagCfg)
	}
	c.newApp = func(ctx context.Context, cfg *config.StructuredConfig, upstream client.Upstream) (client.Client, error) {
		return client.NewApp(ctx, cfg, c.buildInfo, upstream, c.logger)
	}

	return c.rootCommand()
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "punchsync",
		Short: "Mirror time-clock punches from the HR API into a local store",
		Long: `punchsync pages through the upstream punch endpoint, merges every record
into a local store keyed by punch id and remembers when it last synced so that
later runs only fetch what changed.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.configureLogger,
	}

	c.flagCfg = config.RegisterFlags(root.PersistentFlags())
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", zerolog.WarnLevel.String(), "Log level (debug, info, warn, error)")

	root.AddCommand(
		c.syncCommand(),
		c.statusCommand(),
		c.exportCommand(),
		c.recentCommand(),
		c.rawCommand(),
		c.serveCommand(),
		c.logsCommand(),
		c.versionCommand(),
	)

	return root
}

func (c *cli) configureLogger(cmd *cobra.Command, _ []string) error {
	level, err := zerolog.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
	}
	c.logger = &logger.Logger{Logger: c.baseLogger.Level(level)}
	return nil
}

// withApp loads the configuration, builds the app and closes it after fn.
func (c *cli) withApp(cmd *cobra.Command, upstream client.Upstream, fn func(app client.Client) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	app, err := c.newApp(cmd.Context(), cfg, upstream)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			c.logger.Err(err).Msg("error closing app")
		}
	}()

	return fn(app)
}
