package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/wxplot/internal/cache"
	"github.com/couchcryptid/wxplot/internal/config"
	"github.com/couchcryptid/wxplot/internal/domain"
	"github.com/couchcryptid/wxplot/internal/loader"
	"github.com/couchcryptid/wxplot/internal/observability"
	"github.com/couchcryptid/wxplot/internal/parser"
)

// appContext carries the lazily initialized plumbing every command needs.
type appContext struct {
	configFlag string

	cfg     *config.Config
	logger  *slog.Logger
	metrics *observability.Metrics
}

func (a *appContext) ensure() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(a.configFlag)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = observability.NewLogger(cfg)
	a.metrics = observability.NewMetrics()
	return nil
}

func (a *appContext) parserOptions() parser.Options {
	return parser.Options{HeaderSkip: a.cfg.HeaderSkip, MaxRows: a.cfg.MaxRows}
}

// openArchive returns the dataset: from the cache blob when present, or by
// a full parse of the data tree (saving the cache afterwards). refresh
// forces the full parse.
func (a *appContext) openArchive(ctx context.Context, refresh bool) (*domain.Archive, error) {
	store := cache.NewStore(a.logger, a.metrics)
	if !refresh {
		if archive, ok := store.Load(a.cfg.CachePath); ok {
			return archive, nil
		}
		a.logger.Info("no usable cache, parsing workbooks", "path", a.cfg.CachePath)
	}

	l := loader.New(a.parserOptions(), a.cfg.Workers, a.logger, a.metrics)
	archive, err := l.Load(ctx, a.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	store.Save(archive, a.cfg.CachePath)
	return archive, nil
}

func newRootCommand() *cobra.Command {
	app := &appContext{}

	rootCmd := &cobra.Command{
		Use:           "wxplot",
		Short:         "Load model-run spreadsheet datasets and build charts from them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.ensure()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configFlag, "config", "c", "wxplot.toml", "configuration file path")

	rootCmd.AddCommand(newLoadCommand(app))
	rootCmd.AddCommand(newRenderCommand(app))
	rootCmd.AddCommand(newCorrelateCommand(app))
	rootCmd.AddCommand(newPercentErrorCommand(app))
	rootCmd.AddCommand(newSoundingCommand(app))
	rootCmd.AddCommand(newMapCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))

	return rootCmd
}
