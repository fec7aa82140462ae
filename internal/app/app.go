package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/opsboard/internal/config"
	"github.com/five82/opsboard/internal/dataset"
	"github.com/five82/opsboard/internal/logging"
	"github.com/five82/opsboard/internal/nav"
	"github.com/five82/opsboard/internal/prefs"
	"github.com/five82/opsboard/internal/state"
	"github.com/five82/opsboard/internal/ui"
)

// Options configure the opsboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/opsboard/prefs.toml
	ThemeName  string // overrides the saved theme
	Route      string // deep link to open first, e.g. "/ops/incident?toast=updated&id=ISS001"
}

// Load reads the configuration and the dataset it points at.
func Load(configPath string) (config.Config, dataset.Dataset, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, dataset.Dataset{}, fmt.Errorf("load config: %w", err)
	}
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return config.Config{}, dataset.Dataset{}, fmt.Errorf("load dataset: %w", err)
	}
	return cfg, ds, nil
}

// Run boots the console until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, ds, err := Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	var start nav.Route
	if r := strings.TrimSpace(opts.Route); r != "" {
		start, err = nav.ParseRoute(r)
		if err != nil {
			return fmt.Errorf("parse route: %w", err)
		}
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("opsboard starting",
		zap.String("dataset", datasetLabel(cfg.DatasetPath)),
		zap.Int("cases", len(ds.Cases)),
		zap.Int("incidents", len(ds.Incidents)),
		zap.Int("taxes", len(ds.Taxes)),
		zap.Duration("submit_delay", cfg.SubmitDelay))

	store := state.NewStore(ds)
	userPrefs := prefs.Load(opts.PrefsPath)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Config:    cfg,
		Logger:    logger,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
		ThemeName: opts.ThemeName,
		Start:     start,
	})
	if err != nil && ctx.Err() != nil {
		logger.Info("opsboard stopped", zap.Error(ctx.Err()))
		return nil
	}
	if err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("opsboard stopped", zap.Int("revision", store.Version()))
	return nil
}

func datasetLabel(path string) string {
	if strings.TrimSpace(path) == "" {
		return "embedded"
	}
	return path
}
