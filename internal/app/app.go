package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/five82/glimpse/internal/classify"
	"github.com/five82/glimpse/internal/config"
	"github.com/five82/glimpse/internal/logging"
	"github.com/five82/glimpse/internal/prefs"
	"github.com/five82/glimpse/internal/ui"
)

// Options configure the glimpse application.
type Options struct {
	ConfigPath string
	EnvFile    string // empty uses ./.env
	PrefsPath  string // empty uses default ~/.config/glimpse/prefs.toml
	BaseURL    string // overrides config and environment when set
	StartDir   string // overrides prefs and config when set
	LogPath    string // overrides config when set
}

// Run boots the glimpse TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.EnvFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = applyOverrides(cfg, opts)

	logger, err := logging.NewLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := classify.NewClient(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("init classifier client: %w", err)
	}

	logger.Info("glimpse starting",
		zap.String("endpoint", client.PredictURL()),
		zap.String("theme", userPrefs.Theme))

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Logger:    logger,
		Endpoint:  client.BaseURL(),
		StartDir:  startDir(opts, userPrefs, cfg),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	if err := ui.Run(ctx, uiOpts); err != nil {
		logger.Error("ui exited with error", zap.Error(err))
		return err
	}
	return nil
}

func applyOverrides(cfg config.Config, opts Options) config.Config {
	if url := strings.TrimSpace(opts.BaseURL); url != "" {
		cfg.BaseURL = url
	}
	if path := strings.TrimSpace(opts.LogPath); path != "" {
		cfg.LogPath = path
	}
	return cfg
}

// startDir prefers an explicit flag, then the last directory browsed, then
// the configured start_dir.
func startDir(opts Options, p prefs.Prefs, cfg config.Config) string {
	for _, dir := range []string{opts.StartDir, p.LastDir, cfg.StartDir} {
		if dir = strings.TrimSpace(dir); dir != "" {
			return dir
		}
	}
	return ""
}
