// Package cli implements the chromash command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/buildinfo"
	"github.com/chromash/chromash/pkg/cache"
	"github.com/chromash/chromash/pkg/chromash"
	"github.com/chromash/chromash/pkg/command"
	"github.com/chromash/chromash/pkg/config"
	"github.com/chromash/chromash/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Runner executes matugen, hyprctl and swww.
	Runner command.Runner

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Runner: command.NewExec(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   buildinfo.Name,
		Short: "Chromash themes Hyprland from colors and wallpapers",
		Long: `Chromash generates Material You themes with matugen from a hex color or a
wallpaper, sets the wallpaper through hyprpaper or swww, and keeps named
presets you can switch between.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			observability.NewLogHooks(c.Logger).Register()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.wallpaperCommand())
	root.AddCommand(c.wallpaperOnlyCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.presetCommand())
	root.AddCommand(c.themeCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.doctorCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Manager Factory
// =============================================================================

// loadConfig reads the config file, falling back to defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newManager builds the theme manager. The returned cache must be closed.
func (c *CLI) newManager(ctx context.Context) (*chromash.Manager, *config.Config, cache.Cache, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	cc := c.newCache(ctx, cfg)
	m, err := chromash.New(cfg, c.Runner, cc, c.Logger)
	if err != nil {
		cc.Close()
		return nil, nil, nil, err
	}
	return m, cfg, cc, nil
}

// newCache returns the configured palette cache. Backends that cannot be
// opened degrade to no caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache()

	case config.CacheRedis:
		rc := cache.NewRedisCache(cache.RedisConfig{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		err := cache.RetryWithBackoff(ctx, 2, cache.DefaultRetryDelay, func() error {
			return cache.Retryable(rc.Ping(ctx))
		})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", cfg.Cache.RedisAddr, "err", err)
			rc.Close()
			return cache.NewNullCache()
		}
		return rc

	default:
		fc, err := cache.NewFileCache(cfg.Paths.Cache)
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}
