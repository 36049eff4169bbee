// Package config resolves chromash's directories and settings.
//
// Defaults follow the XDG base directory conventions. An optional TOML file
// at <config dir>/config.toml overrides any of them:
//
//	[paths]
//	wallpapers = "~/Pictures/Walls"
//
//	[wallpaper]
//	backend = "swww"
//	transition = "grow"
//
//	[theme]
//	mode = "dark"
//	scheme = "rainbow"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "nas.lan:6379"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/chromash/chromash/pkg/errors"
)

// AppName is used for every chromash-owned directory.
const AppName = "chromash"

// Wallpaper backends.
const (
	BackendHyprpaper = "hyprpaper"
	BackendSwww      = "swww"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheNone  = "none"
	CacheRedis = "redis"
)

// Config is the fully resolved configuration.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Wallpaper Wallpaper `toml:"wallpaper"`
	Theme     Theme     `toml:"theme"`
	Tools     Tools     `toml:"tools"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
}

// Paths lists every directory and file chromash reads or writes.
type Paths struct {
	Home            string `toml:"-"`
	Config          string `toml:"config"`
	Presets         string `toml:"presets"`
	CurrentTheme    string `toml:"current_theme"`
	Wallpapers      string `toml:"wallpapers"`
	Hyprpaper       string `toml:"hyprpaper"`
	HyprpaperConfig string `toml:"hyprpaper_config"`
	Cache           string `toml:"cache"`
}

// Wallpaper selects and tunes the wallpaper backend.
type Wallpaper struct {
	Backend string `toml:"backend"`
	// SettleDelay is waited between unloading and preloading hyprpaper images.
	SettleDelay duration `toml:"settle_delay"`
	// Transition is passed to `swww img --transition-type`.
	Transition string `toml:"transition"`
}

// Theme holds default theme options. Empty values mean "derive".
type Theme struct {
	Mode   string `toml:"mode"`
	Scheme string `toml:"scheme"`
}

// Tools names the external binaries. Bare names are resolved on PATH.
type Tools struct {
	Matugen string `toml:"matugen"`
	Hyprctl string `toml:"hyprctl"`
	Swww    string `toml:"swww"`
}

// Cache selects the palette cache backend.
type Cache struct {
	Backend   string   `toml:"backend"`
	TTL       duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

// Server configures `chromash serve`.
type Server struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "200ms".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	home := homeDir()
	configDir := xdgDir("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	cacheDir := xdgDir("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	wallpapers := filepath.Join(home, "Pictures", "Wallpapers")
	if pics := os.Getenv("XDG_PICTURES_DIR"); pics != "" {
		wallpapers = filepath.Join(pics, "Wallpapers")
	}

	return &Config{
		Paths: Paths{
			Home:            home,
			Config:          configDir,
			Presets:         filepath.Join(configDir, "presets"),
			CurrentTheme:    filepath.Join(configDir, "current_theme.json"),
			Wallpapers:      wallpapers,
			Hyprpaper:       filepath.Join(home, ".config", "hypr", "hyprpaper"),
			HyprpaperConfig: filepath.Join(home, ".config", "hypr", "hyprpaper.conf"),
			Cache:           cacheDir,
		},
		Wallpaper: Wallpaper{
			Backend:     BackendHyprpaper,
			SettleDelay: duration{200 * time.Millisecond},
			Transition:  "simple",
		},
		Tools: Tools{
			Matugen: "matugen",
			Hyprctl: "hyprctl",
			Swww:    "swww",
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     duration{30 * 24 * time.Hour},
		},
		Server: Server{
			Addr: "127.0.0.1:7377",
		},
	}
}

// DefaultPath is the location of the optional config file.
func DefaultPath() string {
	return filepath.Join(Default().Paths.Config, "config.toml")
}

// Load returns the defaults overlaid with the TOML file at path.
// A missing file is not an error. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	cfg.expandHome()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Wallpaper.Backend {
	case BackendHyprpaper, BackendSwww:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown wallpaper backend %q (want %s or %s)",
			c.Wallpaper.Backend, BackendHyprpaper, BackendSwww)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend redis requires redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// EnsureDirs creates the config, presets, wallpaper and hyprpaper directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.Config, c.Paths.Presets, c.Paths.Wallpapers, c.Paths.Hyprpaper} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ExpandHome resolves a leading "~/" against the configured home directory.
func (c *Config) ExpandHome(p string) string {
	return expand(c.Paths.Home, p)
}

// SettleDelay is the hyprpaper unload/preload pause.
func (c *Config) SettleDelay() time.Duration { return c.Wallpaper.SettleDelay.Duration }

// CacheTTL is the lifetime of cached palette entries.
func (c *Config) CacheTTL() time.Duration { return c.Cache.TTL.Duration }

func (c *Config) expandHome() {
	p := &c.Paths
	for _, field := range []*string{&p.Config, &p.Presets, &p.CurrentTheme, &p.Wallpapers, &p.Hyprpaper, &p.HyprpaperConfig, &p.Cache} {
		*field = expand(p.Home, *field)
	}
}

func expand(home, p string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	return "/"
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		base = fallback
	}
	return filepath.Join(base, AppName)
}
