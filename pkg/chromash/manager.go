package chromash

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/chromash/chromash/pkg/cache"
	"github.com/chromash/chromash/pkg/command"
	"github.com/chromash/chromash/pkg/config"
	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/matugen"
	"github.com/chromash/chromash/pkg/observability"
	"github.com/chromash/chromash/pkg/palette"
	"github.com/chromash/chromash/pkg/preset"
	"github.com/chromash/chromash/pkg/theme"
	"github.com/chromash/chromash/pkg/wallpaper"
)

// Generator produces application themes from a seed.
type Generator interface {
	FromColor(ctx context.Context, hex string, mode theme.ColorMode, scheme theme.SchemeType) error
	FromImage(ctx context.Context, path string, mode theme.ColorMode, scheme theme.SchemeType) error
}

// ColorExtractor finds the seed color of an image.
type ColorExtractor interface {
	Dominant(ctx context.Context, path string) (theme.RGB, error)
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Generator Generator
	Backend   wallpaper.Backend
	Selector  wallpaper.Selector
	Extractor ColorExtractor
	Presets   *preset.Store
	// CurrentPath is the location of current_theme.json.
	CurrentPath string
	// Defaults supplies mode and scheme when a request leaves them unset.
	Defaults theme.Options
	Logger   *log.Logger
}

// Manager applies and records themes.
type Manager struct {
	mu        sync.Mutex
	gen       Generator
	backend   wallpaper.Backend
	selector  wallpaper.Selector
	extractor ColorExtractor
	presets   *preset.Store
	current   currentStore
	defaults  theme.Options
	logger    *log.Logger
}

// Result describes a successful apply.
type Result struct {
	Source string
	Mode   theme.ColorMode
	Scheme theme.SchemeType
	// Color is the seed color, when one was used or derived.
	Color *theme.RGB
	// Wallpaper is the path the wallpaper backend displays. It may be a
	// managed copy of the recorded source.
	Wallpaper string
	// Preset is the preset saved or applied, if any.
	Preset string
	// Colors reports whether matugen ran.
	Colors bool
	// Theme is the recorded current theme; nil when colors were skipped.
	Theme *theme.Current
}

// NewManager builds a Manager from explicit dependencies.
func NewManager(d Deps) *Manager {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		gen:       d.Generator,
		backend:   d.Backend,
		selector:  d.Selector,
		extractor: d.Extractor,
		presets:   d.Presets,
		current:   currentStore{path: d.CurrentPath, now: time.Now},
		defaults:  d.Defaults,
		logger:    logger,
	}
}

// New wires a Manager from configuration: matugen and the configured
// wallpaper backend run through r, palettes are memoized in c.
// It creates the directories chromash owns.
func New(cfg *config.Config, r command.Runner, c cache.Cache, logger *log.Logger) (*Manager, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	presets, err := preset.NewStore(cfg.Paths.Presets)
	if err != nil {
		return nil, err
	}
	defaults, err := DefaultsFromConfig(cfg.Theme)
	if err != nil {
		return nil, err
	}

	return NewManager(Deps{
		Generator: matugen.New(r, cfg.Tools.Matugen),
		Backend:   NewBackend(cfg, r, logger),
		Selector: wallpaper.Selector{
			Home: cfg.Paths.Home,
			Dirs: []string{cfg.Paths.Hyprpaper, cfg.Paths.Wallpapers},
		},
		Extractor:   palette.NewExtractor(c, cfg.CacheTTL(), logger),
		Presets:     presets,
		CurrentPath: cfg.Paths.CurrentTheme,
		Defaults:    defaults,
		Logger:      logger,
	}), nil
}

// NewBackend returns the wallpaper backend selected in cfg.
func NewBackend(cfg *config.Config, r command.Runner, logger *log.Logger) wallpaper.Backend {
	if cfg.Wallpaper.Backend == config.BackendSwww {
		return &wallpaper.Swww{
			Runner:     r,
			Binary:     cfg.Tools.Swww,
			Transition: cfg.Wallpaper.Transition,
		}
	}
	return &wallpaper.Hyprpaper{
		Runner:          r,
		Hyprctl:         cfg.Tools.Hyprctl,
		Dir:             cfg.Paths.Hyprpaper,
		ConfigPath:      cfg.Paths.HyprpaperConfig,
		SettleDelay:     cfg.SettleDelay(),
		PreloadAttempts: 3,
		Logger:          logger,
	}
}

// DefaultsFromConfig parses the [theme] section.
func DefaultsFromConfig(t config.Theme) (theme.Options, error) {
	var o theme.Options
	if t.Mode != "" {
		m, err := theme.ParseMode(t.Mode)
		if err != nil {
			return o, err
		}
		o = o.WithMode(m)
	}
	if t.Scheme != "" {
		s, err := theme.ParseScheme(t.Scheme)
		if err != nil {
			return o, err
		}
		o = o.WithScheme(s)
	}
	return o, nil
}

// Presets exposes the preset store.
func (m *Manager) Presets() *preset.Store { return m.presets }

// Backend exposes the wallpaper backend.
func (m *Manager) Backend() wallpaper.Backend { return m.backend }

// ApplyColor generates a theme from a hex color. Unset mode and scheme
// default to light and tonal-spot.
func (m *Manager) ApplyColor(ctx context.Context, color string, opts theme.Options) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyColor(ctx, color, opts, "")
}

func (m *Manager) applyColor(ctx context.Context, color string, opts theme.Options, fromPreset string) (res *Result, err error) {
	start := time.Now()
	observability.Theme().OnApplyStart(ctx, "color", color)
	defer func() { observability.Theme().OnApplyComplete(ctx, "color", color, time.Since(start), err) }()

	rgb, err := theme.ParseHex(color)
	if err != nil {
		return nil, err
	}
	hex := rgb.Hex()
	mode := opts.ModeOr(m.defaults.ModeOr(theme.Light))
	scheme := opts.SchemeOr(m.defaults.SchemeOr(theme.SchemeTonalSpot))

	if err := m.gen.FromColor(ctx, hex, mode, scheme); err != nil {
		return nil, err
	}
	m.logger.Info("applied color theme", "color", rgb, "mode", mode, "scheme", scheme.Name())

	res = &Result{
		Source: theme.ColorSource(hex),
		Mode:   mode,
		Scheme: scheme,
		Color:  &rgb,
		Colors: true,
		Preset: fromPreset,
	}
	if err := m.record(ctx, res, opts, nil); err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyWallpaper displays a wallpaper and, when extract is set, generates a
// theme from it. An empty path selects the current managed wallpaper or the
// first image in the wallpaper directory. Unset mode and scheme are derived
// from the image's dominant color. If the image cannot be analyzed the
// wallpaper stays applied and colors are skipped.
func (m *Manager) ApplyWallpaper(ctx context.Context, path string, extract bool, opts theme.Options) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applyWallpaper(ctx, path, extract, opts, "")
}

func (m *Manager) applyWallpaper(ctx context.Context, path string, extract bool, opts theme.Options, fromPreset string) (res *Result, err error) {
	start := time.Now()
	observability.Theme().OnApplyStart(ctx, "wallpaper", path)
	defer func() { observability.Theme().OnApplyComplete(ctx, "wallpaper", path, time.Since(start), err) }()

	selected, err := m.selector.Select(path)
	if err != nil {
		return nil, err
	}
	if path != "" && selected != m.selector.ExpandHome(path) {
		m.logger.Warn("wallpaper not found, using fallback", "requested", path, "using", selected)
	}

	// Backends may hand back a managed copy that is removed once another
	// wallpaper is set, so the selected file is what gets recorded.
	recorded, err := filepath.Abs(selected)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", selected)
	}

	applied, err := m.backend.Set(ctx, selected)
	if err != nil {
		return nil, err
	}
	m.logger.Info("set wallpaper", "path", applied, "backend", m.backend.Name())

	res = &Result{Wallpaper: applied, Preset: fromPreset}
	if !extract {
		return res, nil
	}

	rgb, err := m.extractor.Dominant(ctx, applied)
	if err != nil {
		m.logger.Warn("could not extract colors, keeping previous theme", "path", applied, "err", err)
		return res, nil
	}
	res.Color = &rgb
	res.Mode = opts.ModeOr(m.defaults.ModeOr(theme.ModeFromBrightness(rgb)))
	res.Scheme = opts.SchemeOr(m.defaults.SchemeOr(theme.SchemeFromChroma(rgb)))

	if err := m.gen.FromImage(ctx, applied, res.Mode, res.Scheme); err != nil {
		return nil, err
	}
	m.logger.Info("applied wallpaper theme", "seed", rgb, "mode", res.Mode, "scheme", res.Scheme.Name())

	res.Source = theme.WallpaperSource(recorded)
	res.Colors = true
	if err := m.record(ctx, res, opts, &recorded); err != nil {
		return nil, err
	}
	return res, nil
}

// record saves the requested preset, if any, and writes current_theme.json.
func (m *Manager) record(ctx context.Context, res *Result, opts theme.Options, wallpaperPath *string) error {
	if name, ok := opts.PresetToSave(); ok {
		source := res.Source
		if _, err := m.presets.Save(ctx, name, &source, wallpaperPath); err != nil {
			return err
		}
		res.Preset = name
		m.logger.Info("saved preset", "name", name)
	}

	cur, err := m.current.save(res.Source, res.Preset)
	if err != nil {
		return err
	}
	res.Theme = cur
	return nil
}

// ApplyPreset replays a saved preset with default options.
func (m *Manager) ApplyPreset(ctx context.Context, name string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	meta, err := m.presets.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if meta.Source != nil {
		switch kind, value := theme.ParseSource(*meta.Source); kind {
		case theme.SourceColor:
			return m.applyColor(ctx, value, theme.Options{}, meta.Name)
		case theme.SourceWallpaper:
			if fileExists(value) {
				return m.applyWallpaper(ctx, value, true, theme.Options{}, meta.Name)
			}
			m.logger.Debug("preset wallpaper source missing", "path", value)
		}
	}
	if meta.Wallpaper != nil && fileExists(*meta.Wallpaper) {
		return m.applyWallpaper(ctx, *meta.Wallpaper, true, theme.Options{}, meta.Name)
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unable to apply preset %q: its source no longer exists", name)
}

// SavePreset stores a preset. With neither source nor wallpaper given, it
// snapshots the current theme.
func (m *Manager) SavePreset(ctx context.Context, name string, source, wallpaperPath *string) (*preset.Metadata, error) {
	if source == nil && wallpaperPath == nil {
		cur, err := m.current.load()
		if err != nil {
			return nil, err
		}
		if cur != nil {
			src := cur.Source
			source = &src
			if kind, value := theme.ParseSource(src); kind == theme.SourceWallpaper {
				wallpaperPath = &value
			}
		}
	}
	return m.presets.Save(ctx, name, source, wallpaperPath)
}

// DeletePreset removes a preset; false means it did not exist.
func (m *Manager) DeletePreset(ctx context.Context, name string) (bool, error) {
	return m.presets.Delete(ctx, name)
}

// ListPresets returns presets, most recently modified first.
func (m *Manager) ListPresets(ctx context.Context) ([]preset.Metadata, error) {
	return m.presets.List(ctx)
}

// CurrentTheme returns the last recorded theme, or nil if there is none.
func (m *Manager) CurrentTheme(ctx context.Context) (*theme.Current, error) {
	return m.current.load()
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
