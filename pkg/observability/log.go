package observability

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug log lines.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks creates hooks that log to l (log.Default when nil).
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetThemeHooks(h)
	SetCommandHooks(h)
	SetCacheHooks(h)
}

func (h *LogHooks) OnApplyStart(_ context.Context, kind, source string) {
	h.Logger.Debug("apply started", "kind", kind, "source", source)
}

func (h *LogHooks) OnApplyComplete(_ context.Context, kind, source string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("apply failed", "kind", kind, "source", source, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.Logger.Debug("apply finished", "kind", kind, "source", source, "duration", d.Round(time.Millisecond))
}

func (h *LogHooks) OnCommand(_ context.Context, name string, args []string, d time.Duration, err error) {
	h.Logger.Debug("exec", "cmd", name+" "+strings.Join(args, " "), "duration", d.Round(time.Millisecond), "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ ThemeHooks   = (*LogHooks)(nil)
	_ CommandHooks = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
)
