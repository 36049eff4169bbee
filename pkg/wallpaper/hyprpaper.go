package wallpaper

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/chromash/chromash/pkg/cache"
	"github.com/chromash/chromash/pkg/command"
	"github.com/chromash/chromash/pkg/errors"
)

// Hyprpaper keeps a managed copy of the wallpaper in Dir, rewrites
// hyprpaper.conf so the choice survives a restart, and switches the
// running daemon through hyprctl.
type Hyprpaper struct {
	Runner     command.Runner
	Hyprctl    string
	Dir        string
	ConfigPath string
	// SettleDelay is waited after unloading so hyprpaper frees the old image.
	SettleDelay time.Duration
	// PreloadAttempts bounds retries of the preload request.
	PreloadAttempts int
	Logger          *log.Logger
}

func (h *Hyprpaper) Name() string { return "hyprpaper" }

// Set copies path into Dir (removing any other image there), writes the
// config file and applies it to every monitor.
func (h *Hyprpaper) Set(ctx context.Context, path string) (string, error) {
	logger := h.logger()

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return "", err
	}
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) {
		return "", errors.New(errors.ErrCodeInvalidPath, "invalid file name: %s", path)
	}
	dest := filepath.Join(h.Dir, name)

	if err := h.removeOthers(dest); err != nil {
		return "", err
	}
	if !samePath(path, dest) {
		if err := copyFile(path, dest); err != nil {
			return "", fmt.Errorf("copy wallpaper: %w", err)
		}
	}
	if err := os.WriteFile(h.ConfigPath, []byte(Config(dest)), 0o644); err != nil {
		return "", fmt.Errorf("write hyprpaper config: %w", err)
	}
	logger.Debug("wrote hyprpaper config", "path", h.ConfigPath)

	if _, err := h.hyprctl(ctx, "hyprpaper", "unload", "all"); err != nil {
		logger.Debug("unload failed", "err", err)
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(h.SettleDelay):
	}

	err := cache.RetryWithBackoff(ctx, h.PreloadAttempts, cache.DefaultRetryDelay, func() error {
		_, err := h.hyprctl(ctx, "hyprpaper", "preload", dest)
		if errors.Is(err, errors.ErrCodeProcess) {
			return cache.Retryable(err)
		}
		return err
	})
	if err != nil {
		return "", err
	}

	out, err := h.hyprctl(ctx, "monitors")
	if err != nil {
		return "", err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, mon := range ParseMonitors(out) {
		g.Go(func() error {
			if _, err := h.hyprctl(gctx, "hyprpaper", "wallpaper", mon+","+dest); err != nil {
				logger.Warn("set wallpaper failed", "monitor", mon, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return dest, nil
}

func (h *Hyprpaper) hyprctl(ctx context.Context, args ...string) (string, error) {
	bin := h.Hyprctl
	if bin == "" {
		bin = "hyprctl"
	}
	return h.Runner.Run(ctx, bin, args...)
}

func (h *Hyprpaper) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

// removeOthers deletes every image in Dir except keep.
func (h *Hyprpaper) removeOthers(keep string) error {
	images, err := List(h.Dir)
	if err != nil {
		return err
	}
	for _, img := range images {
		if samePath(img, keep) {
			continue
		}
		if err := os.Remove(img); err != nil {
			h.logger().Debug("remove old wallpaper", "path", img, "err", err)
		}
	}
	return nil
}

// Config renders a hyprpaper.conf that shows path on every monitor.
func Config(path string) string {
	var b strings.Builder
	b.WriteString("# hyprpaper configuration - managed by chromash\n")
	fmt.Fprintf(&b, "preload = %s\n", path)
	fmt.Fprintf(&b, "wallpaper = ,%s\n", path)
	b.WriteString("\n")
	b.WriteString("# If you have specific monitor configurations, add them below:\n")
	fmt.Fprintf(&b, "# wallpaper = HDMI-A-1,%s\n", path)
	fmt.Fprintf(&b, "# wallpaper = eDP-1,%s\n", path)
	return b.String()
}

// ParseMonitors extracts monitor names from `hyprctl monitors` output,
// whose blocks start with lines like "Monitor DP-1 (ID 0):".
func ParseMonitors(out string) []string {
	var mons []string
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "Monitor") {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 1 {
			mons = append(mons, fields[1])
		}
	}
	return mons
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err1 := os.Stat(a)
	bi, err2 := os.Stat(b)
	return err1 == nil && err2 == nil && os.SameFile(ai, bi)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var _ Backend = (*Hyprpaper)(nil)
