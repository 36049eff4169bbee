// Package wallpaper picks wallpaper images and hands them to a wallpaper
// daemon (hyprpaper or swww).
package wallpaper

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chromash/chromash/pkg/errors"
)

// Backend displays an image on every monitor.
type Backend interface {
	// Name identifies the backend in logs and `doctor` output.
	Name() string
	// Set displays path and returns the path the daemon was given, which
	// may be a managed copy.
	Set(ctx context.Context, path string) (string, error)
}

// Extensions are the accepted image extensions, lowercase.
var Extensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}

// IsImage reports whether path has an accepted image extension.
func IsImage(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// List returns the image files directly inside dir, sorted by name.
// A missing directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsImage(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Selector resolves which wallpaper to use when none, or an unusable one,
// is given.
type Selector struct {
	// Home expands "~/" in explicit paths.
	Home string
	// Dirs are searched in order for the first image.
	Dirs []string
}

// Select returns explicit when it names a regular file; otherwise the first
// image of the first directory in s.Dirs that has one.
func (s Selector) Select(explicit string) (string, error) {
	if explicit != "" {
		if err := errors.ValidateImagePath(explicit); err != nil {
			return "", err
		}
		p := s.ExpandHome(explicit)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, nil
		}
	}

	for _, dir := range s.Dirs {
		images, err := List(dir)
		if err != nil {
			return "", err
		}
		if len(images) > 0 {
			return images[0], nil
		}
	}
	return "", errors.New(errors.ErrCodeNotFound, "no wallpaper found")
}

// ExpandHome resolves a leading "~/" against s.Home.
func (s Selector) ExpandHome(p string) string {
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(s.Home, rest)
	}
	return p
}
