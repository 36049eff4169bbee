package theme

import "strings"

const (
	colorPrefix     = "color_"
	wallpaperPrefix = "wallpaper_"
)

// SourceKind tells what a theme was derived from.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceColor
	SourceWallpaper
)

// ColorSource encodes a hex color theme source.
func ColorSource(hex string) string { return colorPrefix + hex }

// WallpaperSource encodes an image theme source.
func WallpaperSource(path string) string { return wallpaperPrefix + path }

// ParseSource splits a recorded source into its kind and value.
func ParseSource(source string) (SourceKind, string) {
	if v, ok := strings.CutPrefix(source, colorPrefix); ok {
		return SourceColor, v
	}
	if v, ok := strings.CutPrefix(source, wallpaperPrefix); ok {
		return SourceWallpaper, v
	}
	return SourceUnknown, source
}

// Current records the last applied theme.
type Current struct {
	Source     string  `json:"source"`
	Timestamp  int64   `json:"timestamp"`
	PresetName *string `json:"preset_name"`
	// Revision changes on every apply.
	Revision string `json:"revision,omitempty"`
}
