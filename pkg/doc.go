// Package pkg provides the libraries behind the chromash theme manager.
//
// # Overview
//
// Chromash turns a seed, either a hex color or a wallpaper image, into a
// desktop theme by driving matugen, and puts the wallpaper on screen through
// hyprpaper or swww. The pkg directory is organized into three areas:
//
//  1. Domain: [theme] (modes, schemes, colors, sources), [palette] (dominant
//     color extraction), [preset] (named, saved themes)
//  2. Orchestration: [chromash] (the theme manager), [watch] (apply new
//     wallpapers as they appear), [server] (HTTP API)
//  3. Infrastructure: [command] (external tools), [matugen], [wallpaper]
//     (backends), [cache], [config], [errors], [observability], [buildinfo]
//
// # Data Flow
//
//	hex color ──────────────────────────────┐
//	                                        ↓
//	wallpaper → backend (hyprpaper/swww) → palette → matugen → current_theme.json
//	                                                    ↑
//	preset (metadata.json) ─────────────────────────────┘
//
// A wallpaper apply derives mode and scheme from the image's dominant color
// unless they are given explicitly. Palettes are cached by file content.
//
// # Files
//
//	~/.config/chromash/config.toml          optional settings
//	~/.config/chromash/current_theme.json   last applied theme
//	~/.config/chromash/presets/<name>/      one directory per preset
//	~/.config/hypr/hyprpaper/               the managed wallpaper copy
//	~/.cache/chromash/                      palette cache
package pkg
