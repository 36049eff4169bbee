// Package chromash is the theme manager behind the chromash CLI and HTTP API.
//
// A [Manager] applies themes from three kinds of sources:
//
//   - a hex color, handed to matugen as the seed color
//   - a wallpaper image, displayed through a wallpaper backend and handed to
//     matugen; when no mode or scheme is requested they are derived from the
//     image's dominant color
//   - a saved preset, which replays the source it was saved with
//
// Every successful apply is recorded in current_theme.json. Applies are
// serialized, so a Manager can be shared by the watcher and the HTTP server.
//
// # Usage
//
//	m, err := chromash.New(cfg, command.NewExec(), cache.NewNullCache(), logger)
//	if err != nil {
//	    return err
//	}
//	res, err := m.ApplyColor(ctx, "#1e66f5", theme.Options{})
package chromash
