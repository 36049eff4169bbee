package cli

import (
	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/command"
	"github.com/chromash/chromash/pkg/config"
	"github.com/chromash/chromash/pkg/errors"
)

// requiredTools lists the external programs cfg needs.
func requiredTools(cfg *config.Config) []command.Tool {
	tools := []command.Tool{
		{Name: "matugen", Binary: cfg.Tools.Matugen, Purpose: "theme generation"},
	}
	switch cfg.Wallpaper.Backend {
	case config.BackendSwww:
		tools = append(tools, command.Tool{Name: "swww", Binary: cfg.Tools.Swww, Purpose: "wallpaper backend"})
	default:
		tools = append(tools, command.Tool{Name: "hyprctl", Binary: cfg.Tools.Hyprctl, Purpose: "hyprpaper control"})
	}
	return tools
}

// doctorCommand creates the "doctor" command.
func (c *CLI) doctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools chromash drives are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var missing []string
			for _, st := range command.Locate(requiredTools(cfg)) {
				if st.Found {
					printSuccess("%s %s", st.Name, StyleDim.Render(st.Path))
					continue
				}
				printError("%s not found %s", st.Name, StyleDim.Render("("+st.Purpose+")"))
				missing = append(missing, st.Name)
			}

			printKeyValue("backend", cfg.Wallpaper.Backend)
			printKeyValue("presets", cfg.Paths.Presets)
			printKeyValue("wallpapers", cfg.Paths.Wallpapers)
			printKeyValue("cache", cfg.Cache.Backend)

			if len(missing) > 0 {
				return errors.New(errors.ErrCodeToolNotFound, "missing tools: %v", missing)
			}
			return nil
		},
	}
}
