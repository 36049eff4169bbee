package cli

import (
	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/chromash"
	"github.com/chromash/chromash/pkg/theme"
)

// wallpaperCommand creates the "wallpaper" command.
func (c *CLI) wallpaperCommand() *cobra.Command {
	var (
		flags    themeFlags
		noColors bool
	)

	cmd := &cobra.Command{
		Use:   "wallpaper [path]",
		Short: "Set a wallpaper and generate a theme from it",
		Long: `Set a wallpaper and generate a theme from it.

Without a path, or when the path does not exist, the current managed
wallpaper or the first image in the wallpapers directory is used. Mode and
scheme are derived from the image's dominant color unless given.`,
		Example: `  chromash wallpaper ~/Pictures/Wallpapers/forest.jpg
  chromash wallpaper forest.jpg -m dark --save-preset forest
  chromash wallpaper --no-colors`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.applyWallpaper(cmd, path, !noColors, opts)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "only set the wallpaper")
	return cmd
}

// wallpaperOnlyCommand creates the "wallpaper-only" command.
func (c *CLI) wallpaperOnlyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "wallpaper-only <path>",
		Short: "Set a wallpaper without changing colors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyWallpaper(cmd, args[0], false, theme.Options{})
		},
	}
}

func (c *CLI) applyWallpaper(cmd *cobra.Command, path string, extract bool, opts theme.Options) error {
	ctx := cmd.Context()
	m, _, cc, err := c.newManager(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	prog := newProgress(c.Logger)
	var res *chromash.Result
	err = withSpinner(ctx, "Setting wallpaper...", func() error {
		var err error
		res, err = m.ApplyWallpaper(ctx, path, extract, opts)
		return err
	})
	if err != nil {
		return err
	}
	prog.done("applied wallpaper")

	printResult(res)
	if extract && !res.Colors {
		printWarning("Could not extract colors from %s", res.Wallpaper)
	}
	return nil
}
