package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/watch"
)

// watchCommand creates the "watch" command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    themeFlags
		noColors bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Apply new wallpapers as they appear in a directory",
		Long: `Watch a directory (the wallpapers directory by default) and apply each image
that is added or rewritten there. Bursts of changes are collapsed and only the
last image is applied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			m, cfg, cc, err := c.newManager(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			dir := cfg.Paths.Wallpapers
			if len(args) == 1 {
				dir = cfg.ExpandHome(args[0])
			}

			w := watch.New(dir, c.Logger)
			w.Debounce = debounce
			printInfo("Watching %s", StyleValue.Render(dir))

			return w.Run(ctx, func(ctx context.Context, path string) error {
				res, err := m.ApplyWallpaper(ctx, path, !noColors, opts)
				if err != nil {
					return err
				}
				printResult(res)
				return nil
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "only set the wallpaper")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before applying")
	return cmd
}
