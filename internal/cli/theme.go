package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/theme"
)

// themeCommand creates the "theme" command.
func (c *CLI) themeCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, cc, err := c.newManager(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			cur, err := m.CurrentTheme(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cur)
			}
			if cur == nil {
				printInfo("No theme applied yet")
				return nil
			}
			printTheme(cur)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the theme as JSON (null when none)")
	return cmd
}

func printTheme(cur *theme.Current) {
	printKeyValue("source", describeSource(cur.Source))
	if kind, value := theme.ParseSource(cur.Source); kind == theme.SourceWallpaper {
		printKeyValue("wallpaper", value)
	}
	if cur.PresetName != nil {
		printKeyValue("preset", StyleHighlight.Render(*cur.PresetName))
	}
	printKeyValue("applied", time.Unix(cur.Timestamp, 0).Format(time.DateTime))
	if cur.Revision != "" {
		printKeyValue("revision", StyleDim.Render(cur.Revision))
	}
}
