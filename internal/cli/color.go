package cli

import (
	"github.com/spf13/cobra"

	"github.com/chromash/chromash/pkg/theme"
)

// themeFlags are the flags shared by the apply commands.
type themeFlags struct {
	mode       string
	scheme     string
	savePreset string
}

func (f *themeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "color mode: light or dark")
	cmd.Flags().StringVarP(&f.scheme, "scheme", "s", "", "matugen scheme, e.g. tonal-spot, fruit-salad")
	cmd.Flags().StringVar(&f.savePreset, "save-preset", "", "save the result as a preset with this name")

	_ = cmd.RegisterFlagCompletionFunc("mode", fixedCompletion(string(theme.Light), string(theme.Dark)))
	names := make([]string, len(theme.Schemes))
	for i, s := range theme.Schemes {
		names[i] = s.Name()
	}
	_ = cmd.RegisterFlagCompletionFunc("scheme", fixedCompletion(names...))
}

// options parses the flags. Unknown modes and schemes are errors.
func (f themeFlags) options() (theme.Options, error) {
	var opts theme.Options
	if f.mode != "" {
		m, err := theme.ParseMode(f.mode)
		if err != nil {
			return opts, err
		}
		opts = opts.WithMode(m)
	}
	if f.scheme != "" {
		s, err := theme.ParseScheme(f.scheme)
		if err != nil {
			return opts, err
		}
		opts = opts.WithScheme(s)
	}
	if f.savePreset != "" {
		opts.SavePreset = true
		opts.PresetName = f.savePreset
	}
	return opts, nil
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// colorCommand creates the "color" command.
func (c *CLI) colorCommand() *cobra.Command {
	var flags themeFlags

	cmd := &cobra.Command{
		Use:   "color <hex>",
		Short: "Generate a theme from a hex color",
		Long: `Generate a theme from a hex color such as "#1e66f5", "1e66f5" or "#18f".

Mode defaults to light and scheme to tonal-spot unless set here or in the
[theme] section of the config file.`,
		Example: `  chromash color "#1e66f5"
  chromash color 89b4fa -m dark -s expressive --save-preset mocha`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			m, _, cc, err := c.newManager(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			prog := newProgress(c.Logger)
			res, err := m.ApplyColor(ctx, args[0], opts)
			if err != nil {
				return err
			}
			prog.done("applied color theme")
			printResult(res)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
