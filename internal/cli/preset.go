package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/preset"
	"github.com/chromash/chromash/pkg/theme"
)

// presetsCommand creates the "presets" command.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, cc, err := c.newManager(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			list, err := m.ListPresets(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				if list == nil {
					list = []preset.Metadata{}
				}
				return printJSON(list)
			}
			if len(list) == 0 {
				printInfo("No presets yet")
				printDetail("Save one with: chromash preset save <name>")
				return nil
			}
			fmt.Fprintln(stdout, presetTable(list, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print presets as JSON")
	return cmd
}

// presetCommand creates the "preset" command group.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Apply, save, delete or pick presets",
	}

	cmd.AddCommand(c.presetApplyCommand())
	cmd.AddCommand(c.presetSaveCommand())
	cmd.AddCommand(c.presetDeleteCommand())
	cmd.AddCommand(c.presetPickCommand())

	return cmd
}

func (c *CLI) presetApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "apply <name>",
		Short:             "Apply a saved preset",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completePresetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.applyPreset(cmd, args[0])
		},
	}
}

func (c *CLI) applyPreset(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()
	m, _, cc, err := c.newManager(ctx)
	if err != nil {
		return err
	}
	defer cc.Close()

	prog := newProgress(c.Logger)
	res, err := m.ApplyPreset(ctx, name)
	if err != nil {
		return err
	}
	prog.done("applied preset")
	printResult(res)
	return nil
}

func (c *CLI) presetSaveCommand() *cobra.Command {
	var (
		color         string
		wallpaperPath string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a preset",
		Long: `Save a preset. Without --color or --wallpaper, the current theme is saved.
Saving over an existing preset keeps its creation time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, cfg, cc, err := c.newManager(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			var source, wall *string
			if color != "" {
				rgb, err := theme.ParseHex(color)
				if err != nil {
					return err
				}
				s := theme.ColorSource(rgb.Hex())
				source = &s
			}
			if wallpaperPath != "" {
				p, err := filepath.Abs(cfg.ExpandHome(wallpaperPath))
				if err != nil {
					return err
				}
				if source == nil {
					s := theme.WallpaperSource(p)
					source = &s
				}
				wall = &p
			}

			meta, err := m.SavePreset(ctx, args[0], source, wall)
			if err != nil {
				return err
			}
			if meta.Source == nil {
				printWarning("No current theme; saved an empty preset %q", meta.Name)
				return nil
			}
			printSuccess("Saved preset %s", StyleHighlight.Render(meta.Name))
			printDetail("%s", describeSource(*meta.Source))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "hex color to save instead of the current theme")
	cmd.Flags().StringVar(&wallpaperPath, "wallpaper", "", "wallpaper to save instead of the current theme")
	return cmd
}

func (c *CLI) presetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a preset",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completePresetNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, _, cc, err := c.newManager(cmd.Context())
			if err != nil {
				return err
			}
			defer cc.Close()

			ok, err := m.DeletePreset(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				printWarning("Preset not found: %s", args[0])
				return nil
			}
			printSuccess("Deleted preset %s", args[0])
			return nil
		},
	}
}

func (c *CLI) presetPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a preset interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New(errors.ErrCodeUnsupported, "preset pick needs an interactive terminal")
			}
			m, _, cc, err := c.newManager(cmd.Context())
			if err != nil {
				return err
			}
			list, err := m.ListPresets(cmd.Context())
			cc.Close()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No presets yet")
				return nil
			}

			final, err := tea.NewProgram(NewPresetPickerModel(list), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			picked := final.(PresetPickerModel).Selected
			if picked == nil {
				return nil
			}
			return c.applyPreset(cmd, picked.Name)
		},
	}
}

// completePresetNames offers saved preset names for shell completion.
func (c *CLI) completePresetNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	store, err := preset.NewStore(cfg.Paths.Presets)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	list, err := store.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []string
	for _, p := range list {
		if strings.HasPrefix(p.Name, toComplete) {
			names = append(names, p.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// =============================================================================
// Rendering
// =============================================================================

// describeSource renders a theme source for humans.
func describeSource(source string) string {
	switch kind, value := theme.ParseSource(source); kind {
	case theme.SourceColor:
		if rgb, err := theme.ParseHex(value); err == nil {
			return swatch(rgb)
		}
		return "#" + value
	case theme.SourceWallpaper:
		return filepath.Base(value)
	default:
		return source
	}
}

// presetTable renders presets as a table, newest first as given.
func presetTable(list []preset.Metadata, now time.Time) string {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		source := "—"
		if p.Source != nil {
			source = describeSource(*p.Source)
		}
		rows = append(rows, []string{p.Name, source, formatRelativeTime(p.ModifiedTime(), now)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Source", "Modified").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
