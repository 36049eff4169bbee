package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chromash/chromash/pkg/preset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PresetPickerModel - Interactive preset selection
// =============================================================================

// PresetPickerModel is the bubbletea model for choosing a preset.
type PresetPickerModel struct {
	Presets  []preset.Metadata
	Cursor   int
	Selected *preset.Metadata
	Height   int
	Offset   int
}

// NewPresetPickerModel creates a picker over presets.
func NewPresetPickerModel(presets []preset.Metadata) PresetPickerModel {
	return PresetPickerModel{
		Presets: presets,
		Height:  15,
	}
}

func (m PresetPickerModel) Init() tea.Cmd {
	return nil
}

func (m PresetPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Presets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Presets) == 0 {
				return m, tea.Quit
			}
			p := m.Presets[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PresetPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Preset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Presets))
	for i := m.Offset; i < end; i++ {
		p := m.Presets[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		source := "—"
		if p.Source != nil {
			source = describeSource(*p.Source)
		}

		name := fmt.Sprintf("%s%-24s", cursor, p.Name)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(name))
		} else {
			b.WriteString(listNormalStyle.Render(name))
		}
		b.WriteString(" " + source + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Presets))))

	return b.String()
}
