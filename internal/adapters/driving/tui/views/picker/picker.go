// Package picker provides the section type chooser shown when adding a
// section.
package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// View lists the section types and emits the chosen one.
type View struct {
	styles   *styles.Styles
	items    []domain.SectionType
	selected int
	width    int
	height   int
	ready    bool
}

// NewView creates a new picker view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:   s,
		items:    domain.SectionTypes(),
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the picker view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			t := v.items[v.selected]
			return v, func() tea.Msg {
				return messages.SectionTypeChosen{Type: t}
			}

		case "esc", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBoard}
			}
		}
	}

	return v, nil
}

// View renders the picker.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Add section"))
	b.WriteString("\n\n")

	for i, t := range v.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

		if i == v.selected {
			cursor = "> "
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color("86")).
				Bold(true)
		}

		b.WriteString(cursor + style.Render(t.Description()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Render("[j/k] Navigate  [Enter] Add  [Esc] Cancel")
	b.WriteString(footer)

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset moves the cursor back to the first type.
func (v *View) Reset() {
	v.selected = 0
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
