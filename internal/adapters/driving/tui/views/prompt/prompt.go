// Package prompt provides a one-line text entry view for renames and
// header edits.
package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
)

// View edits a single value and reports it back with its target.
type View struct {
	styles    *styles.Styles
	field     *input.Field
	target    messages.PromptTarget
	sectionID string
	width     int
}

// NewView creates a new prompt view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		field:  input.NewField(s, "Value"),
		width:  80,
	}
}

// Open prepares the prompt for a request.
func (v *View) Open(req messages.PromptRequested) tea.Cmd {
	v.target = req.Target
	v.sectionID = req.SectionID
	v.field = input.NewField(v.styles, label(req.Target))
	v.field.SetWidth(v.width)
	v.field.SetValue(req.Value)
	return v.field.Init()
}

func label(t messages.PromptTarget) string {
	switch t {
	case messages.PromptTitle:
		return "Title"
	case messages.PromptSubtitle:
		return "Subtitle"
	default:
		return "Section title"
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the prompt view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			out := messages.PromptSubmitted{
				Target:    v.target,
				SectionID: v.sectionID,
				Value:     strings.TrimSpace(v.field.Value()),
			}
			return v, func() tea.Msg { return out }
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBoard}
			}
		}
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

// View renders the prompt.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.field.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[enter] apply  [esc] cancel"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.field.SetWidth(width)
}

// Value returns the text entered so far.
func (v *View) Value() string {
	return v.field.Value()
}
