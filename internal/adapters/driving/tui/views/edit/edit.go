// Package edit provides the structured edit view for one CV section.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// View edits a section payload as JSON text.
type View struct {
	styles *styles.Styles
	editor driving.EditorService

	area      textarea.Model
	sectionID string
	title     string
	kind      domain.SectionType
	width     int
	height    int
	ready     bool
	err       error
}

// NewView creates a new edit view.
func NewView(s *styles.Styles, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	area := textarea.New()
	area.ShowLineNumbers = true
	area.CharLimit = 0
	return &View{
		styles: s,
		editor: editor,
		area:   area,
		width:  80,
		height: 24,
	}
}

// SetSection loads the section's current payload into the text area.
func (v *View) SetSection(id string) tea.Cmd {
	v.err = nil
	s, ok := v.editor.Document().Section(id)
	if !ok {
		v.sectionID = ""
		v.err = fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
		return nil
	}
	v.sectionID = s.ID
	v.title = s.Title
	v.kind = s.Type
	v.area.SetValue(domain.FormatContent(s.Content))
	v.resize()
	return v.area.Focus()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the edit view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+s":
			return v, v.apply()
		case "esc":
			v.area.Blur()
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewBoard}
			}
		}
	}

	var cmd tea.Cmd
	v.area, cmd = v.area.Update(msg)
	return v, cmd
}

// apply hands the text to the editor. A rejected edit leaves the section
// untouched, so the text area is put back to the stored payload.
func (v *View) apply() tea.Cmd {
	if v.sectionID == "" {
		return nil
	}
	id := v.sectionID
	err := v.editor.EditSectionText(id, v.area.Value())
	v.err = err
	if err != nil {
		if s, ok := v.editor.Document().Section(id); ok {
			v.area.SetValue(domain.FormatContent(s.Content))
		}
	} else {
		v.area.Blur()
	}
	return func() tea.Msg {
		return messages.EditApplied{SectionID: id, Err: err}
	}
}

// View renders the edit view.
func (v *View) View() string {
	var b strings.Builder

	heading := v.title
	if heading == "" {
		heading = "Edit section"
	}
	b.WriteString(v.styles.Title.Render(heading))
	if v.kind != "" {
		b.WriteString(" ")
		b.WriteString(v.styles.Muted.Render("(" + v.kind.Description() + ")"))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	if v.sectionID == "" {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
			b.WriteString("\n\n")
		}
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.area.View())
	b.WriteString("\n\n")

	if v.err != nil {
		msg := v.err.Error()
		if errors.Is(v.err, domain.ErrInvalidContent) {
			msg = "rejected, reverted: " + msg
		}
		b.WriteString(v.styles.Error.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[ctrl+s] apply  [esc] back")
}

// resize fits the text area to the view, leaving room for the header and
// footer lines.
func (v *View) resize() {
	w := v.width - 4
	if w < 20 {
		w = 20
	}
	h := v.height - 8
	if h < 3 {
		h = 3
	}
	v.area.SetWidth(w)
	v.area.SetHeight(h)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.resize()
}

// SectionID returns the section being edited.
func (v *View) SectionID() string {
	return v.sectionID
}

// Value returns the current text.
func (v *View) Value() string {
	return v.area.Value()
}

// SetValue replaces the current text.
func (v *View) SetValue(s string) {
	v.area.SetValue(s)
}

// Err returns the result of the last apply.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
