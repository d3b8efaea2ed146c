// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and the TUI input styling.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	width     int
}

// FieldOption configures a Field.
type FieldOption func(*Field)

// WithPlaceholder sets the text shown while the field is empty.
func WithPlaceholder(p string) FieldOption {
	return func(f *Field) {
		f.textinput.Placeholder = p
	}
}

// WithMask hides typed characters, for passwords.
func WithMask() FieldOption {
	return func(f *Field) {
		f.textinput.EchoMode = textinput.EchoPassword
		f.textinput.EchoCharacter = '•'
	}
}

// NewField creates a focused input labelled label.
func NewField(s *styles.Styles, label string, opts ...FieldOption) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	f := &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Init initialises the field.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	box := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the field including its label.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
