// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateViewing   State = "viewing"
	StateEditing   State = "editing"
	StateGesture   State = "gesture"
	StateExporting State = "exporting"
	StateError     State = "error"
)

// SaveState tracks the outcome of the last persistence attempt.
type SaveState int

const (
	SaveIdle SaveState = iota
	SavePending
	SaveDone
	SaveFailed
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	save    SaveState
	message string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateViewing,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	inner := s.width - s.styles.StatusBar.GetHorizontalPadding()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the mode, the save indicator and the message.
func (s *Bar) renderLeft() string {
	var mode string
	switch s.state {
	case StateEditing, StateGesture:
		mode = s.styles.Success.Render("EDIT")
	case StateExporting:
		mode = s.styles.Warning.Render("Generating PDF...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	default:
		mode = s.styles.Muted.Render("VIEW")
	}

	parts := []string{mode}
	switch s.save {
	case SavePending:
		parts = append(parts, s.styles.Muted.Render("saving..."))
	case SaveDone:
		parts = append(parts, s.styles.Success.Render("saved"))
	case SaveFailed:
		parts = append(parts, s.styles.Error.Render("save failed"))
	}
	if s.message != "" {
		parts = append(parts, s.styles.Normal.Render(s.message))
	}
	return strings.Join(parts, "  ")
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateGesture:
		bindings = s.keymap.GestureHelp()
	case StateEditing:
		bindings = s.keymap.EditModeHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetSave sets the save indicator.
func (s *Bar) SetSave(save SaveState) {
	s.save = save
}

// Save returns the save indicator.
func (s *Bar) Save() SaveState {
	return s.save
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetStyles swaps the styles, e.g. after a theme change.
func (s *Bar) SetStyles(st *styles.Styles) {
	if st != nil {
		s.styles = st
	}
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear drops the message and any error state.
func (s *Bar) Clear() {
	if s.state == StateError {
		s.state = StateViewing
	}
	s.message = ""
}
