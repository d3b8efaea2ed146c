// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Left shrinks the width while resizing.
	Left key.Binding

	// Right grows the width while resizing.
	Right key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Edit opens the structured edit of the selected section.
	Edit key.Binding

	// Add creates a new section.
	Add key.Binding

	// Delete removes the selected section.
	Delete key.Binding

	// Rename changes the selected section's title.
	Rename key.Binding

	// Move picks the selected section up for reordering.
	Move key.Binding

	// Resize starts resizing the selected section.
	Resize key.Binding

	// Title edits the CV title.
	Title key.Binding

	// Subtitle edits the CV subtitle.
	Subtitle key.Binding

	// Theme cycles the CV theme.
	Theme key.Binding

	// Export writes the CV as PDF.
	Export key.Binding

	// Save forces an immediate save.
	Save key.Binding

	// Login enters edit mode.
	Login key.Binding

	// Logout leaves edit mode.
	Logout key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "narrower"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "wider"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rename"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Resize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resize"),
		),
		Title: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "title"),
		),
		Subtitle: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "subtitle"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Export: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pdf"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Login: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "login"),
		),
		Logout: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "logout"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Export, k.Help, k.Quit}
}

// EditModeHelp returns the status bar hints while edit mode is active.
func (k *KeyMap) EditModeHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Add, k.Move, k.Resize, k.Help}
}

// GestureHelp returns the status bar hints while a move or resize runs.
func (k *KeyMap) GestureHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Edit, k.Add, k.Delete, k.Rename},
		{k.Move, k.Resize, k.Left, k.Right},
		{k.Title, k.Subtitle, k.Theme, k.Export, k.Save},
		{k.Login, k.Logout, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
