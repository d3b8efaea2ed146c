// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewBoard shows the CV sections and handles gestures.
	ViewBoard ViewType = iota
	// ViewEdit is the structured edit of one section.
	ViewEdit
	// ViewLogin asks for the edit-mode credentials.
	ViewLogin
	// ViewPicker chooses the type of a new section.
	ViewPicker
	// ViewPrompt edits a single line of text.
	ViewPrompt
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewBoard:
		return "board"
	case ViewEdit:
		return "edit"
	case ViewLogin:
		return "login"
	case ViewPicker:
		return "picker"
	case ViewPrompt:
		return "prompt"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// EditRequested opens the structured edit view for a section.
type EditRequested struct {
	SectionID string
}

// EditApplied reports the outcome of a structured edit. Err wraps
// domain.ErrInvalidContent when the text was rejected and the section
// kept its previous content.
type EditApplied struct {
	SectionID string
	Err       error
}

// PromptTarget names what a single-line prompt edits.
type PromptTarget int

const (
	// PromptRename edits a section title.
	PromptRename PromptTarget = iota
	// PromptTitle edits the CV title.
	PromptTitle
	// PromptSubtitle edits the CV subtitle.
	PromptSubtitle
)

// PromptRequested opens the prompt view.
type PromptRequested struct {
	Target    PromptTarget
	SectionID string
	Value     string
}

// PromptSubmitted carries the value entered in the prompt view.
type PromptSubmitted struct {
	Target    PromptTarget
	SectionID string
	Value     string
}

// SectionTypeChosen is sent when the picker selects a section type.
type SectionTypeChosen struct {
	Type domain.SectionType
}

// DocumentChanged signals that the editor snapshot was replaced.
type DocumentChanged struct{}

// SaveCompleted reports a debounced or forced save.
type SaveCompleted struct {
	OK bool
}

// StoreChanged signals that another process wrote a stored key.
type StoreChanged struct {
	Key string
}

// LoginCompleted reports the result of a login attempt.
type LoginCompleted struct {
	Err error
}

// SessionChecked reports whether edit mode is active.
type SessionChecked struct {
	Authenticated bool
}

// SessionExpired signals that the edit-mode login has run out.
type SessionExpired struct{}

// ExportCompleted reports a finished PDF export.
type ExportCompleted struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
