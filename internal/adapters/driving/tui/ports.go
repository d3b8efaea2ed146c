// Package tui provides an interactive terminal user interface for cvboard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Editor owns the document being edited.
	Editor driving.EditorService

	// Session gates edit mode.
	Session driving.SessionService

	// Export renders PDFs. Optional; export is unavailable without it.
	Export driving.ExportService

	// Persistence reports when the CV was last stored. Optional.
	Persistence driving.PersistenceService

	// Watcher reports writes made by other processes. Optional.
	Watcher driven.ChangeWatcher

	// SaveEvents receives the outcome of every editor save. Optional.
	SaveEvents <-chan bool

	// ExportDir is where PDFs are written. Empty means the working directory.
	ExportDir string
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(editor driving.EditorService, session driving.SessionService) *Ports {
	return &Ports{
		Editor:  editor,
		Session: session,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Editor == nil {
		return ErrMissingEditorService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
