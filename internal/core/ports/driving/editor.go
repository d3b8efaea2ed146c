package driving

import (
	"context"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// EditorService owns the document being edited. Every mutation replaces
// the current snapshot and schedules a debounced save.
type EditorService interface {
	// Document returns the current snapshot.
	Document() domain.Document

	// AddSection creates a section with default content at the end.
	AddSection(sectionType domain.SectionType, title string) (domain.Section, error)

	// DeleteSection removes a section. Unknown IDs are a no-op.
	DeleteSection(id string)

	// EditSection replaces a section's content. Unknown IDs are a no-op.
	EditSection(id string, content domain.Content)

	// EditSectionText parses a structured edit and applies it. Malformed
	// text returns domain.ErrInvalidContent and keeps the previous content.
	EditSectionText(id, text string) error

	// RenameSection replaces a section's title.
	RenameSection(id, title string)

	// ResizeSection sets a section's explicit size, clamped to the floor.
	ResizeSection(id string, width, height float64)

	// Reorder applies order assignments atomically.
	Reorder(assignments []domain.OrderAssignment)

	// MoveSection moves a section immediately before another one and
	// renumbers every section densely.
	MoveSection(sourceID, targetID string) bool

	// SetHeader replaces the title or subtitle.
	SetHeader(field domain.HeaderField, value string) error

	// SetTheme replaces the theme.
	SetTheme(theme domain.Theme) error

	// Replace swaps in a whole document, e.g. after import or reset.
	Replace(doc domain.Document)

	// Reset restores the built-in default document.
	Reset()

	// Reload replaces the snapshot with the stored document without
	// scheduling a save, e.g. after another process changed the store.
	Reload(ctx context.Context) bool

	// Flush saves the current snapshot immediately, cancelling any pending
	// debounced save.
	Flush(ctx context.Context) bool

	// Close flushes pending work and stops timers.
	Close(ctx context.Context) error
}
