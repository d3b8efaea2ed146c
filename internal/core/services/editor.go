package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure EditorService implements the interface.
var _ driving.EditorService = (*EditorService)(nil)

// EditorService holds the current document snapshot. Mutations swap in a
// new snapshot under a lock and schedule a debounced save, so a burst of
// edits produces one write carrying the latest state.
type EditorService struct {
	persistence driving.PersistenceService
	debouncer   *Debouncer
	onSave      func(ok bool)
	onChange    func(doc domain.Document)

	mu  sync.RWMutex
	doc domain.Document

	saveMu sync.Mutex
}

// EditorOption configures an EditorService.
type EditorOption func(*EditorService)

// WithSaveHook registers a callback run after every save attempt.
func WithSaveHook(fn func(ok bool)) EditorOption {
	return func(e *EditorService) {
		e.onSave = fn
	}
}

// WithChangeHook registers a callback run after every snapshot change.
func WithChangeHook(fn func(doc domain.Document)) EditorOption {
	return func(e *EditorService) {
		e.onChange = fn
	}
}

// NewEditorService creates an editor over doc. Saves are delayed until
// the document has been quiet for delay.
func NewEditorService(
	doc domain.Document,
	persistence driving.PersistenceService,
	delay time.Duration,
	opts ...EditorOption,
) *EditorService {
	e := &EditorService{
		persistence: persistence,
		debouncer:   NewDebouncer(delay),
		doc:         doc,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OpenEditor loads the stored document, falling back to the built-in
// default when nothing usable is stored.
func OpenEditor(
	ctx context.Context,
	persistence driving.PersistenceService,
	delay time.Duration,
	opts ...EditorOption,
) *EditorService {
	doc, ok := persistence.Load(ctx)
	if !ok {
		logger.Info("no stored document, starting from the default CV")
		d := DefaultDocument()
		doc = &d
	}
	return NewEditorService(*doc, persistence, delay, opts...)
}

// Document returns the current snapshot.
func (e *EditorService) Document() domain.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc
}

// mutate applies fn to the current snapshot and schedules a save.
func (e *EditorService) mutate(fn func(domain.Document) domain.Document) {
	e.mu.Lock()
	e.doc = fn(e.doc)
	doc := e.doc
	e.mu.Unlock()

	e.debouncer.Schedule(func() { e.save(context.Background()) })
	if e.onChange != nil {
		e.onChange(doc)
	}
}

// save writes the latest snapshot.
func (e *EditorService) save(ctx context.Context) bool {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	ok := e.persistence.Save(ctx, e.Document())
	if e.onSave != nil {
		e.onSave(ok)
	}
	return ok
}

// AddSection appends a new section of the given type. Its order is the
// section count before the add.
func (e *EditorService) AddSection(sectionType domain.SectionType, title string) (domain.Section, error) {
	section, err := NewSection(sectionType, title, 0)
	if err != nil {
		return domain.Section{}, err
	}
	e.mutate(func(d domain.Document) domain.Document {
		section.Order = nextOrder(d)
		return domain.AddSection(d, section)
	})
	logger.Debug("added %s section %s", sectionType, section.ID)
	return section, nil
}

// DeleteSection removes a section.
func (e *EditorService) DeleteSection(id string) {
	e.mutate(func(d domain.Document) domain.Document {
		return domain.DeleteSection(d, id)
	})
}

// EditSection replaces a section's content.
func (e *EditorService) EditSection(id string, content domain.Content) {
	e.mutate(func(d domain.Document) domain.Document {
		return domain.EditSection(d, id, content)
	})
}

// EditSectionText parses text as the section's payload and applies it.
func (e *EditorService) EditSectionText(id, text string) error {
	section, ok := e.Document().Section(id)
	if !ok {
		return fmt.Errorf("%w: section %s", domain.ErrNotFound, id)
	}
	content, err := domain.ParseContent(section.Type, text)
	if err != nil {
		return err
	}
	e.EditSection(id, content)
	return nil
}

// RenameSection replaces a section's title.
func (e *EditorService) RenameSection(id, title string) {
	e.mutate(func(d domain.Document) domain.Document {
		return domain.RenameSection(d, id, title)
	})
}

// ResizeSection sets a section's explicit size.
func (e *EditorService) ResizeSection(id string, width, height float64) {
	e.mutate(func(d domain.Document) domain.Document {
		return domain.ResizeSection(d, id, width, height)
	})
}

// Reorder applies all assignments in one snapshot.
func (e *EditorService) Reorder(assignments []domain.OrderAssignment) {
	if len(assignments) == 0 {
		return
	}
	e.mutate(func(d domain.Document) domain.Document {
		return domain.Reorder(d, assignments)
	})
}

// MoveSection moves source immediately before target.
func (e *EditorService) MoveSection(sourceID, targetID string) bool {
	moved := false
	e.mu.Lock()
	assignments, ok := MoveBefore(e.doc, sourceID, targetID)
	if ok {
		e.doc = domain.Reorder(e.doc, assignments)
		moved = true
	}
	doc := e.doc
	e.mu.Unlock()

	if moved {
		e.debouncer.Schedule(func() { e.save(context.Background()) })
		if e.onChange != nil {
			e.onChange(doc)
		}
	}
	return moved
}

// SetHeader replaces the title or subtitle.
func (e *EditorService) SetHeader(field domain.HeaderField, value string) error {
	if !field.IsValid() {
		return fmt.Errorf("%w: header field %q", domain.ErrInvalidInput, field)
	}
	e.mutate(func(d domain.Document) domain.Document {
		return domain.SetHeader(d, field, value)
	})
	return nil
}

// SetTheme replaces the theme.
func (e *EditorService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: theme %q", domain.ErrUnsupportedType, theme)
	}
	e.mutate(func(d domain.Document) domain.Document {
		return domain.SetTheme(d, theme)
	})
	return nil
}

// Replace swaps in a whole document.
func (e *EditorService) Replace(doc domain.Document) {
	e.mutate(func(domain.Document) domain.Document {
		return doc
	})
}

// Reset restores the built-in default document.
func (e *EditorService) Reset() {
	e.Replace(DefaultDocument())
}

// Reload adopts the stored document. A pending save is dropped because the
// store is now the newer copy.
func (e *EditorService) Reload(ctx context.Context) bool {
	doc, ok := e.persistence.Load(ctx)
	if !ok {
		return false
	}
	e.debouncer.Cancel()

	e.mu.Lock()
	e.doc = *doc
	e.mu.Unlock()

	if e.onChange != nil {
		e.onChange(*doc)
	}
	return true
}

// Pending reports whether a debounced save is waiting.
func (e *EditorService) Pending() bool {
	return e.debouncer.Pending()
}

// Flush saves the current snapshot now.
func (e *EditorService) Flush(ctx context.Context) bool {
	e.debouncer.Cancel()
	return e.save(ctx)
}

// Close saves any pending edit and stops the save timer.
func (e *EditorService) Close(ctx context.Context) error {
	pending := e.debouncer.Pending()
	e.debouncer.Stop()
	if !pending {
		return nil
	}
	if !e.save(ctx) {
		return fmt.Errorf("saving document on close: %w", domain.ErrStoreUnavailable)
	}
	return nil
}
