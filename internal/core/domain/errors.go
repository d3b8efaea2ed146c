package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown section type or theme.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidImport indicates an imported file is not a CV snapshot.
	// The current document is left unchanged when this is returned.
	ErrInvalidImport = errors.New("invalid import file")

	// ErrInvalidContent indicates a structured edit could not be parsed.
	// The section keeps its previous content.
	ErrInvalidContent = errors.New("invalid section content")

	// ErrStoreUnavailable indicates the key-value store could not be opened.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Session Errors.

	// ErrAuthRequired indicates an edit was attempted without an edit session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the supplied credentials are wrong.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrEditLocked indicates a gesture was attempted outside edit mode.
	ErrEditLocked = errors.New("edit mode is not enabled")

	// Export Errors.

	// ErrExportInProgress indicates a PDF export is already running.
	ErrExportInProgress = errors.New("export in progress")

	// ErrExportUnavailable indicates no renderer is configured.
	ErrExportUnavailable = errors.New("export unavailable")
)
