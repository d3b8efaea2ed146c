package tui

import "errors"

// ErrMissingEditorService is returned when the editor service is not provided.
var ErrMissingEditorService = errors.New("tui: editor service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
