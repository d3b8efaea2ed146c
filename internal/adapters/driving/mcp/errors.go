// Package mcp provides an MCP (Model Context Protocol) server adapter for
// cvboard. It lets AI assistants read the CV and edit its sections.
package mcp

import "errors"

// ErrMissingEditor is returned when the editor service is not provided.
var ErrMissingEditor = errors.New("mcp: editor service is required")
