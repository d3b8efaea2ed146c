package mcp

import (
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Editor owns the document. Required.
	Editor driving.EditorService

	// Session gates mutating tools. When nil, mutations are not gated.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}
