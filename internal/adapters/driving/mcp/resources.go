package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// uriScheme is the custom URI scheme for cvboard resources.
const uriScheme = "cv://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "document",
		Name:        "document",
		Description: "The whole CV as JSON",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sections/{sectionId}",
		Name:        "section-content",
		Description: "Content of one CV section as editable JSON",
		MIMEType:    "application/json",
	}, s.handleSectionResource)
}

// handleDocumentResource returns the current document.
func (s *Server) handleDocumentResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.ports.Editor.Document(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling document: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSectionResource returns one section's content.
func (s *Server) handleSectionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSectionID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	section, ok := s.ports.Editor.Document().Section(id)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     domain.FormatContent(section.Content),
		}},
	}, nil
}

// extractSectionID extracts the section ID from cv://sections/{sectionId}.
func extractSectionID(uri string) string {
	const prefix = uriScheme + "sections/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
