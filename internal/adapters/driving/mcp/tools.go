package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
)

// SectionOutput summarises one section.
type SectionOutput struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Order   int      `json:"order"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Summary []string `json:"summary,omitempty"`
}

// ListSectionsInput is the input schema for list_sections.
type ListSectionsInput struct {
	WithSummary bool `json:"with_summary,omitempty" jsonschema:"include a plain text summary of each section"`
}

// ListSectionsOutput is the output schema for list_sections.
type ListSectionsOutput struct {
	Title    string          `json:"title"`
	Subtitle string          `json:"subtitle"`
	Theme    string          `json:"theme"`
	Sections []SectionOutput `json:"sections"`
}

// AddSectionInput is the input schema for add_section.
type AddSectionInput struct {
	Type  string `json:"type" jsonschema:"section type: profile, experience, skills, education, interests, apps or custom"`
	Title string `json:"title,omitempty" jsonschema:"section title (defaults to the type name)"`
}

// SectionIDInput identifies a section.
type SectionIDInput struct {
	ID string `json:"id" jsonschema:"the section id"`
}

// MoveSectionInput is the input schema for move_section.
type MoveSectionInput struct {
	ID       string `json:"id" jsonschema:"the section to move"`
	BeforeID string `json:"before_id" jsonschema:"the section it should be placed in front of"`
}

// EditSectionInput is the input schema for edit_section.
type EditSectionInput struct {
	ID      string `json:"id" jsonschema:"the section id"`
	Content string `json:"content" jsonschema:"the new content as a JSON object of the section type's shape"`
}

// RenameSectionInput is the input schema for rename_section.
type RenameSectionInput struct {
	ID    string `json:"id" jsonschema:"the section id"`
	Title string `json:"title" jsonschema:"the new title"`
}

// ResizeSectionInput is the input schema for resize_section.
type ResizeSectionInput struct {
	ID     string  `json:"id" jsonschema:"the section id"`
	Width  float64 `json:"width" jsonschema:"width in pixels, at least 200"`
	Height float64 `json:"height" jsonschema:"height in pixels, at least 100"`
}

// SetHeaderInput is the input schema for set_header.
type SetHeaderInput struct {
	Field string `json:"field" jsonschema:"title or subtitle"`
	Value string `json:"value" jsonschema:"the new text"`
}

// SetThemeInput is the input schema for set_theme.
type SetThemeInput struct {
	Theme string `json:"theme" jsonschema:"light, dark, blue, teal, purple or red"`
}

// ChangeOutput reports the outcome of a mutating tool.
type ChangeOutput struct {
	Changed bool           `json:"changed"`
	Section *SectionOutput `json:"section,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List the CV header and its sections in display order",
	}, s.handleListSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_section",
		Description: "Add a section with example content at the end of the CV",
	}, s.handleAddSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_section",
		Description: "Delete a section",
	}, s.handleDeleteSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "move_section",
		Description: "Move a section in front of another section",
	}, s.handleMoveSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "edit_section",
		Description: "Replace a section's content; read cv://sections/{id} for the current shape",
	}, s.handleEditSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rename_section",
		Description: "Change a section's title",
	}, s.handleRenameSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resize_section",
		Description: "Set a section's size in pixels",
	}, s.handleResizeSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_header",
		Description: "Set the CV title or subtitle",
	}, s.handleSetHeader)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_theme",
		Description: "Change the CV colour theme",
	}, s.handleSetTheme)
}

// editor returns the editor once the edit session check passes.
func (s *Server) editor(ctx context.Context) (driving.EditorService, error) {
	if s.ports.Session != nil && !s.ports.Session.CheckAuthentication(ctx) {
		return nil, fmt.Errorf("%w: run 'cvboard login' first", domain.ErrAuthRequired)
	}
	return s.ports.Editor, nil
}

func (s *Server) section(id string) (*SectionOutput, error) {
	sec, ok := s.ports.Editor.Document().Section(id)
	if !ok {
		return nil, fmt.Errorf("%w: section %q", domain.ErrNotFound, id)
	}
	out := toSectionOutput(sec, false)
	return &out, nil
}

func toSectionOutput(sec domain.Section, withSummary bool) SectionOutput {
	out := SectionOutput{
		ID:     sec.ID,
		Type:   sec.Type.String(),
		Title:  sec.Title,
		Order:  sec.Order,
		Width:  sec.Width,
		Height: sec.Height,
	}
	if withSummary {
		out.Summary = domain.SummaryLines(sec.Content)
	}
	return out
}

func (s *Server) handleListSections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListSectionsInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	doc := s.ports.Editor.Document()
	out := ListSectionsOutput{
		Title:    doc.Title,
		Subtitle: doc.Subtitle,
		Theme:    doc.Theme.String(),
		Sections: make([]SectionOutput, 0, len(doc.Sections)),
	}
	for _, sec := range doc.Ordered() {
		out.Sections = append(out.Sections, toSectionOutput(sec, input.WithSummary))
	}
	return nil, out, nil
}

func (s *Server) handleAddSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddSectionInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	st, err := domain.ParseSectionType(input.Type)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	sec, err := ed.AddSection(st, input.Title)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	out := toSectionOutput(sec, false)
	return nil, ChangeOutput{Changed: true, Section: &out}, nil
}

func (s *Server) handleDeleteSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectionIDInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if _, ok := ed.Document().Section(input.ID); !ok {
		return nil, ChangeOutput{}, nil
	}
	ed.DeleteSection(input.ID)
	return nil, ChangeOutput{Changed: true}, nil
}

func (s *Server) handleMoveSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MoveSectionInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if !ed.MoveSection(input.ID, input.BeforeID) {
		return nil, ChangeOutput{}, nil
	}
	sec, err := s.section(input.ID)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, ChangeOutput{Changed: true, Section: sec}, nil
}

func (s *Server) handleEditSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditSectionInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if err := ed.EditSectionText(input.ID, input.Content); err != nil {
		return nil, ChangeOutput{}, err
	}
	sec, err := s.section(input.ID)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, ChangeOutput{Changed: true, Section: sec}, nil
}

func (s *Server) handleRenameSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenameSectionInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	sec, err := s.section(input.ID)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	ed.RenameSection(input.ID, input.Title)
	sec.Title = input.Title
	return nil, ChangeOutput{Changed: true, Section: sec}, nil
}

func (s *Server) handleResizeSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResizeSectionInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if _, err := s.section(input.ID); err != nil {
		return nil, ChangeOutput{}, err
	}
	ed.ResizeSection(input.ID, input.Width, input.Height)
	sec, err := s.section(input.ID)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, ChangeOutput{Changed: true, Section: sec}, nil
}

func (s *Server) handleSetHeader(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetHeaderInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if err := ed.SetHeader(domain.HeaderField(input.Field), input.Value); err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, ChangeOutput{Changed: true}, nil
}

func (s *Server) handleSetTheme(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SetThemeInput,
) (*mcp.CallToolResult, ChangeOutput, error) {
	ed, err := s.editor(ctx)
	if err != nil {
		return nil, ChangeOutput{}, err
	}
	if err := ed.SetTheme(domain.Theme(input.Theme)); err != nil {
		return nil, ChangeOutput{}, err
	}
	return nil, ChangeOutput{Changed: true}, nil
}
