package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// NewSectionID allocates a section identifier that is unique across the
// lifetime of any document.
func NewSectionID() string {
	return uuid.NewString()
}

// NewSection builds a section of the given type populated with its example
// content. An empty title falls back to the type label.
func NewSection(sectionType domain.SectionType, title string, order int) (domain.Section, error) {
	if !sectionType.IsValid() {
		return domain.Section{}, fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, sectionType)
	}
	if title == "" {
		title = sectionType.Description()
	}
	return domain.Section{
		ID:      NewSectionID(),
		Type:    sectionType,
		Title:   title,
		Content: domain.DefaultContent(sectionType),
		Order:   order,
	}, nil
}

// DefaultDocument returns the built-in CV with freshly allocated IDs.
func DefaultDocument() domain.Document {
	return domain.DefaultDocument(NewSectionID)
}

// nextOrder returns the order of a section appended to doc: the current
// section count.
func nextOrder(doc domain.Document) int {
	return len(doc.Sections)
}
