package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Minimum explicit section dimensions in pixels.
// Resizes below the floor are clamped at the point of mutation.
const (
	MinSectionWidth  = 200
	MinSectionHeight = 100
)

// SectionType identifies the shape of a section's content payload.
type SectionType string

// Available section types.
const (
	SectionProfile    SectionType = "profile"
	SectionExperience SectionType = "experience"
	SectionSkills     SectionType = "skills"
	SectionEducation  SectionType = "education"
	SectionInterests  SectionType = "interests"
	SectionApps       SectionType = "apps"
	SectionCustom     SectionType = "custom"
)

// SectionTypes returns every known section type in menu order.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionProfile,
		SectionExperience,
		SectionSkills,
		SectionEducation,
		SectionInterests,
		SectionApps,
		SectionCustom,
	}
}

// IsValid returns true if the section type is recognised.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionProfile, SectionExperience, SectionSkills, SectionEducation,
		SectionInterests, SectionApps, SectionCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SectionType) String() string {
	return string(t)
}

// Description returns a human-readable label for the section type.
func (t SectionType) Description() string {
	switch t {
	case SectionProfile:
		return "Profile"
	case SectionExperience:
		return "Experience"
	case SectionSkills:
		return "Skills"
	case SectionEducation:
		return "Education"
	case SectionInterests:
		return "Interests"
	case SectionApps:
		return "Apps"
	case SectionCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// ParseSectionType converts a string to a SectionType.
func ParseSectionType(s string) (SectionType, error) {
	t := SectionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: section type %q", ErrUnsupportedType, s)
	}
	return t, nil
}

// Section is one content block of the CV.
type Section struct {
	// ID is unique within a Document for the section's lifetime.
	ID string

	// Type determines the shape of Content.
	Type SectionType

	// Title is the display heading.
	Title string

	// Content is the typed payload. It is replaced wholesale on edit.
	Content Content

	// Order positions the section; ascending stable sort gives display order.
	Order int

	// Width and Height are the last explicit resize in pixels.
	// Zero means no explicit size has been set.
	Width  float64
	Height float64

	// extras holds unrecognised JSON fields so they survive a round trip.
	extras map[string]json.RawMessage
}

// HasSize reports whether the section has been explicitly resized.
func (s Section) HasSize() bool {
	return s.Width > 0 && s.Height > 0
}

// ClampSize enforces the minimum section dimensions on each axis.
func ClampSize(width, height float64) (float64, float64) {
	if width < MinSectionWidth {
		width = MinSectionWidth
	}
	if height < MinSectionHeight {
		height = MinSectionHeight
	}
	return width, height
}

var sectionFields = []string{"id", "type", "title", "content", "order", "width", "height"}

// MarshalJSON encodes the section in the persisted wire shape.
func (s Section) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.extras)+len(sectionFields))
	for k, v := range s.extras {
		out[k] = v
	}

	out["id"] = s.ID
	out["type"] = s.Type
	out["title"] = s.Title
	out["order"] = s.Order
	if s.Content != nil {
		out["content"] = s.Content
	} else {
		out["content"] = DefaultContent(s.Type)
	}
	if s.Width > 0 {
		out["width"] = s.Width
	}
	if s.Height > 0 {
		out["height"] = s.Height
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a section. Content that does not match its declared
// type is kept as RawContent rather than failing the whole document.
// A fractional order is rounded to the nearest integer.
func (s *Section) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID      string          `json:"id"`
		Type    SectionType     `json:"type"`
		Title   string          `json:"title"`
		Content json.RawMessage `json:"content"`
		Order   float64         `json:"order"`
		Width   float64         `json:"width"`
		Height  float64         `json:"height"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	extras, err := unknownFields(data, sectionFields)
	if err != nil {
		return err
	}

	*s = Section{
		ID:      wire.ID,
		Type:    wire.Type,
		Title:   wire.Title,
		Content: DecodeContent(wire.Type, wire.Content),
		Order:   int(math.Round(wire.Order)),
		Width:   wire.Width,
		Height:  wire.Height,
		extras:  extras,
	}
	return nil
}

// unknownFields returns the members of a JSON object that are not in known.
func unknownFields(data []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
