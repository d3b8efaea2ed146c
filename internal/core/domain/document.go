package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Document is the whole CV: header fields, sections and theme.
// Operations on a Document return a new value; the receiver is never
// modified, so concurrent readers never observe a half-applied change.
type Document struct {
	// Title is the main heading of the CV.
	Title string

	// Subtitle is shown under the title.
	Subtitle string

	// Sections holds the content blocks. Slice position is the tie-breaker
	// when two sections share an Order.
	Sections []Section

	// Theme selects the colour palette.
	Theme Theme

	// extras holds unrecognised JSON fields so they survive a round trip.
	extras map[string]json.RawMessage
}

// HeaderField names an editable header field.
type HeaderField string

// Editable header fields.
const (
	HeaderTitle    HeaderField = "title"
	HeaderSubtitle HeaderField = "subtitle"
)

// IsValid returns true if the header field is recognised.
func (f HeaderField) IsValid() bool {
	return f == HeaderTitle || f == HeaderSubtitle
}

// OrderAssignment sets the order of one section.
type OrderAssignment struct {
	ID    string
	Order int
}

// Clone returns a copy whose Sections slice is not shared with d.
func (d Document) Clone() Document {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	copy(out.Sections, d.Sections)
	return out
}

// Ordered returns the sections in display order: ascending Order with ties
// broken by slice position.
func (d Document) Ordered() []Section {
	out := make([]Section, len(d.Sections))
	copy(out, d.Sections)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

// Section returns the section with the given ID.
func (d Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// indexOf returns the slice index of the section with the given ID, or -1.
func (d Document) indexOf(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate checks the structural invariants a loaded document must hold:
// every section has an ID and no ID appears twice.
func (d Document) Validate() error {
	seen := make(map[string]bool, len(d.Sections))
	for i, s := range d.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalidInput, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalidInput, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// AddSection appends a section. A section whose ID is already present is
// ignored so IDs stay unique.
func AddSection(d Document, s Section) Document {
	if s.ID == "" || d.indexOf(s.ID) >= 0 {
		return d
	}
	out := d.Clone()
	out.Sections = append(out.Sections, s)
	return out
}

// DeleteSection removes a section. Unknown IDs are a no-op.
func DeleteSection(d Document, id string) Document {
	idx := d.indexOf(id)
	if idx < 0 {
		return d
	}
	out := d
	out.Sections = make([]Section, 0, len(d.Sections)-1)
	out.Sections = append(out.Sections, d.Sections[:idx]...)
	out.Sections = append(out.Sections, d.Sections[idx+1:]...)
	return out
}

// EditSection replaces a section's content. Unknown IDs, nil content and
// content of a different type are a no-op.
func EditSection(d Document, id string, c Content) Document {
	idx := d.indexOf(id)
	if idx < 0 || c == nil || c.Kind() != d.Sections[idx].Type {
		return d
	}
	out := d.Clone()
	out.Sections[idx].Content = c
	return out
}

// RenameSection replaces a section's title. Unknown IDs are a no-op.
func RenameSection(d Document, id, title string) Document {
	idx := d.indexOf(id)
	if idx < 0 {
		return d
	}
	out := d.Clone()
	out.Sections[idx].Title = title
	return out
}

// ResizeSection sets a section's explicit size, clamped to the minimum
// floor. Unknown IDs are a no-op.
func ResizeSection(d Document, id string, width, height float64) Document {
	idx := d.indexOf(id)
	if idx < 0 {
		return d
	}
	width, height = ClampSize(width, height)
	out := d.Clone()
	out.Sections[idx].Width = width
	out.Sections[idx].Height = height
	return out
}

// Reorder applies all assignments at once. Sections not named keep their
// previous order; assignments for unknown IDs are ignored.
func Reorder(d Document, assignments []OrderAssignment) Document {
	if len(assignments) == 0 {
		return d
	}
	orders := make(map[string]int, len(assignments))
	for _, a := range assignments {
		orders[a.ID] = a.Order
	}
	out := d.Clone()
	for i := range out.Sections {
		if o, ok := orders[out.Sections[i].ID]; ok {
			out.Sections[i].Order = o
		}
	}
	return out
}

// SetHeader replaces the title or subtitle. Unknown fields are a no-op.
func SetHeader(d Document, field HeaderField, value string) Document {
	out := d.Clone()
	switch field {
	case HeaderTitle:
		out.Title = value
	case HeaderSubtitle:
		out.Subtitle = value
	default:
		return d
	}
	return out
}

// SetTheme replaces the theme.
func SetTheme(d Document, theme Theme) Document {
	out := d.Clone()
	out.Theme = theme
	return out
}

var documentFields = []string{"title", "subtitle", "sections", "theme"}

// MarshalJSON encodes the document in the persisted wire shape.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extras)+len(documentFields))
	for k, v := range d.extras {
		out[k] = v
	}
	out["title"] = d.Title
	out["subtitle"] = d.Subtitle
	sections := d.Sections
	if sections == nil {
		sections = []Section{}
	}
	out["sections"] = sections
	if d.Theme != "" {
		out["theme"] = d.Theme
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a document, keeping unknown top-level fields.
func (d *Document) UnmarshalJSON(data []byte) error {
	var wire struct {
		Title    string    `json:"title"`
		Subtitle string    `json:"subtitle"`
		Sections []Section `json:"sections"`
		Theme    Theme     `json:"theme"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	extras, err := unknownFields(data, documentFields)
	if err != nil {
		return err
	}
	*d = Document{
		Title:    wire.Title,
		Subtitle: wire.Subtitle,
		Sections: wire.Sections,
		Theme:    wire.Theme,
		extras:   extras,
	}
	return nil
}
