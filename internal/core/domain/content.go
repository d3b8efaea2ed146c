package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content is the payload of a Section. It is a closed sum type: the concrete
// variant is fixed by the section's type. Content values are treated as
// immutable; an edit replaces the whole value.
type Content interface {
	// Kind returns the section type this payload belongs to.
	Kind() SectionType

	isContent()
}

// AppItem is an application badge shown in profile and apps sections.
type AppItem struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// ProfileContent is the payload of a profile section.
type ProfileContent struct {
	Name         string    `json:"name"`
	Tagline      string    `json:"tagline"`
	Email        string    `json:"email"`
	Website      string    `json:"website,omitempty"`
	WebsiteLabel string    `json:"websiteLabel,omitempty"`
	ProfileImage string    `json:"profileImage"`
	Apps         []AppItem `json:"apps"`
	Interests    []string  `json:"interests"`
}

// JobItem is one position in an experience section.
type JobItem struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	Period           string   `json:"period"`
	Current          bool     `json:"current,omitempty"`
	Logo             string   `json:"logo,omitempty"`
	LogoBackground   string   `json:"logoBackground"`
	Responsibilities []string `json:"responsibilities"`
}

// ExperienceContent is the payload of an experience section.
type ExperienceContent struct {
	Years string    `json:"years"`
	Jobs  []JobItem `json:"jobs"`
}

// SkillCategory groups related skills.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// SkillsContent is the payload of a skills section.
type SkillsContent struct {
	Categories []SkillCategory `json:"categories"`
}

// EducationItem is one school or degree.
type EducationItem struct {
	Degree      string `json:"degree"`
	Type        string `json:"type"`
	Institution string `json:"institution,omitempty"`
	Period      string `json:"period"`
	Logo        string `json:"logo,omitempty"`
}

// EducationContent is the payload of an education section.
type EducationContent struct {
	Schools []EducationItem `json:"schools"`
}

// InterestsContent is the payload of an interests section.
type InterestsContent struct {
	Interests []string `json:"interests"`
}

// AppsContent is the payload of an apps section.
type AppsContent struct {
	Apps []AppItem `json:"apps"`
}

// CustomContent is the payload of a free-text section.
type CustomContent struct {
	Text string `json:"content"`
}

// RawContent holds a payload that could not be decoded for its declared
// type. Views render it as a fallback; it round-trips unchanged.
type RawContent struct {
	Type SectionType
	Raw  json.RawMessage
}

func (ProfileContent) Kind() SectionType    { return SectionProfile }
func (ExperienceContent) Kind() SectionType { return SectionExperience }
func (SkillsContent) Kind() SectionType     { return SectionSkills }
func (EducationContent) Kind() SectionType  { return SectionEducation }
func (InterestsContent) Kind() SectionType  { return SectionInterests }
func (AppsContent) Kind() SectionType       { return SectionApps }
func (CustomContent) Kind() SectionType     { return SectionCustom }
func (c RawContent) Kind() SectionType      { return c.Type }

func (ProfileContent) isContent()    {}
func (ExperienceContent) isContent() {}
func (SkillsContent) isContent()     {}
func (EducationContent) isContent()  {}
func (InterestsContent) isContent()  {}
func (AppsContent) isContent()       {}
func (CustomContent) isContent()     {}
func (RawContent) isContent()        {}

// MarshalJSON writes the raw payload back as it was read.
func (c RawContent) MarshalJSON() ([]byte, error) {
	if len(c.Raw) == 0 {
		return []byte("{}"), nil
	}
	return c.Raw, nil
}

// newContent returns a zero payload pointer for the given type.
func newContent(t SectionType) (any, bool) {
	switch t {
	case SectionProfile:
		return &ProfileContent{}, true
	case SectionExperience:
		return &ExperienceContent{}, true
	case SectionSkills:
		return &SkillsContent{}, true
	case SectionEducation:
		return &EducationContent{}, true
	case SectionInterests:
		return &InterestsContent{}, true
	case SectionApps:
		return &AppsContent{}, true
	case SectionCustom:
		return &CustomContent{}, true
	default:
		return nil, false
	}
}

// deref turns the pointer returned by newContent into a Content value.
func deref(v any) Content {
	switch c := v.(type) {
	case *ProfileContent:
		return *c
	case *ExperienceContent:
		return *c
	case *SkillsContent:
		return *c
	case *EducationContent:
		return *c
	case *InterestsContent:
		return *c
	case *AppsContent:
		return *c
	case *CustomContent:
		return *c
	default:
		return nil
	}
}

// DecodeContent leniently decodes a stored payload. Payloads that do not fit
// the declared type, and payloads of unknown types, come back as RawContent.
func DecodeContent(t SectionType, raw json.RawMessage) Content {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultContent(t)
	}
	target, ok := newContent(t)
	if !ok {
		return RawContent{Type: t, Raw: append(json.RawMessage(nil), raw...)}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return RawContent{Type: t, Raw: append(json.RawMessage(nil), raw...)}
	}
	return deref(target)
}

// ParseContent strictly parses a structured edit for the given type.
// Invalid JSON, fields of the wrong shape and unknown fields are rejected
// with ErrInvalidContent.
func ParseContent(t SectionType, text string) (Content, error) {
	target, ok := newContent(t)
	if !ok {
		return nil, fmt.Errorf("%w: section type %q", ErrUnsupportedType, t)
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidContent)
	}
	return deref(target), nil
}

// FormatContent renders a payload as indented JSON for the structured-edit
// view.
func FormatContent(c Content) string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ImageSources returns every image reference embedded in a document, in
// display order, without duplicates.
func ImageSources(doc Document) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(src string) {
		if src == "" || seen[src] {
			return
		}
		seen[src] = true
		out = append(out, src)
	}

	for _, s := range doc.Ordered() {
		switch c := s.Content.(type) {
		case ProfileContent:
			add(c.ProfileImage)
		case ExperienceContent:
			for _, j := range c.Jobs {
				add(j.Logo)
			}
		case EducationContent:
			for _, e := range c.Schools {
				add(e.Logo)
			}
		}
	}
	return out
}
