package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() Document {
	return Document{
		Title: "CV",
		Theme: ThemeLight,
		Sections: []Section{
			{ID: "a", Type: SectionCustom, Title: "A", Order: 0, Content: CustomContent{Text: "a"}},
			{ID: "b", Type: SectionInterests, Title: "B", Order: 1, Content: InterestsContent{Interests: []string{"x"}}},
			{ID: "c", Type: SectionCustom, Title: "C", Order: 2, Content: CustomContent{Text: "c"}},
		},
	}
}

func TestDocument_Ordered_StableOnTies(t *testing.T) {
	doc := Document{Sections: []Section{
		{ID: "x", Order: 1},
		{ID: "y", Order: 0},
		{ID: "z", Order: 1},
	}}

	var ids []string
	for _, s := range doc.Ordered() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"y", "x", "z"}, ids)
	assert.Equal(t, "x", doc.Sections[0].ID)
}

func TestAddSection(t *testing.T) {
	doc := testDocument()

	out := AddSection(doc, Section{ID: "d", Type: SectionCustom, Order: 3})
	assert.Len(t, out.Sections, 4)
	assert.Len(t, doc.Sections, 3)

	assert.Len(t, AddSection(doc, Section{ID: "a"}).Sections, 3)
	assert.Len(t, AddSection(doc, Section{}).Sections, 3)
}

func TestDeleteSection(t *testing.T) {
	doc := testDocument()

	out := DeleteSection(doc, "b")

	require.Len(t, out.Sections, 2)
	assert.Equal(t, "a", out.Sections[0].ID)
	assert.Equal(t, "c", out.Sections[1].ID)
	assert.Len(t, doc.Sections, 3)
	assert.Equal(t, doc, DeleteSection(doc, "missing"))
}

func TestEditSection(t *testing.T) {
	doc := testDocument()

	out := EditSection(doc, "a", CustomContent{Text: "new"})
	s, _ := out.Section("a")
	assert.Equal(t, CustomContent{Text: "new"}, s.Content)
	orig, _ := doc.Section("a")
	assert.Equal(t, CustomContent{Text: "a"}, orig.Content)

	tests := []struct {
		name    string
		id      string
		content Content
	}{
		{"unknown id", "zz", CustomContent{Text: "x"}},
		{"nil content", "a", nil},
		{"kind mismatch", "a", InterestsContent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, doc, EditSection(doc, tt.id, tt.content))
		})
	}
}

func TestRenameSection(t *testing.T) {
	out := RenameSection(testDocument(), "c", "Renamed")

	s, _ := out.Section("c")
	assert.Equal(t, "Renamed", s.Title)
}

func TestResizeSection_Clamps(t *testing.T) {
	tests := []struct {
		name  string
		w, h  float64
		wantW float64
		wantH float64
	}{
		{"above floor", 420, 260, 420, 260},
		{"below floor", 10, 20, MinSectionWidth, MinSectionHeight},
		{"width only below", 150, 300, MinSectionWidth, 300},
		{"negative", -50, -50, MinSectionWidth, MinSectionHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ResizeSection(testDocument(), "a", tt.w, tt.h)

			s, _ := out.Section("a")
			assert.Equal(t, tt.wantW, s.Width)
			assert.Equal(t, tt.wantH, s.Height)
			assert.True(t, s.HasSize())
		})
	}
}

func TestResizeSection_UnknownID(t *testing.T) {
	doc := testDocument()
	assert.Equal(t, doc, ResizeSection(doc, "nope", 300, 300))
}

func TestReorder(t *testing.T) {
	doc := testDocument()

	out := Reorder(doc, []OrderAssignment{{ID: "c", Order: 0}, {ID: "a", Order: 2}, {ID: "ghost", Order: 9}})

	var ids []string
	for _, s := range out.Ordered() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
	assert.Equal(t, doc, Reorder(doc, nil))
}

func TestSetHeaderAndTheme(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, "T", SetHeader(doc, HeaderTitle, "T").Title)
	assert.Equal(t, "S", SetHeader(doc, HeaderSubtitle, "S").Subtitle)
	assert.Equal(t, doc, SetHeader(doc, HeaderField("footer"), "x"))
	assert.Equal(t, ThemeRed, SetTheme(doc, ThemeRed).Theme)
	assert.Equal(t, ThemeLight, doc.Theme)
}

func TestDocument_JSONRoundTrip_KeepsUnknownFields(t *testing.T) {
	input := `{
		"title": "CV",
		"subtitle": "sub",
		"theme": "blue",
		"lastEditor": "someone",
		"sections": [
			{"id": "a", "type": "custom", "title": "A", "order": 0, "content": {"content": "txt"}, "pinned": true}
		]
	}`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Equal(t, "someone", generic["lastEditor"])
	sections := generic["sections"].([]any)
	first := sections[0].(map[string]any)
	assert.Equal(t, true, first["pinned"])
	assert.NotContains(t, first, "width")

	var again Document
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, doc, again)
}

func TestDocument_MarshalEmptySections(t *testing.T) {
	out, err := json.Marshal(Document{Title: "x"})

	require.NoError(t, err)
	assert.Contains(t, string(out), `"sections":[]`)
	assert.NotContains(t, string(out), `"theme"`)
}

func TestDocument_RejectsNonObject(t *testing.T) {
	var doc Document
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &doc))
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name     string
		sections []Section
		wantErr  bool
	}{
		{"empty", nil, false},
		{"unique", []Section{{ID: "a"}, {ID: "b"}}, false},
		{"missing id", []Section{{ID: "a"}, {}}, true},
		{"duplicate", []Section{{ID: "a"}, {ID: "a"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Document{Title: "x", Sections: tt.sections}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeSnapshot_RejectsDuplicateIDs(t *testing.T) {
	_, err := DecodeSnapshot([]byte(`{"title":"A","sections":[{"id":"x","type":"custom"},{"id":"x","type":"custom"}]}`))
	assert.ErrorIs(t, err, ErrInvalidImport)
	assert.Contains(t, err.Error(), "duplicate section id")
}
