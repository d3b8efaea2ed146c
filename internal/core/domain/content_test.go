package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent_MatchesType(t *testing.T) {
	for _, st := range SectionTypes() {
		t.Run(string(st), func(t *testing.T) {
			c := DefaultContent(st)
			require.NotNil(t, c)
			assert.Equal(t, st, c.Kind())
		})
	}

	raw := DefaultContent("timeline")
	assert.Equal(t, SectionType("timeline"), raw.Kind())
}

func TestDecodeContent(t *testing.T) {
	tests := []struct {
		name string
		st   SectionType
		raw  string
		want Content
	}{
		{"custom", SectionCustom, `{"content":"hi"}`, CustomContent{Text: "hi"}},
		{"interests", SectionInterests, `{"interests":["a","b"]}`, InterestsContent{Interests: []string{"a", "b"}}},
		{"null uses default", SectionCustom, `null`, DefaultContent(SectionCustom)},
		{"wrong shape kept raw", SectionSkills, `{"categories":"nope"}`, RawContent{Type: SectionSkills, Raw: json.RawMessage(`{"categories":"nope"}`)}},
		{"unknown type kept raw", "timeline", `{"x":1}`, RawContent{Type: "timeline", Raw: json.RawMessage(`{"x":1}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeContent(tt.st, json.RawMessage(tt.raw)))
		})
	}
}

func TestRawContent_RoundTrips(t *testing.T) {
	input := `{"id":"t","type":"timeline","title":"T","order":0,"content":{"events":[1,2,3]}}`

	var s Section
	require.NoError(t, json.Unmarshal([]byte(input), &s))
	out, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, input, string(out))
}

func TestParseContent(t *testing.T) {
	c, err := ParseContent(SectionSkills, `{"categories":[{"name":"Go","skills":["chan"]}]}`)
	require.NoError(t, err)
	assert.Equal(t, SkillsContent{Categories: []SkillCategory{{Name: "Go", Skills: []string{"chan"}}}}, c)

	tests := []struct {
		name string
		st   SectionType
		text string
		err  error
	}{
		{"malformed", SectionCustom, `{`, ErrInvalidContent},
		{"unknown field", SectionCustom, `{"text":"x"}`, ErrInvalidContent},
		{"wrong type", SectionInterests, `{"interests":"x"}`, ErrInvalidContent},
		{"trailing data", SectionCustom, `{"content":"x"} {}`, ErrInvalidContent},
		{"unknown section type", "timeline", `{}`, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseContent(tt.st, tt.text)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestFormatContent_ParsesBack(t *testing.T) {
	for _, st := range SectionTypes() {
		t.Run(string(st), func(t *testing.T) {
			text := FormatContent(DefaultContent(st))

			c, err := ParseContent(st, text)
			require.NoError(t, err)
			assert.Equal(t, DefaultContent(st), c)
		})
	}
}

func TestImageSources(t *testing.T) {
	doc := Document{Sections: []Section{
		{ID: "e", Order: 1, Type: SectionEducation, Content: EducationContent{Schools: []EducationItem{{Logo: "school.png"}, {Logo: ""}}}},
		{ID: "p", Order: 0, Type: SectionProfile, Content: ProfileContent{ProfileImage: "me.png"}},
		{ID: "x", Order: 2, Type: SectionExperience, Content: ExperienceContent{Jobs: []JobItem{{Logo: "me.png"}, {Logo: "job.png"}}}},
	}}

	assert.Equal(t, []string{"me.png", "school.png", "job.png"}, ImageSources(doc))
}
