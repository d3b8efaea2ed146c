package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

func TestNewSection_AllTypes(t *testing.T) {
	for _, st := range domain.SectionTypes() {
		t.Run(string(st), func(t *testing.T) {
			s, err := NewSection(st, "", 3)

			require.NoError(t, err)
			assert.NotEmpty(t, s.ID)
			assert.Equal(t, st, s.Type)
			assert.Equal(t, st.Description(), s.Title)
			assert.Equal(t, 3, s.Order)
			require.NotNil(t, s.Content)
			assert.Equal(t, st, s.Content.Kind())
			assert.False(t, s.HasSize())
		})
	}
}

func TestNewSection_KeepsTitle(t *testing.T) {
	s, err := NewSection(domain.SectionCustom, "Side projects", 0)

	require.NoError(t, err)
	assert.Equal(t, "Side projects", s.Title)
}

func TestNewSection_UnknownType(t *testing.T) {
	_, err := NewSection(domain.SectionType("portfolio"), "x", 0)

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNewSection_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		s, err := NewSection(domain.SectionSkills, "", i)
		require.NoError(t, err)
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	assert.Equal(t, "Standard version", doc.Title)
	assert.Equal(t, domain.ThemeLight, doc.Theme)
	require.Len(t, doc.Sections, 5)
	for i, s := range doc.Sections {
		assert.Equal(t, i, s.Order)
		assert.NotEmpty(t, s.ID)
	}
	assert.NotEqual(t, doc.Sections[0].ID, DefaultDocument().Sections[0].ID)
}

func TestNextOrder(t *testing.T) {
	doc := domain.Document{Sections: []domain.Section{
		{ID: "a", Order: 0},
		{ID: "b", Order: 7},
	}}

	assert.Equal(t, 2, nextOrder(doc))
	assert.Equal(t, 0, nextOrder(domain.Document{}))
}
