package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionType(t *testing.T) {
	for _, st := range SectionTypes() {
		got, err := ParseSectionType(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
		assert.NotEqual(t, "Unknown", st.Description())
	}

	_, err := ParseSectionType("gallery")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Equal(t, "Unknown", SectionType("gallery").Description())
}

func TestClampSize(t *testing.T) {
	w, h := ClampSize(199.5, 100)
	assert.Equal(t, float64(MinSectionWidth), w)
	assert.Equal(t, float64(MinSectionHeight), h)

	w, h = ClampSize(640, 480)
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 480.0, h)
}

func TestSection_HasSize(t *testing.T) {
	assert.False(t, Section{}.HasSize())
	assert.False(t, Section{Width: 300}.HasSize())
	assert.True(t, Section{Width: 300, Height: 200}.HasSize())
}

func TestSection_FractionalOrderRounds(t *testing.T) {
	tests := []struct {
		order string
		want  int
	}{
		{"2.7", 3},
		{"1.9", 2},
		{"1.2", 1},
		{"0.5", 1},
		{"-0.4", 0},
		{"4", 4},
	}
	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			var s Section
			require.NoError(t, s.UnmarshalJSON([]byte(`{"id":"x","type":"custom","order":`+tt.order+`}`)))

			assert.Equal(t, tt.want, s.Order)
			assert.Equal(t, DefaultContent(SectionCustom), s.Content)
		})
	}
}

func TestDecodeSnapshot_FractionalOrdersKeepDisplayOrder(t *testing.T) {
	doc, err := DecodeSnapshot([]byte(`{"title":"CV","sections":[
		{"id":"a","type":"custom","order":1.9},
		{"id":"b","type":"custom","order":1.2}
	]}`))
	require.NoError(t, err)

	ordered := doc.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, "b", ordered[0].ID)
	assert.Equal(t, "a", ordered[1].ID)
}

func TestResizeHandle_Axes(t *testing.T) {
	tests := []struct {
		handle ResizeHandle
		x, y   int
	}{
		{HandleTop, 0, -1},
		{HandleRight, 1, 0},
		{HandleBottom, 0, 1},
		{HandleLeft, -1, 0},
		{HandleTopLeft, -1, -1},
		{HandleTopRight, 1, -1},
		{HandleBottomLeft, -1, 1},
		{HandleBottomRight, 1, 1},
	}
	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			x, y := tt.handle.Axes()
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
			assert.True(t, tt.handle.IsValid())
		})
	}
	assert.False(t, ResizeHandle("center").IsValid())
}
