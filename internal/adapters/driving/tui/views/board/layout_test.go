package board

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

func TestBox_HandleAt(t *testing.T) {
	b := box{id: "x", top: 10, left: 0, width: 20, height: 5}

	tests := []struct {
		name     string
		col, row int
		want     domain.ResizeHandle
		ok       bool
	}{
		{"top-left", 0, 10, domain.HandleTopLeft, true},
		{"top-right", 19, 10, domain.HandleTopRight, true},
		{"bottom-left", 0, 14, domain.HandleBottomLeft, true},
		{"bottom-right", 19, 14, domain.HandleBottomRight, true},
		{"top", 5, 10, domain.HandleTop, true},
		{"bottom", 5, 14, domain.HandleBottom, true},
		{"left", 0, 12, domain.HandleLeft, true},
		{"right", 19, 12, domain.HandleRight, true},
		{"interior", 5, 12, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.handleAt(tt.col, tt.row)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBox_Contains(t *testing.T) {
	b := box{top: 2, left: 0, width: 10, height: 3}

	assert.True(t, b.contains(0, 2))
	assert.True(t, b.contains(9, 4))
	assert.False(t, b.contains(10, 2))
	assert.False(t, b.contains(0, 5))
	assert.False(t, b.contains(0, 1))
}

func TestBox_Measured(t *testing.T) {
	w, h := box{width: 25, height: 7}.measured()

	assert.Equal(t, 200.0, w)
	assert.Equal(t, 112.0, h)
}

func TestBoxCols(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		avail int
		want  int
	}{
		{"unsized fills", 0, 80, 80},
		{"explicit", 240, 80, 30},
		{"rounded", 244, 80, 31},
		{"capped at board", 2000, 80, 80},
		{"never tiny", 0, 5, minBoxCols},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, boxCols(domain.Section{Width: tt.width}, tt.avail))
		})
	}
}

func TestBoxRows(t *testing.T) {
	assert.Equal(t, 0, boxRows(domain.Section{}))
	assert.Equal(t, 10, boxRows(domain.Section{Height: 160}))
	assert.Equal(t, 6, boxRows(domain.Section{Height: 100}))
}

func TestSectionBody(t *testing.T) {
	s := domain.Section{
		Title:   "Skills",
		Content: domain.SkillsContent{Categories: []domain.SkillCategory{{Name: "Go", Skills: []string{"cobra", "bubbletea"}}}},
	}

	assert.Equal(t, []string{"SKILLS", "Go: cobra, bubbletea"}, sectionBody(s))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "", truncate("hello", 0))
	assert.LessOrEqual(t, lipgloss.Width(truncate("日本語テキスト", 5)), 5)
}

func TestFitRows(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, fitRows([]string{"a", "b"}, 0))
	assert.Equal(t, []string{"a"}, fitRows([]string{"a", "b"}, 1))
	assert.Equal(t, []string{"a", "", ""}, fitRows([]string{"a"}, 3))
}
