package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/core/domain"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.Len(t, view.items, len(domain.SectionTypes()))
	assert.Equal(t, 0, view.Selected())
	assert.Nil(t, view.Init())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	assert.NotNil(t, view.styles)
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)
	last := len(view.items) - 1

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for i := 0; i < 20; i++ {
		view.Update(j)
	}
	assert.Equal(t, last, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, last-1, view.Selected())

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for i := 0; i < 20; i++ {
		view.Update(k)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_EnterChoosesType(t *testing.T) {
	view := NewView(nil)
	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	chosen, ok := cmd().(messages.SectionTypeChosen)
	require.True(t, ok)
	assert.Equal(t, domain.SectionSkills, chosen.Type)
}

func TestView_Update_EscReturnsToBoard(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewBoard}, cmd())
}

func TestView_View(t *testing.T) {
	view := NewView(nil)
	assert.Contains(t, view.View(), "Initialising")

	view.SetDimensions(80, 24)
	out := view.View()

	assert.Contains(t, out, "Add section")
	for _, st := range domain.SectionTypes() {
		assert.Contains(t, out, st.Description())
	}
	assert.Contains(t, out, "> ")
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil)
	view.selected = 3

	view.Reset()

	assert.Equal(t, 0, view.Selected())
}
