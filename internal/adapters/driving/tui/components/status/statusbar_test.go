package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateViewing, bar.State())
	assert.Equal(t, SaveIdle, bar.Save())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_View_Modes(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		save     SaveState
		message  string
		contains []string
	}{
		{"viewing", StateViewing, SaveIdle, "", []string{"VIEW", "login"}},
		{"editing saved", StateEditing, SaveDone, "", []string{"EDIT", "saved", "move"}},
		{"editing pending", StateEditing, SavePending, "", []string{"saving..."}},
		{"save failed", StateEditing, SaveFailed, "", []string{"save failed"}},
		{"gesture", StateGesture, SaveIdle, "moving Skills", []string{"EDIT", "moving Skills", "esc"}},
		{"exporting", StateExporting, SaveIdle, "", []string{"Generating PDF..."}},
		{"error", StateError, SaveDone, "boom", []string{"Error: boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			bar.SetState(tt.state)
			bar.SetSave(tt.save)
			bar.SetMessage(tt.message)

			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestStatusBar_View_FillsWidth(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(150)

	assert.Equal(t, 150, lipgloss.Width(bar.View()))
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("oops")

	bar.Clear()

	assert.Equal(t, StateViewing, bar.State())
	assert.Equal(t, "", bar.Message())

	bar.SetState(StateEditing)
	bar.SetMessage("hi")
	bar.Clear()
	assert.Equal(t, StateEditing, bar.State())
}

func TestStatusBar_SetStyles(t *testing.T) {
	bar := NewBar(nil, nil)
	st := styles.NewStyles(styles.DefaultTheme())

	bar.SetStyles(st)
	assert.Same(t, st, bar.styles)

	bar.SetStyles(nil)
	assert.Same(t, st, bar.styles)
}
