package board

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/services"
)

func testDocument() domain.Document {
	return domain.Document{
		Title:    "Jane Doe",
		Subtitle: "cv-test",
		Theme:    domain.ThemeLight,
		Sections: []domain.Section{
			{ID: "a", Type: domain.SectionCustom, Title: "About", Order: 0, Content: domain.CustomContent{Text: "alpha"}},
			{ID: "b", Type: domain.SectionInterests, Title: "Hobbies", Order: 1,
				Content: domain.InterestsContent{Interests: []string{"chess", "running"}}},
			{ID: "c", Type: domain.SectionCustom, Title: "Contact", Order: 2, Content: domain.CustomContent{Text: "gamma"}},
		},
	}
}

func newTestBoard(t *testing.T, editMode bool) (*View, *services.EditorService) {
	t.Helper()
	ed := services.NewEditorService(testDocument(), services.NewPersistenceService(memory.NewKVStore()), time.Hour)
	t.Cleanup(func() { _ = ed.Close(context.Background()) })
	v := NewView(nil, nil, ed)
	v.SetDimensions(80, 40)
	v.SetEditMode(editMode)
	return v, ed
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func orderedIDs(ed *services.EditorService) []string {
	var ids []string
	for _, s := range ed.Document().Ordered() {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestNewView_RendersSections(t *testing.T) {
	v, _ := newTestBoard(t, false)

	out := v.View()

	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "cv-test")
	assert.Contains(t, out, "[light]")
	assert.Contains(t, out, "ABOUT")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "chess, running")
	require.Len(t, v.boxes, 3)
	assert.Equal(t, 2, v.boxes[0].top)
	assert.Equal(t, v.boxes[0].top+v.boxes[0].height, v.boxes[1].top)
	assert.Equal(t, 80, v.boxes[0].width)
	assert.Nil(t, v.Init())
}

func TestView_EmptyDocument(t *testing.T) {
	ed := services.NewEditorService(domain.Document{Title: "Empty"},
		services.NewPersistenceService(memory.NewKVStore()), time.Hour)
	t.Cleanup(func() { _ = ed.Close(context.Background()) })
	v := NewView(nil, nil, ed)
	v.SetEditMode(true)

	assert.Contains(t, v.View(), "No sections yet.")
	_, ok := v.Selected()
	assert.False(t, ok)

	_, cmd := v.Update(press("m"))
	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
}

func TestView_Navigate(t *testing.T) {
	v, _ := newTestBoard(t, false)

	v.Update(press("j"))
	s, _ := v.Selected()
	assert.Equal(t, "b", s.ID)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	s, _ = v.Selected()
	assert.Equal(t, "c", s.ID)

	v.Update(press("k"))
	v.Update(press("k"))
	v.Update(press("k"))
	s, _ = v.Selected()
	assert.Equal(t, "a", s.ID)
}

func TestView_MutationsLockedOutsideEditMode(t *testing.T) {
	for _, k := range []string{"e", "a", "n", "T", "S", "x", "t", "m", "r"} {
		t.Run(k, func(t *testing.T) {
			v, ed := newTestBoard(t, false)

			_, cmd := v.Update(press(k))

			require.NotNil(t, cmd)
			errMsg, ok := cmd().(messages.ErrorOccurred)
			require.True(t, ok)
			assert.ErrorIs(t, errMsg.Err, domain.ErrEditLocked)
			assert.False(t, v.Busy())
			assert.Len(t, ed.Document().Sections, 3)
		})
	}
}

func TestView_RequestsInEditMode(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"e", messages.EditRequested{SectionID: "a"}},
		{"enter", messages.EditRequested{SectionID: "a"}},
		{"a", messages.ViewChanged{View: messages.ViewPicker}},
		{"n", messages.PromptRequested{Target: messages.PromptRename, SectionID: "a", Value: "About"}},
		{"T", messages.PromptRequested{Target: messages.PromptTitle, Value: "Jane Doe"}},
		{"S", messages.PromptRequested{Target: messages.PromptSubtitle, Value: "cv-test"}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, _ := newTestBoard(t, true)

			_, cmd := v.Update(press(tt.key))

			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_DeleteSelected(t *testing.T) {
	v, ed := newTestBoard(t, true)
	v.Update(press("j"))

	_, cmd := v.Update(press("x"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentChanged{}, cmd())
	assert.Equal(t, []string{"a", "c"}, orderedIDs(ed))
	assert.Len(t, v.boxes, 2)
}

func TestView_ThemeCycles(t *testing.T) {
	v, ed := newTestBoard(t, true)

	v.Update(press("t"))

	assert.Equal(t, domain.ThemeDark, ed.Document().Theme)
	assert.Contains(t, v.View(), "[dark]")
}

func TestView_KeyboardMove(t *testing.T) {
	v, ed := newTestBoard(t, true)
	v.Update(press("j"))
	v.Update(press("j"))

	v.Update(press("m"))
	assert.True(t, v.Busy())
	assert.Equal(t, "moving Contact", v.Gesture())

	v.Update(press("k"))
	assert.Equal(t, "moving Contact before Hobbies", v.Gesture())
	v.Update(press("k"))
	assert.Equal(t, "moving Contact before About", v.Gesture())

	// cannot go past the first section
	v.Update(press("k"))
	assert.Equal(t, "moving Contact before About", v.Gesture())

	_, cmd := v.Update(press("enter"))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentChanged{}, cmd())
	assert.Equal(t, []string{"c", "a", "b"}, orderedIDs(ed))
	assert.False(t, v.Busy())
	s, _ := v.Selected()
	assert.Equal(t, "c", s.ID)
}

func TestView_KeyboardMoveCancelled(t *testing.T) {
	v, ed := newTestBoard(t, true)
	v.Update(press("j"))
	v.Update(press("m"))
	v.Update(press("j"))

	_, cmd := v.Update(press("esc"))

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(ed))
	s, _ := v.Selected()
	assert.Equal(t, "b", s.ID)
}

func TestView_KeyboardMoveDropWithoutTarget(t *testing.T) {
	v, ed := newTestBoard(t, true)
	v.Update(press("m"))

	_, cmd := v.Update(press("enter"))

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(ed))
}

func TestView_MouseDragReorders(t *testing.T) {
	v, ed := newTestBoard(t, true)
	a, c := v.boxes[0], v.boxes[2]

	v.Update(mouse(tea.MouseActionPress, 3, c.top+1))
	assert.True(t, v.Busy())

	v.Update(mouse(tea.MouseActionMotion, 3, a.top+1))
	assert.Equal(t, "moving Contact before About", v.Gesture())

	_, cmd := v.Update(mouse(tea.MouseActionRelease, 3, a.top+1))

	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentChanged{}, cmd())
	assert.Equal(t, []string{"c", "a", "b"}, orderedIDs(ed))
	assert.False(t, v.Busy())
}

func TestView_MouseDropOnSelfIsNoop(t *testing.T) {
	v, ed := newTestBoard(t, true)
	b := v.boxes[1]

	v.Update(mouse(tea.MouseActionPress, 3, b.top+1))
	_, cmd := v.Update(mouse(tea.MouseActionRelease, 4, b.top+1))

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(ed))
}

func TestView_MouseDropOutsideCancels(t *testing.T) {
	v, ed := newTestBoard(t, true)
	c := v.boxes[2]

	v.Update(mouse(tea.MouseActionPress, 3, c.top+1))
	_, cmd := v.Update(mouse(tea.MouseActionRelease, 3, c.top+c.height+5))

	assert.Nil(t, cmd)
	assert.False(t, v.Busy())
	assert.Equal(t, []string{"a", "b", "c"}, orderedIDs(ed))
}

func TestView_MousePressOutsideEditModeOnlySelects(t *testing.T) {
	v, _ := newTestBoard(t, false)
	c := v.boxes[2]

	v.Update(mouse(tea.MouseActionPress, c.width-1, c.top+c.height-1))

	assert.False(t, v.Busy())
	s, _ := v.Selected()
	assert.Equal(t, "c", s.ID)
}

func TestView_MouseResizeFromCorner(t *testing.T) {
	v, ed := newTestBoard(t, true)
	a := v.boxes[0]
	mw, mh := a.measured()
	x, y := a.left+a.width-1, a.top+a.height-1

	v.Update(mouse(tea.MouseActionPress, x, y))
	require.True(t, v.Busy())

	_, cmd := v.Update(mouse(tea.MouseActionMotion, x+10, y+2))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.DocumentChanged{}, cmd())

	s, _ := ed.Document().Section("a")
	wantW, wantH := domain.ClampSize(mw+10*CellWidth, mh+2*CellHeight)
	assert.Equal(t, wantW, s.Width)
	assert.Equal(t, wantH, s.Height)
	assert.Contains(t, v.Gesture(), "resizing About to")

	// moving back to the origin restores the measured size, floored
	v.Update(mouse(tea.MouseActionMotion, x, y))
	s, _ = ed.Document().Section("a")
	wantW, wantH = domain.ClampSize(mw, mh)
	assert.Equal(t, wantW, s.Width)
	assert.Equal(t, wantH, s.Height)

	v.Update(mouse(tea.MouseActionRelease, x, y))
	assert.False(t, v.Busy())
}

func TestView_MouseResizeLeftEdgeShrinksWidth(t *testing.T) {
	v, ed := newTestBoard(t, true)
	ed.ResizeSection("b", 400, 200)
	v.Refresh()
	b := v.boxes[1]

	v.Update(mouse(tea.MouseActionPress, b.left, b.top+2))
	v.Update(mouse(tea.MouseActionMotion, b.left+5, b.top+10))

	s, _ := ed.Document().Section("b")
	assert.Equal(t, 400-5*CellWidth, s.Width)
	assert.Equal(t, 200.0, s.Height)
}

func TestView_KeyboardResize(t *testing.T) {
	v, ed := newTestBoard(t, true)
	ed.ResizeSection("a", 300, 200)
	v.Refresh()

	v.Update(press("r"))
	require.True(t, v.Busy())

	v.Update(press("l"))
	v.Update(tea.KeyMsg{Type: tea.KeyRight})
	v.Update(press("j"))

	s, _ := ed.Document().Section("a")
	assert.Equal(t, 300+2*resizeStepX, s.Width)
	assert.Equal(t, 200+resizeStepY, s.Height)

	for i := 0; i < 20; i++ {
		v.Update(press("h"))
	}
	s, _ = ed.Document().Section("a")
	assert.Equal(t, float64(domain.MinSectionWidth), s.Width)

	v.Update(press("enter"))
	assert.False(t, v.Busy())
}

func TestView_LeavingEditModeCancelsGestures(t *testing.T) {
	v, _ := newTestBoard(t, true)
	v.Update(press("m"))
	require.True(t, v.Busy())

	v.SetEditMode(false)

	assert.False(t, v.Busy())
	assert.False(t, v.EditMode())
	assert.Equal(t, "", v.Gesture())
}

func TestView_WheelScrolls(t *testing.T) {
	v, _ := newTestBoard(t, false)
	v.SetDimensions(80, 5)

	v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, wheelRows, v.vp.YOffset)

	v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, v.vp.YOffset)
}

func TestView_SelectionScrollsIntoView(t *testing.T) {
	v, _ := newTestBoard(t, false)
	v.SetDimensions(80, 5)

	v.Update(press("j"))
	v.Update(press("j"))

	c := v.boxes[2]
	assert.Equal(t, c.top+c.height-5, v.vp.YOffset)
}

func TestView_DocumentChangedRerenders(t *testing.T) {
	v, ed := newTestBoard(t, false)
	ed.RenameSection("a", "Summary")

	v.Update(messages.DocumentChanged{})

	assert.Contains(t, v.View(), "SUMMARY")
}

func TestView_ExplicitSizeShapesBox(t *testing.T) {
	v, ed := newTestBoard(t, false)
	ed.ResizeSection("a", 240, 160)

	v.Refresh()

	a := v.boxes[0]
	assert.Equal(t, 30, a.width)
	assert.Equal(t, 10, a.height)
}
