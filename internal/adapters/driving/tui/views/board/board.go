// Package board provides the main CV view: a column of section boxes that
// can be selected, edited, dragged into a new order and resized.
package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/core/services"
)

// Keyboard resize steps in pixels.
const (
	resizeStepX = 4 * CellWidth
	resizeStepY = CellHeight
	wheelRows   = 3
)

// View is the board of section boxes.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	editor  driving.EditorService
	reorder *services.ReorderController
	resize  *services.ResizeController

	vp       viewport.Model
	boxes    []box
	selected int
	editMode bool

	// keyX and keyY are the keyboard resize pointer, relative to the
	// gesture origin.
	keyX float64
	keyY float64

	width  int
	height int
	ready  bool
}

// NewView creates a new board view.
func NewView(s *styles.Styles, km *keymap.KeyMap, editor driving.EditorService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		styles:  s,
		keymap:  km,
		editor:  editor,
		reorder: services.NewReorderController(),
		resize:  services.NewResizeController(),
		vp:      viewport.New(80, 23),
		width:   80,
		height:  23,
	}
	v.render()
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetEditMode turns gestures on or off. Turning edit mode off abandons any
// gesture in progress.
func (v *View) SetEditMode(on bool) {
	v.editMode = on
	if !on {
		v.reorder.DragEnd()
		v.resize.End()
	}
	v.render()
}

// EditMode reports whether gestures are allowed.
func (v *View) EditMode() bool {
	return v.editMode
}

// SetStyles swaps the styles, e.g. after a theme change.
func (v *View) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	v.styles = s
	v.render()
}

// Refresh redraws the board from the editor's current document.
func (v *View) Refresh() {
	v.render()
}

// Update handles messages for the board view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg.String())

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case messages.DocumentChanged:
		v.render()
		return v, nil
	}
	return v, nil
}

// handleKey routes a key to the active gesture or to the idle bindings.
func (v *View) handleKey(k string) (*View, tea.Cmd) {
	if v.resize.Active() {
		return v.resizeKey(k)
	}
	if v.reorder.State() == services.ReorderDragging {
		return v.moveKey(k)
	}

	km := v.keymap
	doc := v.editor.Document()
	current, hasCurrent := v.Selected()

	switch {
	case keymap.Matches(k, km.Up):
		v.selectIndex(v.selected - 1)
	case keymap.Matches(k, km.Down):
		v.selectIndex(v.selected + 1)

	case keymap.Matches(k, km.Edit):
		if !hasCurrent {
			return v, nil
		}
		return v, v.guard(messages.EditRequested{SectionID: current.ID})

	case keymap.Matches(k, km.Add):
		return v, v.guard(messages.ViewChanged{View: messages.ViewPicker})

	case keymap.Matches(k, km.Rename):
		if !hasCurrent {
			return v, nil
		}
		return v, v.guard(messages.PromptRequested{
			Target: messages.PromptRename, SectionID: current.ID, Value: current.Title,
		})

	case keymap.Matches(k, km.Title):
		return v, v.guard(messages.PromptRequested{Target: messages.PromptTitle, Value: doc.Title})

	case keymap.Matches(k, km.Subtitle):
		return v, v.guard(messages.PromptRequested{Target: messages.PromptSubtitle, Value: doc.Subtitle})

	case keymap.Matches(k, km.Delete):
		if !hasCurrent {
			return v, nil
		}
		if !v.editMode {
			return v, locked
		}
		v.editor.DeleteSection(current.ID)
		return v, v.changed()

	case keymap.Matches(k, km.Theme):
		if !v.editMode {
			return v, locked
		}
		if err := v.editor.SetTheme(doc.Theme.Next()); err != nil {
			return v, emit(messages.ErrorOccurred{Err: err})
		}
		return v, v.changed()

	case keymap.Matches(k, km.Move):
		if !hasCurrent {
			return v, nil
		}
		if !v.editMode {
			return v, locked
		}
		v.reorder.Handle(domain.DragEvent{Phase: domain.DragStart, SectionID: current.ID}, doc, v.editMode)
		v.render()

	case keymap.Matches(k, km.Resize):
		if !hasCurrent || v.selected >= len(v.boxes) {
			return v, nil
		}
		if !v.editMode {
			return v, locked
		}
		mw, mh := v.boxes[v.selected].measured()
		v.keyX, v.keyY = 0, 0
		v.resize.Start(current, domain.HandleBottomRight, 0, 0, mw, mh, v.editMode)
		v.render()
	}
	return v, nil
}

// moveKey drives a keyboard reorder: up and down pick the section to drop
// before, enter drops, esc cancels.
func (v *View) moveKey(k string) (*View, tea.Cmd) {
	km := v.keymap
	doc := v.editor.Document()
	sections := doc.Ordered()

	switch {
	case keymap.Matches(k, km.Up), keymap.Matches(k, km.Down):
		idx := indexOf(sections, v.reorder.Over())
		if idx < 0 {
			idx = indexOf(sections, v.reorder.Source())
		}
		if keymap.Matches(k, km.Up) {
			idx--
		} else {
			idx++
		}
		if idx < 0 || idx >= len(sections) {
			return v, nil
		}
		v.reorder.Handle(domain.DragEvent{Phase: domain.DragOver, SectionID: sections[idx].ID}, doc, v.editMode)
		v.selected = idx

	case keymap.Matches(k, km.Select):
		return v, v.drop(v.reorder.Over())

	case keymap.Matches(k, km.Back):
		source := v.reorder.Source()
		v.reorder.Handle(domain.DragEvent{Phase: domain.DragEnd}, doc, v.editMode)
		v.selectIndex(indexOf(sections, source))
	}
	v.render()
	return v, nil
}

// resizeKey moves the keyboard pointer and applies the resulting size.
func (v *View) resizeKey(k string) (*View, tea.Cmd) {
	km := v.keymap
	switch {
	case keymap.Matches(k, km.Left):
		v.keyX -= resizeStepX
	case keymap.Matches(k, km.Right):
		v.keyX += resizeStepX
	case keymap.Matches(k, km.Up):
		v.keyY -= resizeStepY
	case keymap.Matches(k, km.Down):
		v.keyY += resizeStepY
	case keymap.Matches(k, km.Select), keymap.Matches(k, km.Back):
		v.resize.Handle(domain.PointerEvent{Phase: domain.PointerUp})
		v.render()
		return v, nil
	default:
		return v, nil
	}
	return v, v.applyResize(v.resize.Handle(domain.PointerEvent{
		Phase: domain.PointerMove, X: v.keyX, Y: v.keyY,
	}))
}

// handleMouse maps mouse events onto drag and resize gestures. Pressing a
// box border grabs the matching resize handle; pressing inside a box
// starts a drag.
func (v *View) handleMouse(msg tea.MouseMsg) (*View, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.vp.SetYOffset(v.vp.YOffset - wheelRows)
		return v, nil
	case tea.MouseButtonWheelDown:
		v.vp.SetYOffset(v.vp.YOffset + wheelRows)
		return v, nil
	}

	col, row := msg.X, msg.Y+v.vp.YOffset
	px, py := float64(col)*CellWidth, float64(row)*CellHeight
	doc := v.editor.Document()
	hit := v.boxAt(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || hit < 0 {
			return v, nil
		}
		v.selected = hit
		if v.editMode {
			b := v.boxes[hit]
			s, _ := doc.Section(b.id)
			if h, ok := b.handleAt(col, row); ok {
				mw, mh := b.measured()
				v.resize.Start(s, h, px, py, mw, mh, v.editMode)
			} else {
				v.reorder.Handle(domain.DragEvent{Phase: domain.DragStart, SectionID: b.id}, doc, v.editMode)
			}
		}
		v.render()

	case tea.MouseActionMotion:
		if v.resize.Active() {
			return v, v.applyResize(v.resize.Handle(domain.PointerEvent{Phase: domain.PointerMove, X: px, Y: py}))
		}
		if v.reorder.State() == services.ReorderDragging {
			over := ""
			if hit >= 0 {
				over = v.boxes[hit].id
			}
			v.reorder.Handle(domain.DragEvent{Phase: domain.DragOver, SectionID: over}, doc, v.editMode)
			v.render()
		}

	case tea.MouseActionRelease:
		if v.resize.Active() {
			v.resize.Handle(domain.PointerEvent{Phase: domain.PointerUp, X: px, Y: py})
			v.render()
			return v, nil
		}
		if v.reorder.State() == services.ReorderDragging {
			if hit < 0 {
				v.reorder.Handle(domain.DragEvent{Phase: domain.DragEnd}, doc, v.editMode)
				v.render()
				return v, nil
			}
			return v, v.drop(v.boxes[hit].id)
		}
	}
	return v, nil
}

// drop finishes a reorder on target and applies the new order.
func (v *View) drop(target string) tea.Cmd {
	source := v.reorder.Source()
	doc := v.editor.Document()
	assignments, ok := v.reorder.Handle(domain.DragEvent{Phase: domain.DragDrop, SectionID: target}, doc, v.editMode)
	if !ok {
		v.render()
		return nil
	}
	v.editor.Reorder(assignments)
	v.selectIndex(indexOf(v.editor.Document().Ordered(), source))
	return v.changed()
}

// applyResize writes one resize step to the editor.
func (v *View) applyResize(id string, width, height float64, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	v.editor.ResizeSection(id, width, height)
	return v.changed()
}

// changed redraws and announces a document change.
func (v *View) changed() tea.Cmd {
	v.render()
	return emit(messages.DocumentChanged{})
}

// guard emits msg in edit mode and an edit-locked error otherwise.
func (v *View) guard(msg tea.Msg) tea.Cmd {
	if !v.editMode {
		return locked
	}
	return emit(msg)
}

func locked() tea.Msg {
	return messages.ErrorOccurred{Err: domain.ErrEditLocked}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func indexOf(sections []domain.Section, id string) int {
	if id == "" {
		return -1
	}
	for i, s := range sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// boxAt returns the index of the box under (col, row), or -1.
func (v *View) boxAt(col, row int) int {
	for i, b := range v.boxes {
		if b.contains(col, row) {
			return i
		}
	}
	return -1
}

func (v *View) selectIndex(i int) {
	if i < 0 || i >= len(v.boxes) {
		return
	}
	v.selected = i
	v.render()
	v.ensureVisible()
}

// ensureVisible scrolls so the selected box is on screen.
func (v *View) ensureVisible() {
	if v.selected >= len(v.boxes) {
		return
	}
	b := v.boxes[v.selected]
	if b.top < v.vp.YOffset {
		v.vp.SetYOffset(b.top)
	} else if bottom := b.top + b.height; bottom > v.vp.YOffset+v.vp.Height {
		v.vp.SetYOffset(bottom - v.vp.Height)
	}
}

// render lays out the document and records where each box landed.
func (v *View) render() {
	doc := v.editor.Document()
	sections := doc.Ordered()
	if v.selected >= len(sections) {
		v.selected = len(sections) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}

	var parts []string
	row := 0
	add := func(s string) {
		parts = append(parts, s)
		row += lipgloss.Height(s)
	}

	header := v.styles.Title.Render(doc.Title)
	if doc.Subtitle != "" {
		header += "  " + v.styles.Muted.Render(doc.Subtitle)
	}
	theme := doc.Theme
	if theme == "" {
		theme = domain.ThemeLight
	}
	add(header + "  " + v.styles.Muted.Render("["+theme.String()+"]"))
	add("")

	v.boxes = v.boxes[:0]
	for i, s := range sections {
		rendered := v.renderBox(s, i)
		v.boxes = append(v.boxes, box{
			id:     s.ID,
			top:    row,
			width:  lipgloss.Width(rendered),
			height: lipgloss.Height(rendered),
		})
		add(rendered)
	}
	if len(sections) == 0 {
		add(v.styles.Muted.Render("No sections yet."))
	}

	v.vp.SetContent(strings.Join(parts, "\n"))
}

// renderBox draws one section as a bordered box sized from its explicit
// dimensions.
func (v *View) renderBox(s domain.Section, idx int) string {
	style := v.boxStyle(s.ID, idx)
	cols := boxCols(s, v.width)
	inner := cols - style.GetHorizontalFrameSize()

	lines := sectionBody(s)
	for i := range lines {
		lines[i] = truncate(lines[i], inner)
	}
	if rows := boxRows(s) - style.GetVerticalFrameSize(); rows > 0 {
		lines = fitRows(lines, rows)
	}
	lines[0] = v.styles.Subtitle.Render(lines[0])

	return style.Width(cols - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

func (v *View) boxStyle(id string, idx int) lipgloss.Style {
	dragging := v.reorder.State() == services.ReorderDragging
	switch {
	case v.resize.Active() && v.resize.SectionID() == id:
		return v.styles.SectionResizing
	case dragging && v.reorder.Source() == id:
		return v.styles.SectionDragged
	case dragging && v.reorder.Over() == id:
		return v.styles.SectionTarget
	case idx == v.selected:
		return v.styles.SectionSelected
	}
	return v.styles.Section
}

// View renders the visible part of the board.
func (v *View) View() string {
	return v.vp.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.vp.Width = width
	v.vp.Height = height
	v.render()
}

// Selected returns the section under the cursor.
func (v *View) Selected() (domain.Section, bool) {
	sections := v.editor.Document().Ordered()
	if v.selected < 0 || v.selected >= len(sections) {
		return domain.Section{}, false
	}
	return sections[v.selected], true
}

// SelectSection moves the cursor to the section with the given ID.
func (v *View) SelectSection(id string) {
	v.render()
	v.selectIndex(indexOf(v.editor.Document().Ordered(), id))
}

// Busy reports whether a move or resize is in progress.
func (v *View) Busy() bool {
	return v.resize.Active() || v.reorder.State() == services.ReorderDragging
}

// Gesture describes the gesture in progress for the status bar.
func (v *View) Gesture() string {
	doc := v.editor.Document()
	if v.resize.Active() {
		s, _ := doc.Section(v.resize.SectionID())
		if s.HasSize() {
			return fmt.Sprintf("resizing %s to %.0fx%.0f", s.Title, s.Width, s.Height)
		}
		return "resizing " + s.Title
	}
	if v.reorder.State() == services.ReorderDragging {
		s, _ := doc.Section(v.reorder.Source())
		if t, ok := doc.Section(v.reorder.Over()); ok && t.ID != s.ID {
			return fmt.Sprintf("moving %s before %s", s.Title, t.Title)
		}
		return "moving " + s.Title
	}
	return ""
}
