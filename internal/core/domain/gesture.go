package domain

// ResizeHandle identifies which edge or corner of a section box is dragged.
type ResizeHandle string

// Resize handles. Corner handles change both axes; edge handles change one.
const (
	HandleTop         ResizeHandle = "top"
	HandleRight       ResizeHandle = "right"
	HandleBottom      ResizeHandle = "bottom"
	HandleLeft        ResizeHandle = "left"
	HandleTopLeft     ResizeHandle = "top-left"
	HandleTopRight    ResizeHandle = "top-right"
	HandleBottomLeft  ResizeHandle = "bottom-left"
	HandleBottomRight ResizeHandle = "bottom-right"
)

// IsValid returns true if the handle is recognised.
func (h ResizeHandle) IsValid() bool {
	dx, dy := h.Axes()
	return dx != 0 || dy != 0
}

// Axes returns the sign applied to the pointer delta on each axis:
// +1 grows with the pointer, -1 grows against it, 0 leaves the axis alone.
func (h ResizeHandle) Axes() (x, y int) {
	switch h {
	case HandleTop:
		return 0, -1
	case HandleRight:
		return 1, 0
	case HandleBottom:
		return 0, 1
	case HandleLeft:
		return -1, 0
	case HandleTopLeft:
		return -1, -1
	case HandleTopRight:
		return 1, -1
	case HandleBottomLeft:
		return -1, 1
	case HandleBottomRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// DragPhase is the kind of a reorder gesture event.
type DragPhase int

// Reorder gesture phases.
const (
	DragStart DragPhase = iota
	DragOver
	DragDrop
	DragEnd
)

// DragEvent is an abstract drag-and-drop message. SectionID is the section
// under the pointer (the dragged section for DragStart, the hovered or
// target section otherwise).
type DragEvent struct {
	Phase     DragPhase
	SectionID string
}

// PointerPhase is the kind of a resize gesture event.
type PointerPhase int

// Resize gesture phases.
const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
)

// PointerEvent is an abstract pointer message in pixel coordinates.
type PointerEvent struct {
	Phase  PointerPhase
	X, Y   float64
	Handle ResizeHandle
}
