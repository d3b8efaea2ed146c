package services

import (
	"sync"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// ResizeController tracks a pointer-driven resize of one section.
// Sizes are measured from the gesture origin, so a pointer that wanders
// back restores the original size instead of accumulating error.
type ResizeController struct {
	mu      sync.Mutex
	active  bool
	id      string
	handle  domain.ResizeHandle
	originX float64
	originY float64
	originW float64
	originH float64
}

// NewResizeController creates an idle controller.
func NewResizeController() *ResizeController {
	return &ResizeController{}
}

// Active reports whether a resize is in progress.
func (c *ResizeController) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SectionID returns the section being resized.
func (c *ResizeController) SectionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Start begins resizing section s from the given handle at pointer (x, y).
// The origin size is the section's explicit size where set, otherwise the
// measured size on screen. Refused outside edit mode.
func (c *ResizeController) Start(
	s domain.Section,
	handle domain.ResizeHandle,
	x, y float64,
	measuredW, measuredH float64,
	editMode bool,
) bool {
	if !editMode || !handle.IsValid() || s.ID == "" {
		return false
	}

	w, h := s.Width, s.Height
	if w <= 0 {
		w = measuredW
	}
	if h <= 0 {
		h = measuredH
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
	c.id = s.ID
	c.handle = handle
	c.originX, c.originY = x, y
	c.originW, c.originH = w, h
	return true
}

// Move returns the clamped size for a pointer at (x, y). Axes the handle
// does not control keep their origin size.
func (c *ResizeController) Move(x, y float64) (id string, width, height float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return "", 0, 0, false
	}

	sx, sy := c.handle.Axes()
	width = c.originW + float64(sx)*(x-c.originX)
	height = c.originH + float64(sy)*(y-c.originY)
	width, height = domain.ClampSize(width, height)
	return c.id, width, height, true
}

// End finishes the gesture.
func (c *ResizeController) End() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.id = ""
	c.handle = ""
}

// Handle dispatches pointer move and up events. Pointer down needs the
// section and its measured size, so it goes through Start directly.
func (c *ResizeController) Handle(ev domain.PointerEvent) (id string, width, height float64, ok bool) {
	switch ev.Phase {
	case domain.PointerMove:
		return c.Move(ev.X, ev.Y)
	case domain.PointerUp:
		c.End()
	}
	return "", 0, 0, false
}
