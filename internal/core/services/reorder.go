package services

import (
	"sync"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// ReorderState is the state of the drag-to-reorder gesture.
type ReorderState int

// Reorder gesture states.
const (
	ReorderIdle ReorderState = iota
	ReorderDragging
)

// String returns the state name.
func (s ReorderState) String() string {
	if s == ReorderDragging {
		return "dragging"
	}
	return "idle"
}

// ReorderController tracks a drag-to-reorder gesture. It is fed abstract
// drag events by the front end and produces order assignments on drop.
// A gesture can only start while edit mode is active.
type ReorderController struct {
	mu     sync.Mutex
	state  ReorderState
	source string
	over   string
}

// NewReorderController creates an idle controller.
func NewReorderController() *ReorderController {
	return &ReorderController{}
}

// State returns the current gesture state.
func (c *ReorderController) State() ReorderState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Source returns the section being dragged, or "" when idle.
func (c *ReorderController) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// Over returns the section currently hovered during a drag.
func (c *ReorderController) Over() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.over
}

// DragStart begins dragging id. It is refused outside edit mode.
func (c *ReorderController) DragStart(id string, editMode bool) bool {
	if !editMode || id == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ReorderDragging
	c.source = id
	c.over = ""
	return true
}

// DragOver records the hovered section. It is ignored when idle.
func (c *ReorderController) DragOver(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ReorderDragging {
		return false
	}
	c.over = id
	return true
}

// Drop ends the gesture on target and returns the dense order assignments
// that move the dragged section immediately before target. Dropping onto
// the dragged section itself, or onto an unknown section, yields nothing.
func (c *ReorderController) Drop(doc domain.Document, target string) ([]domain.OrderAssignment, bool) {
	c.mu.Lock()
	source := c.source
	dragging := c.state == ReorderDragging
	c.reset()
	c.mu.Unlock()

	if !dragging {
		return nil, false
	}
	return MoveBefore(doc, source, target)
}

// DragEnd cancels the gesture.
func (c *ReorderController) DragEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// Handle dispatches an abstract drag event and returns the assignments to
// apply when the event completes a reorder.
func (c *ReorderController) Handle(ev domain.DragEvent, doc domain.Document, editMode bool) ([]domain.OrderAssignment, bool) {
	switch ev.Phase {
	case domain.DragStart:
		c.DragStart(ev.SectionID, editMode)
	case domain.DragOver:
		c.DragOver(ev.SectionID)
	case domain.DragDrop:
		return c.Drop(doc, ev.SectionID)
	case domain.DragEnd:
		c.DragEnd()
	}
	return nil, false
}

func (c *ReorderController) reset() {
	c.state = ReorderIdle
	c.source = ""
	c.over = ""
}

// MoveBefore computes the assignments that remove source from the display
// sequence and reinsert it immediately before target, then number every
// section 0..n-1.
func MoveBefore(doc domain.Document, source, target string) ([]domain.OrderAssignment, bool) {
	if source == "" || source == target {
		return nil, false
	}
	ordered := doc.Ordered()

	var moved *domain.Section
	rest := make([]domain.Section, 0, len(ordered))
	for i := range ordered {
		if ordered[i].ID == source {
			moved = &ordered[i]
			continue
		}
		rest = append(rest, ordered[i])
	}
	if moved == nil {
		return nil, false
	}

	at := -1
	for i := range rest {
		if rest[i].ID == target {
			at = i
			break
		}
	}
	if at < 0 {
		return nil, false
	}

	seq := make([]domain.Section, 0, len(ordered))
	seq = append(seq, rest[:at]...)
	seq = append(seq, *moved)
	seq = append(seq, rest[at:]...)

	out := make([]domain.OrderAssignment, len(seq))
	for i, s := range seq {
		out[i] = domain.OrderAssignment{ID: s.ID, Order: i}
	}
	return out, true
}
