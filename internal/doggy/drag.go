package doggy

import (
	"math"

	"webdoggy/internal/page"
)

// dragRecord is the single active drag. The pet and every placed object share
// it; el is nil when nothing is being dragged.
type dragRecord struct {
	el     *page.Element
	pet    bool
	offset Vec
}

// PointerDown starts a drag of the pet or of a placed ladder or block under
// the pointer. It reports whether a drag started.
func (c *Controller) PointerDown(x, y float64) bool {
	if !c.active {
		return false
	}

	if c.onPet(x, y) {
		c.preempt()
		c.pet.Dragging = true
		c.pet.Velocity.Y = 0
		c.drag = dragRecord{
			el:     c.el,
			pet:    true,
			offset: Vec{X: x, Y: y}.Sub(c.pet.Position),
		}
		c.log.Debug("drag started")
		c.render()
		return true
	}

	for _, el := range c.page.ElementsFromPoint(x, y) {
		if el.HasClass(ClassLadder) || el.HasClass(ClassBlock) {
			c.drag = dragRecord{
				el:     el,
				offset: Vec{X: x - el.Rect.X, Y: y - el.Rect.Y},
			}
			return true
		}
	}
	return false
}

// PointerMove moves whatever is being dragged so that the grab point stays
// under the pointer.
func (c *Controller) PointerMove(x, y float64) {
	d := c.drag
	if d.el == nil {
		return
	}

	pos := Vec{X: x, Y: y}.Sub(d.offset)
	if !d.pet {
		d.el.Rect.X, d.el.Rect.Y = pos.X, pos.Y
		return
	}

	vp := c.page.Viewport()
	c.pet.Position.X = math.Max(0, math.Min(pos.X, c.maxX()))
	c.pet.Position.Y = math.Max(vp.ScrollY, math.Min(pos.Y, c.floor()))
	c.pet.Velocity.Y = 0
	c.render()
}

// PointerUp ends the drag. A dropped pet goes back to its idle cycle.
func (c *Controller) PointerUp() {
	d := c.drag
	c.drag = dragRecord{}
	if !d.pet {
		return
	}

	c.pet.Dragging = false
	c.pet.LastPosition = c.pet.Position
	c.pet.StuckCount = 0
	c.log.Debug("drag ended", c.vecField("position", c.pet.Position))
	c.startRandomActivity()
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.el != nil
}
