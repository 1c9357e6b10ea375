package doggy

import (
	"math"

	"go.uber.org/zap"

	"webdoggy/internal/page"
)

// CallTo sends the pet running to the page point (x, y). The pet aims so its
// body ends up just above and left of the point.
func (c *Controller) CallTo(x, y float64) {
	if !c.active || c.pet.Dragging {
		return
	}
	c.preempt()
	t := c.clampPoint(Vec{X: x - 20, Y: y - 40})
	c.pet.Target = &t
	c.log.Debug("called", c.vecField("target", t))
	c.setActivity(Running)
}

// Fetch sends the pet to a random point of the visible page.
func (c *Controller) Fetch() {
	vp := c.page.Viewport()
	x := RandFloat64() * vp.Width
	y := RandFloat64()*vp.Height + vp.ScrollY
	c.CallTo(x, y)
}

// Direction is a jump direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "unknown"
}

// JumpToElement picks the nearest walkable element in direction dir and jumps
// onto it. Every call rescans the whole page. When nothing qualifies the pet
// says so and goes back to its idle cycle.
func (c *Controller) JumpToElement(dir Direction) bool {
	if !c.active || c.pet.Dragging {
		return false
	}

	dest, el, ok := c.nearestLanding(dir)
	if !ok {
		c.log.Debug("no jump target", zap.Stringer("direction", dir))
		c.say("No place to jump!")
		c.preempt()
		c.startRandomActivity()
		return false
	}

	c.preempt()
	c.pet.Target = &dest
	c.log.Debug("jumping to element",
		zap.Stringer("direction", dir),
		c.elementField(el),
		c.vecField("target", dest))
	c.setActivity(Jumping)
	return true
}

func (c *Controller) nearestLanding(dir Direction) (Vec, *page.Element, bool) {
	ph := c.cfg.Physics
	vp := c.page.Viewport()
	from := c.pet.Position
	minDist := ph.JumpMinDistance

	var (
		best     Vec
		bestEl   *page.Element
		bestDist = math.Inf(1)
	)
	for _, el := range c.page.Elements() {
		if el == c.el || isRoot(el) || (IsOverlay(el) && !el.HasClass(ClassBlock)) {
			continue
		}
		if !c.walkable(el) {
			continue
		}

		land := Vec{
			X: el.Rect.X + el.Rect.W/2 - ph.PetWidth/2,
			Y: el.Rect.Top() - ph.PetHeight,
		}
		land.X = math.Max(0, math.Min(land.X, c.maxX()))
		if land.Y < vp.ScrollY || land.Y > vp.ScrollY+vp.Height {
			continue
		}

		d := land.Sub(from)
		var ahead bool
		switch dir {
		case DirLeft:
			ahead = d.X < -minDist
		case DirRight:
			ahead = d.X > minDist
		case DirUp:
			ahead = d.Y < -minDist
		case DirDown:
			ahead = d.Y > minDist
		}
		if !ahead {
			continue
		}
		if dist := d.Len(); dist < bestDist {
			best, bestEl, bestDist = land, el, dist
		}
	}
	return best, bestEl, bestEl != nil
}
