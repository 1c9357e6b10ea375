package doggy

import (
	"math"

	"webdoggy/internal/page"
)

// floor is the implicit ground: the pet's top edge never goes below it.
func (c *Controller) floor() float64 {
	vp := c.page.Viewport()
	return vp.Height + vp.ScrollY - c.cfg.Physics.FloorMargin
}

func (c *Controller) maxX() float64 {
	return math.Max(0, c.page.Viewport().Width-c.cfg.Physics.EdgeMargin)
}

func (c *Controller) clampX() {
	c.pet.Position.X = math.Max(0, math.Min(c.pet.Position.X, c.maxX()))
}

// clampPoint pulls a destination inside the area the pet can reach.
func (c *Controller) clampPoint(p Vec) Vec {
	vp := c.page.Viewport()
	p.X = math.Max(0, math.Min(p.X, c.maxX()))
	p.Y = math.Max(vp.ScrollY, math.Min(p.Y, c.floor()))
	return p
}

func (c *Controller) flip() {
	c.pet.Flipped = !c.pet.Flipped
}

// face turns the pet toward dx. A zero dx keeps the current facing.
func (c *Controller) face(dx float64) {
	if (dx > 0 && !c.pet.Flipped) || (dx < 0 && c.pet.Flipped) {
		c.flip()
	}
}

func (c *Controller) restoreSpeed() {
	if !c.boosted {
		return
	}
	c.pet.Velocity.X /= 2
	c.boosted = false
}

// fall integrates gravity and resolves the pet against the nearest surface or
// the floor. It reports whether the pet ended the tick on the ground.
func (c *Controller) fall() bool {
	ph := c.cfg.Physics
	c.pet.Velocity.Y = math.Min(c.pet.Velocity.Y+ph.Gravity, ph.MaxFallSpeed)
	c.pet.Position.Y += c.pet.Velocity.Y

	if c.pet.Velocity.Y >= 0 {
		if s, ok := c.probeSurface(); ok {
			c.pet.Position.Y = s.Top - ph.PetHeight
			c.pet.Velocity.Y = 0
			return true
		}
	}

	if floor := c.floor(); c.pet.Position.Y >= floor {
		c.pet.Position.Y = floor
		c.pet.Velocity.Y = 0
		return true
	}
	return false
}

func (c *Controller) walk() {
	c.pet.Position.X += c.pet.Velocity.X

	// reverse only when heading out, so each crossing flips once
	switch vx := c.pet.Velocity.X; {
	case c.pet.Position.X <= 0 && vx < 0,
		c.pet.Position.X >= c.maxX() && vx > 0:
		c.pet.Velocity.X = -vx
		c.face(c.pet.Velocity.X)
	}
	c.clampX()

	if l := c.ladderAhead(); l != nil {
		c.startClimbing(l)
		return
	}

	c.fall()
	c.checkStuck()
}

// checkStuck counts consecutive walking ticks with almost no displacement and
// kicks the pet loose once the count passes the threshold.
func (c *Controller) checkStuck() {
	ph := c.cfg.Physics
	if c.pet.Position.DistanceTo(c.pet.LastPosition) < ph.StuckEpsilon {
		c.pet.StuckCount++
	} else {
		c.pet.StuckCount = 0
	}
	c.pet.LastPosition = c.pet.Position

	if c.pet.StuckCount <= ph.StuckThreshold {
		return
	}

	c.log.Debug("unsticking")
	c.pet.Velocity.Y = ph.JumpForce
	if c.pet.Velocity.X == 0 {
		// facing right means walking away to the left
		if c.pet.Flipped {
			c.pet.Velocity.X = -ph.WalkSpeed
		} else {
			c.pet.Velocity.X = ph.WalkSpeed
		}
	} else {
		c.pet.Velocity.X = -c.pet.Velocity.X
	}
	c.flip()
	c.pet.StuckCount = 0
}

// ladderAhead returns a ladder the walking pet has run into. The pet must be
// below the ladder's rungs and the ladder must lie in its walking direction.
func (c *Controller) ladderAhead() *page.Element {
	fp := c.footprint()
	for _, l := range c.ladders {
		if !fp.Intersects(l.Rect) || fp.Bottom() <= l.Rect.Top()+c.cfg.Probe.LadderRungDepth {
			continue
		}
		centre := l.Rect.X + l.Rect.W/2
		mid := fp.X + fp.W/2
		if (c.pet.Velocity.X > 0 && centre >= mid) || (c.pet.Velocity.X < 0 && centre <= mid) {
			return l
		}
	}
	return nil
}

func (c *Controller) startClimbing(l *page.Element) {
	c.pet.Climbing = true
	c.pet.Velocity.Y = 0
	c.climbing = l
	c.log.Debug("climbing", c.elementField(l))
}

func (c *Controller) stopClimbing() {
	c.pet.Climbing = false
	c.climbing = nil
}

func (c *Controller) climb() {
	l := c.climbing
	if l == nil || !c.footprint().Intersects(l.Rect) {
		c.stopClimbing()
		return
	}

	ph := c.cfg.Physics
	c.pet.Position.Y -= ph.ClimbSpeed
	if c.pet.Position.Y+ph.PetHeight <= l.Rect.Top() {
		// stand centred so both foot probes find the rungs
		c.pet.Position.X = l.Rect.X + l.Rect.W/2 - ph.PetWidth/2
		c.clampX()
		c.pet.Position.Y = l.Rect.Top() - ph.PetHeight
		c.pet.Velocity.Y = 0
		c.stopClimbing()
	}
}

// jump runs the jumping activity: ballistic when untargeted, and back to the
// idle cycle on landing unless a sequence still owns the timer.
func (c *Controller) jump() {
	if c.fall() && c.timer == 0 {
		c.startRandomActivity()
	}
}

// Jump makes the pet hop in place.
func (c *Controller) Jump() {
	if !c.active || c.pet.Dragging {
		return
	}
	c.preempt()
	c.setActivity(Jumping)
}

func (c *Controller) moveToTarget() {
	ph := c.cfg.Physics
	d := c.pet.Target.Sub(c.pet.Position)
	dist := d.Len()

	if dist < ph.ArrivalRadius {
		c.arrive()
		return
	}
	if math.Abs(d.Y) > ph.FlyThreshold {
		c.cancelActivityTimer()
		c.startFlying()
		return
	}

	stepLen := math.Min(ph.RunSpeed, dist)
	c.pet.Position = c.pet.Position.Add(d.Scale(stepLen / dist))
	c.face(d.X)
	c.clampX()
	c.pet.Velocity.Y = 0
}

func (c *Controller) arrive() {
	c.log.Debug("arrived",
		c.vecField("target", *c.pet.Target))
	c.pet.Target = nil
	if c.pet.Flying {
		c.stopFlying()
	}
	c.startRandomActivity()
}

func (c *Controller) fly() {
	ph := c.cfg.Physics
	if c.pet.Target != nil {
		d := c.pet.Target.Sub(c.pet.Position)
		dist := d.Len()
		if dist < ph.FlyArrivalRadius {
			c.arrive()
			return
		}
		stepLen := math.Min(ph.FlySpeed, dist)
		c.pet.Position = c.pet.Position.Add(d.Scale(stepLen / dist))
		c.face(d.X)
	} else {
		c.pet.Position = c.pet.Position.Add(c.pet.Velocity)
		c.pet.Velocity = c.pet.Velocity.Scale(ph.FlyDamping)
	}

	c.clampX()
	vp := c.page.Viewport()
	c.pet.Position.Y = math.Max(vp.ScrollY, math.Min(c.pet.Position.Y, c.floor()))
}

func (c *Controller) startFlying() {
	if !c.pet.Flying {
		c.walkVX = c.pet.Velocity.X
	}
	c.pet.Flying = true
	c.stopClimbing()
	c.pet.Velocity = Vec{}
	c.setActivity(Flying)
}

func (c *Controller) stopFlying() {
	c.pet.Flying = false
	c.pet.Velocity = Vec{X: c.walkVX}
}

// ToggleFly lifts the pet into free flight, or lands it.
func (c *Controller) ToggleFly() {
	if !c.active || c.pet.Dragging {
		return
	}
	if c.pet.Flying {
		c.pet.Target = nil
		c.stopFlying()
		c.startRandomActivity()
		return
	}
	c.stopActivity()
	c.pet.Target = nil
	c.startFlying()
}

// Nudge steers a free-flying pet. Each axis with a non-zero direction gets
// the full flying speed in that direction. It reports whether the pet was in
// free flight.
func (c *Controller) Nudge(dx, dy int) bool {
	if !c.active || !c.pet.Flying || c.pet.Target != nil {
		return false
	}
	speed := c.cfg.Physics.FlySpeed
	if dx != 0 {
		c.pet.Velocity.X = sign(dx) * speed
		c.face(c.pet.Velocity.X)
	}
	if dy != 0 {
		c.pet.Velocity.Y = sign(dy) * speed
	}
	return true
}

func sign(v int) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
