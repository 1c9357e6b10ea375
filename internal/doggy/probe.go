package doggy

import (
	"math"
	"strings"

	"webdoggy/internal/page"
)

// Surface is something the pet can stand on.
type Surface struct {
	Top     float64
	Element *page.Element
}

// probeSurface samples two points just below the pet's feet and returns the
// surface closest to them, if any lies within the search distance.
func (c *Controller) probeSurface() (Surface, bool) {
	ph := c.cfg.Physics
	probeY := c.pet.Position.Y + ph.PetHeight + c.cfg.Probe.FootOffset

	var (
		best  Surface
		found bool
		dist  = c.cfg.Probe.MaxSearch
	)
	for _, x := range [...]float64{
		c.pet.Position.X + ph.PetWidth*0.25,
		c.pet.Position.X + ph.PetWidth*0.75,
	} {
		s, ok := c.surfaceAt(x, probeY)
		if !ok {
			continue
		}
		if d := math.Abs(s.Top - probeY); d <= dist {
			best, dist, found = s, d, true
		}
	}
	return best, found
}

// surfaceAt resolves a single probe point. Placed blocks, ladder tops and
// the topmost page element at the point are all candidates; the one whose
// top is closest to y wins.
func (c *Controller) surfaceAt(x, y float64) (Surface, bool) {
	var (
		best  Surface
		found bool
	)
	consider := func(s Surface) {
		if !found || math.Abs(s.Top-y) < math.Abs(best.Top-y) {
			best, found = s, true
		}
	}

	search := c.cfg.Probe.MaxSearch
	for _, b := range c.blocks {
		r := b.Rect
		if x >= r.Left() && x < r.Right() && y >= r.Top()-search && y < r.Bottom() {
			consider(Surface{Top: r.Top(), Element: b})
		}
	}

	rung := c.cfg.Probe.LadderRungDepth
	for _, l := range c.ladders {
		r := l.Rect
		if x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Top()+rung {
			consider(Surface{Top: r.Top(), Element: l})
		}
	}

	for _, el := range c.page.ElementsFromPoint(x, y) {
		if IsOverlay(el) || isRoot(el) {
			continue
		}
		if c.walkable(el) {
			consider(Surface{Top: el.Rect.Top(), Element: el})
		}
		break
	}
	return best, found
}

func isRoot(el *page.Element) bool {
	switch strings.ToUpper(el.Tag) {
	case "HTML", "BODY":
		return true
	}
	return false
}

// walkable reports whether the pet may stand on el: either the tag is on the
// allowlist or the element is big enough and visibly drawn.
func (c *Controller) walkable(el *page.Element) bool {
	if !el.Visible() {
		return false
	}
	tag := strings.ToUpper(el.Tag)
	for _, t := range c.cfg.Probe.WalkableTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}

	pc := c.cfg.Probe
	if el.Rect.W < pc.MinWalkableWidth || el.Rect.H < pc.MinWalkableHeight {
		return false
	}
	return el.Style.BorderWidth > 0 || (el.Style.Background != "" && el.Style.Background != "transparent")
}
