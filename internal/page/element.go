package page

import "strings"

// Rect is an axis-aligned rectangle in page coordinates.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether the point lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Style is the subset of computed style the doggy cares about.
type Style struct {
	Background  string   `yaml:"background"`
	BorderWidth float64  `yaml:"border"`
	Hidden      bool     `yaml:"hidden"`
	Opacity     *float64 `yaml:"opacity"` // nil is fully opaque
	MirrorX     bool     `yaml:"-"`
}

// Alpha returns the opacity, 1 when none is set.
func (s Style) Alpha() float64 {
	if s.Opacity == nil {
		return 1
	}
	return *s.Opacity
}

// SetOpacity sets the element's opacity.
func (e *Element) SetOpacity(v float64) {
	e.Style.Opacity = &v
}

// Element is a node of the page. Overlay elements inserted by the doggy carry
// a Class; page content usually does not.
type Element struct {
	ID    string `yaml:"id"`
	Tag   string `yaml:"tag"`
	Class string `yaml:"class"`
	Text  string `yaml:"text"`
	Rect  Rect   `yaml:"rect"`
	Style Style  `yaml:",inline"`
}

// Visible reports whether the element is rendered at all.
func (e *Element) Visible() bool {
	return !e.Style.Hidden && e.Rect.W > 0 && e.Rect.H > 0
}

// Editable reports whether the element accepts typed text.
func (e *Element) Editable() bool {
	switch strings.ToUpper(e.Tag) {
	case "INPUT", "TEXTAREA":
		return true
	}
	return false
}

// HasClass reports whether name is one of the element's space separated
// classes.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Class) {
		if c == name {
			return true
		}
	}
	return false
}
