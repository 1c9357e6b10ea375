package page

import (
	"github.com/google/uuid"
)

// Viewport is the visible window onto the page.
type Viewport struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	ScrollY float64 `yaml:"-"`
}

// Document is an in-memory page: an ordered list of elements where later
// elements paint on top of earlier ones.
type Document struct {
	elements []*Element
	viewport Viewport
	focused  *Element
}

// NewDocument returns an empty page with the given viewport.
func NewDocument(vp Viewport) *Document {
	return &Document{viewport: vp}
}

// Viewport returns the current viewport.
func (d *Document) Viewport() Viewport {
	return d.viewport
}

// Resize changes the viewport size and keeps the scroll offset in range.
func (d *Document) Resize(width, height float64) {
	d.viewport.Width = width
	d.viewport.Height = height
	d.ScrollTo(d.viewport.ScrollY)
}

// ScrollTo moves the viewport, clamped to the page content.
func (d *Document) ScrollTo(y float64) {
	limit := d.ContentHeight() - d.viewport.Height
	if y > limit {
		y = limit
	}
	if y < 0 {
		y = 0
	}
	d.viewport.ScrollY = y
}

// ScrollBy scrolls relative to the current offset.
func (d *Document) ScrollBy(dy float64) {
	d.ScrollTo(d.viewport.ScrollY + dy)
}

// ContentHeight is the bottom edge of the lowest element, or the viewport
// height when the page is shorter than the viewport.
func (d *Document) ContentHeight() float64 {
	h := d.viewport.Height
	for _, el := range d.elements {
		if el.Rect.Bottom() > h {
			h = el.Rect.Bottom()
		}
	}
	return h
}

// Append inserts el on top of every other element. An empty ID is replaced
// with a fresh one.
func (d *Document) Append(el *Element) {
	if el.ID == "" {
		el.ID = uuid.New().String()
	}
	d.elements = append(d.elements, el)
}

// Remove deletes el from the page. It reports false when el was not there.
func (d *Document) Remove(el *Element) bool {
	for i, e := range d.elements {
		if e == el {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			if d.focused == el {
				d.focused = nil
			}
			return true
		}
	}
	return false
}

// Elements returns every element in paint order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// Len returns the number of elements on the page.
func (d *Document) Len() int {
	return len(d.elements)
}

// ByClass returns the elements carrying the class, in paint order.
func (d *Document) ByClass(class string) []*Element {
	var out []*Element
	for _, el := range d.elements {
		if el.HasClass(class) {
			out = append(out, el)
		}
	}
	return out
}

// ElementsFromPoint returns the visible elements containing the page
// coordinate (x, y), topmost first.
func (d *Document) ElementsFromPoint(x, y float64) []*Element {
	var out []*Element
	for i := len(d.elements) - 1; i >= 0; i-- {
		el := d.elements[i]
		if el.Visible() && el.Rect.Contains(x, y) {
			out = append(out, el)
		}
	}
	return out
}

// Focus makes el the focused element. Passing nil blurs.
func (d *Document) Focus(el *Element) {
	d.focused = el
}

// Focused returns the focused element, if any.
func (d *Document) Focused() *Element {
	return d.focused
}

// FocusNext moves focus to the next editable element in paint order,
// wrapping around. It returns the newly focused element or nil when the page
// has nothing editable.
func (d *Document) FocusNext() *Element {
	var editable []*Element
	for _, el := range d.elements {
		if el.Editable() && el.Visible() {
			editable = append(editable, el)
		}
	}
	if len(editable) == 0 {
		d.focused = nil
		return nil
	}
	next := editable[0]
	for i, el := range editable {
		if el == d.focused {
			next = editable[(i+1)%len(editable)]
			break
		}
	}
	d.focused = next
	return next
}
