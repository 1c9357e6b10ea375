package ui

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"webdoggy/internal/doggy"
	"webdoggy/internal/page"
)

const minVisibleRows = 6

// wide marks the second cell of a double-width rune.
const wide rune = -1

// canvas is a character grid the page is painted onto.
type canvas struct {
	cols, rows int
	cells      [][]rune
}

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]rune, rows)}
	for y := range c.cells {
		c.cells[y] = make([]rune, cols)
		for x := range c.cells[y] {
			c.cells[y][x] = ' '
		}
	}
	return c
}

func (c *canvas) inside(col, row int) bool {
	return row >= 0 && row < c.rows && col >= 0 && col < c.cols
}

// set writes one rune, repairing any double-width rune it cuts in half.
func (c *canvas) set(col, row int, r rune) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !c.inside(col, row) || !c.inside(col+w-1, row) {
		return w
	}
	line := c.cells[row]
	if line[col] == wide && col > 0 {
		line[col-1] = ' '
	}
	if end := col + w; end < c.cols && line[end] == wide {
		line[end] = ' '
	}
	line[col] = r
	if w == 2 {
		line[col+1] = wide
	}
	return w
}

// text writes s from (col, row), clipped to limit cells.
func (c *canvas) text(col, row int, s string, limit int) {
	if limit <= 0 {
		return
	}
	s = runewidth.Truncate(s, limit, "…")
	for _, r := range s {
		col += c.set(col, row, r)
	}
}

func (c *canvas) box(c0, r0, c1, r1 int) {
	if c1-c0 < 1 || r1-r0 < 1 {
		return
	}
	for x := c0 + 1; x < c1; x++ {
		c.set(x, r0, '─')
		c.set(x, r1, '─')
	}
	for y := r0 + 1; y < r1; y++ {
		c.set(c0, y, '│')
		c.set(c1, y, '│')
	}
	c.set(c0, r0, '┌')
	c.set(c1, r0, '┐')
	c.set(c0, r1, '└')
	c.set(c1, r1, '┘')
}

func (c *canvas) String() string {
	var b strings.Builder
	for y, line := range c.cells {
		for _, r := range line {
			if r != wide {
				b.WriteRune(r)
			}
		}
		if y < len(c.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// projection maps page pixels to canvas cells.
type projection struct {
	cellW, cellH float64
	scrollY      float64
}

func (p projection) cell(x, y float64) (int, int) {
	return int(math.Floor(x / p.cellW)), int(math.Floor((y - p.scrollY) / p.cellH))
}

// span returns the cells covered by r, at least one in each direction.
func (p projection) span(r page.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = p.cell(r.X, r.Y)
	c1 = int(math.Ceil(r.Right()/p.cellW)) - 1
	r1 = int(math.Ceil((r.Bottom()-p.scrollY)/p.cellH)) - 1
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	return
}

// page returns the page point at the centre of a cell.
func (p projection) page(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * p.cellW, (float64(row)+0.5)*p.cellH + p.scrollY
}

// paintPage draws every element in paint order, with the pet on top.
func paintPage(cv *canvas, doc *page.Document, proj projection, focused *page.Element, sprite string) {
	var pet *page.Element
	for _, el := range doc.Elements() {
		if el.HasClass(doggy.ClassPet) {
			pet = el
			continue
		}
		paintElement(cv, el, proj, el == focused)
	}
	if pet != nil {
		col := int(math.Ceil(pet.Rect.X / proj.cellW))
		_, row := proj.cell(0, pet.Rect.Y+pet.Rect.H/2)
		cv.text(col, row, sprite, cv.cols-col)
	}
}

func paintElement(cv *canvas, el *page.Element, proj projection, focused bool) {
	if !el.Visible() || el.Style.Alpha() == 0 {
		return
	}
	switch strings.ToUpper(el.Tag) {
	case "HTML", "BODY":
		return
	}

	c0, r0, c1, r1 := proj.span(el.Rect)
	width := c1 - c0 + 1

	switch {
	case el.HasClass(doggy.ClassLadder):
		for y := r0; y <= r1; y++ {
			cv.set(c0, y, '╟')
			for x := c0 + 1; x < c1; x++ {
				cv.set(x, y, '─')
			}
			cv.set(c1, y, '╢')
		}
		return

	case el.HasClass(doggy.ClassMenu):
		cv.box(c0, r0, c1, r1)
		// one row per item, on the row holding the item's centre
		for i, label := range strings.Split(el.Text, "\n") {
			_, row := proj.cell(0, el.Rect.Y+(float64(i)+0.5)*doggy.MenuItemHeight)
			cv.text(c0+1, row, label, width-2)
		}
		return

	case el.HasClass(doggy.ClassStolenText):
		cv.text(c0, r0, "“"+el.Text+"”", cv.cols-c0)
		return

	case el.HasClass(doggy.ClassBubble), el.HasClass(doggy.ClassNote):
		cv.text(c0, r0, el.Text, cv.cols-c0)
		return
	}

	text := el.Text
	if strings.EqualFold(el.Tag, "IMG") && text == "" {
		text = "[img]"
	}
	if focused {
		text += "▏"
	}

	if el.Style.BorderWidth > 0 || el.HasClass(doggy.ClassBlock) {
		cv.box(c0, r0, c1, r1)
		if r1 > r0+1 {
			cv.text(c0+1, r0+1, text, width-2)
		} else {
			cv.text(c0+1, r0, text, width-2)
		}
		return
	}
	cv.text(c0, r0, text, width)
}
