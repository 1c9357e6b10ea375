package doggy

import (
	"webdoggy/internal/page"
)

// CreateLadder props a ladder up just ahead of the pet.
func (c *Controller) CreateLadder() *page.Element {
	if !c.active {
		return nil
	}
	el := &page.Element{
		Tag:   "DIV",
		Class: ClassLadder,
		Text:  "🪜",
		Rect: page.Rect{
			X: c.pet.Position.X + 50,
			Y: c.pet.Position.Y - 100,
			W: LadderWidth,
			H: LadderHeight,
		},
	}
	el.Style.Background = "#8b4513"
	c.page.Append(el)
	c.ladders = append(c.ladders, el)
	c.log.Debug("ladder placed", c.elementField(el))
	return el
}

// CreateBlock drops a block next to the pet.
func (c *Controller) CreateBlock() *page.Element {
	if !c.active {
		return nil
	}
	el := &page.Element{
		Tag:   "DIV",
		Class: ClassBlock,
		Text:  BlockEmoji,
		Rect: page.Rect{
			X: c.pet.Position.X + 50,
			Y: c.pet.Position.Y + 20,
			W: BlockSize,
			H: BlockSize,
		},
	}
	el.Style.Background = "#deb887"
	c.page.Append(el)
	c.blocks = append(c.blocks, el)
	c.log.Debug("block placed", c.elementField(el))
	return el
}

// Ladders returns the ladders placed since the pet was summoned.
func (c *Controller) Ladders() []*page.Element {
	return append([]*page.Element(nil), c.ladders...)
}

// Blocks returns the blocks placed since the pet was summoned.
func (c *Controller) Blocks() []*page.Element {
	return append([]*page.Element(nil), c.blocks...)
}
